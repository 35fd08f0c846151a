package selection

// Preset describes a server-side interview recipe. The server owns the
// recipes; this catalog only mirrors them for menus and help text.
type Preset struct {
	Key    string
	Name   string
	Easy   int
	Medium int
	Hard   int
}

// Total is the number of questions the recipe asks for.
func (p Preset) Total() int { return p.Easy + p.Medium + p.Hard }

// Spec returns the PresetSpec that requests this recipe.
func (p Preset) Spec() PresetSpec { return PresetSpec{Key: p.Key} }

// KnownPresets returns the recipes the question bank ships with.
func KnownPresets() []Preset {
	return []Preset{
		{Key: "quick", Name: "Quick", Easy: 2, Medium: 2, Hard: 1},
		{Key: "standard", Name: "Standard", Easy: 3, Medium: 4, Hard: 2},
		{Key: "comprehensive", Name: "Comprehensive", Easy: 5, Medium: 5, Hard: 3},
		{Key: "frontend", Name: "Frontend", Easy: 2, Medium: 3, Hard: 1},
		{Key: "backend", Name: "Backend", Easy: 2, Medium: 3, Hard: 2},
		{Key: "algorithm", Name: "Algorithm", Easy: 1, Medium: 2, Hard: 2},
	}
}

// LookupPreset finds a known preset by key.
func LookupPreset(key string) (Preset, bool) {
	for _, p := range KnownPresets() {
		if p.Key == key {
			return p, true
		}
	}
	return Preset{}, false
}

// DefaultBuckets mirrors the server's default interview mix.
func DefaultBuckets() BucketSpec {
	return BucketSpec{Easy: 2, Medium: 3, Hard: 1}
}
