package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/zayfen/InterviewQuestionBank/internal/api"
	"github.com/zayfen/InterviewQuestionBank/internal/app"
)

var rootCmd = &cobra.Command{
	Use:   "iqb",
	Short: "Interview question bank client",
	Long: "iqb browses an interview question bank and runs mock interviews against it.\n" +
		"Without a subcommand it opens the terminal UI.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadEnvFile(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, app.Options{})
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("api-url", "", "Question bank API root (overrides IQB_API_URL)")
	rootCmd.PersistentFlags().Duration("timeout", 0, "HTTP timeout per request (overrides IQB_TIMEOUT)")
	rootCmd.PersistentFlags().Int("retries", 0, "Attempts for idempotent requests (overrides IQB_RETRIES)")
	rootCmd.PersistentFlags().String("env-file", ".env", "Environment file to load before reading IQB_* variables")
	rootCmd.PersistentFlags().String("log-file", "", "Write logs to this file (overrides IQB_LOG_FILE)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log debug output")

	rootCmd.AddCommand(questionsCmd)
	rootCmd.AddCommand(randomCmd)
	rootCmd.AddCommand(presetsCmd)
	rootCmd.AddCommand(practiceCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadEnvFile loads --env-file. A missing default file is not an error.
func loadEnvFile(cmd *cobra.Command) error {
	path, _ := cmd.Flags().GetString("env-file")
	if path == "" {
		return nil
	}
	err := godotenv.Load(path)
	if err == nil {
		return nil
	}
	if errors.Is(err, fs.ErrNotExist) && !cmd.Flags().Changed("env-file") {
		return nil
	}
	return fmt.Errorf("load env file %s: %w", path, err)
}

// resolveConfig reads IQB_* variables and applies flag overrides.
func resolveConfig(cmd *cobra.Command) (api.Config, error) {
	cfg, err := api.ConfigFromEnv()
	if err != nil {
		return cfg, err
	}
	flags := cmd.Flags()
	if flags.Changed("api-url") {
		cfg.BaseURL, _ = flags.GetString("api-url")
	}
	if flags.Changed("timeout") {
		cfg.Timeout, _ = flags.GetDuration("timeout")
	}
	if flags.Changed("retries") {
		cfg.Retry.MaxAttempts, _ = flags.GetInt("retries")
	}
	return cfg, cfg.Validate()
}

// newLogger builds the slog logger. Logs go to --log-file when set;
// otherwise to fallback. A nil fallback discards them, which the TUI
// needs while it owns the terminal.
func newLogger(cmd *cobra.Command, fallback io.Writer) (*slog.Logger, func(), error) {
	level := slog.LevelInfo
	if v, _ := cmd.Flags().GetBool("verbose"); v {
		level = slog.LevelDebug
	}

	path, _ := cmd.Flags().GetString("log-file")
	if path == "" {
		path = os.Getenv("IQB_LOG_FILE")
	}

	w, cleanup := fallback, func() {}
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w, cleanup = f, func() { f.Close() }
	}
	if w == nil {
		return slog.New(slog.DiscardHandler), cleanup, nil
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), cleanup, nil
}

// newClient builds the API client and its logger. The returned cleanup
// closes the log file, if any.
func newClient(cmd *cobra.Command, logOut io.Writer) (*api.Client, *slog.Logger, func(), error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("configure client: %w", err)
	}
	logger, cleanup, err := newLogger(cmd, logOut)
	if err != nil {
		return nil, nil, nil, err
	}
	client, err := api.New(cfg, api.WithLogger(logger))
	if err != nil {
		cleanup()
		return nil, nil, nil, fmt.Errorf("create client: %w", err)
	}
	return client, logger, cleanup, nil
}

// runApp launches the TUI. Tests replace it.
var runApp = func(cmd *cobra.Command, opts app.Options) error {
	client, logger, cleanup, err := newClient(cmd, nil)
	if err != nil {
		return err
	}
	defer cleanup()

	logger.Info("starting tui", "api", client.BaseURL())
	opts.Client = client
	opts.Logger = logger
	return app.Run(opts)
}
