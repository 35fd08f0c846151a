package main

import (
	"os"

	"github.com/zayfen/InterviewQuestionBank/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
