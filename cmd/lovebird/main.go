// Command lovebird validates quiz documents and plays them in a terminal.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/playperu/lovebird/internal/quiz"
	"github.com/playperu/lovebird/internal/scenarios"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "lovebird",
		Short:        "Which lovebird are you?",
		Long:         `Validate quiz documents, play a quiz in the terminal and look up score buckets.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringP("mode", "m", string(quiz.ModeScore), "Quiz mode: score or graph")

	root.AddCommand(newValidateCmd(), newPlayCmd(), newResolveCmd())
	return root
}

func modeFlag(cmd *cobra.Command) (quiz.Mode, error) {
	m, _ := cmd.Flags().GetString("mode")
	mode := quiz.Mode(m)
	if !mode.Valid() {
		return "", fmt.Errorf("unknown mode %q: want score or graph", m)
	}
	return mode, nil
}

func loadEngine(cmd *cobra.Command) (quiz.Engine, error) {
	mode, err := modeFlag(cmd)
	if err != nil {
		return nil, err
	}
	file, _ := cmd.Flags().GetString("file")
	return scenarios.Load(mode, file)
}
