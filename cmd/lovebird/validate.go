package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/playperu/lovebird/internal/quiz"
	"github.com/playperu/lovebird/internal/scenarios"
)

var errInvalid = errors.New("scenario is invalid")

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Check a quiz document",
		Long: `Parses a JSON or YAML quiz document, reports every problem found, and
warns about scores no result covers or nodes no path reaches.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := modeFlag(cmd)
			if err != nil {
				return err
			}
			return runValidate(cmd, mode, args[0])
		},
	}
}

func runValidate(cmd *cobra.Command, mode quiz.Mode, path string) error {
	out := cmd.OutOrStdout()

	e, err := scenarios.Load(mode, path)
	var ce *quiz.ConfigError
	if errors.As(err, &ce) {
		fmt.Fprintf(out, "%s: %d problem(s)\n", path, len(ce.Issues))
		for _, is := range ce.Issues {
			fmt.Fprintf(out, "  - %s\n", is)
		}
		return errInvalid
	}
	if err != nil {
		return err
	}

	switch e := e.(type) {
	case *quiz.ScoreEngine:
		sc := e.Scenario()
		fmt.Fprintf(out, "%s: ok (%d questions, %d results)\n", path, len(sc.Questions), len(sc.Results))
		gaps, err := quiz.Unresolvable(sc)
		switch {
		case errors.Is(err, quiz.ErrTooManyTotals):
			fmt.Fprintf(out, "warning: skipped score gap check: %v\n", err)
		case err != nil:
			return err
		case len(gaps) > 0:
			fmt.Fprintf(out, "warning: no result for reachable scores %v\n", gaps)
		}
	case *quiz.GraphEngine:
		sc := e.Scenario()
		fmt.Fprintf(out, "%s: ok (%d nodes)\n", path, len(sc.Nodes))
		if lost := quiz.Unreachable(sc); len(lost) > 0 {
			fmt.Fprintf(out, "warning: unreachable nodes %v\n", lost)
		}
	}
	return nil
}
