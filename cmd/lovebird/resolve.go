package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/playperu/lovebird/internal/quiz"
)

func newResolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve <score>",
		Short: "Show which lovebird a total score maps to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			score, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("score must be an integer: %w", err)
			}
			if err := cmd.Flags().Set("mode", string(quiz.ModeScore)); err != nil {
				return err
			}
			e, err := loadEngine(cmd)
			if err != nil {
				return err
			}

			res, ok := e.(*quiz.ScoreEngine).Scenario().Resolve(score)
			if !ok {
				return fmt.Errorf("no result covers score %d", score)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d -> %s [%d, %d]\n", score, res.Name, res.ScoreRange.Min(), res.ScoreRange.Max())
			if res.Summary != "" {
				fmt.Fprintln(cmd.OutOrStdout(), res.Summary)
			}
			return nil
		},
	}
	cmd.Flags().StringP("file", "f", "", "Score quiz document (defaults to the built-in one)")
	return cmd
}
