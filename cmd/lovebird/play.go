package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/playperu/lovebird/internal/quiz"
)

func newPlayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Take the quiz in the terminal",
		Long: `Asks each question in turn. Answer with an option number,
"b" to go back one answer, or "q" to quit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEngine(cmd)
			if err != nil {
				return err
			}
			return play(e, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringP("file", "f", "", "Quiz document (defaults to the built-in one)")
	return cmd
}

func play(e quiz.Engine, in io.Reader, out io.Writer) error {
	s := e.NewSession("terminal")
	if err := e.Start(s); err != nil {
		return err
	}
	lines := bufio.NewScanner(in)

	for {
		v := e.View(s)
		switch v.Kind {
		case quiz.ViewQuestion:
			printQuestion(out, v)
		case quiz.ViewResult:
			printResult(out, v)
			return nil
		case quiz.ViewNotFound:
			fmt.Fprintf(out, "\nThe quiz is broken here: there is no node %q.\n", v.NodeID)
			return nil
		case quiz.ViewNoResult:
			fmt.Fprintf(out, "\nNo lovebird matches a score of %d.\n", v.Score)
			return nil
		default:
			return fmt.Errorf("unexpected view %q", v.Kind)
		}

		choices := v.Choices()
		for {
			fmt.Fprint(out, "> ")
			if !lines.Scan() {
				fmt.Fprintln(out)
				return lines.Err()
			}
			input := strings.TrimSpace(lines.Text())

			if input == "q" {
				return nil
			}
			if input == "b" {
				if err := quiz.Back(e, s); err != nil {
					fmt.Fprintln(out, "Nothing to go back to.")
					continue
				}
				break
			}
			n, err := strconv.Atoi(input)
			if err != nil || n < 1 || n > len(choices) {
				fmt.Fprintf(out, "Enter a number from 1 to %d.\n", len(choices))
				continue
			}
			if err := e.Select(s, choices[n-1]); err != nil {
				return err
			}
			break
		}
	}
}

func printQuestion(out io.Writer, v quiz.View) {
	fmt.Fprintln(out)
	switch {
	case v.Question != nil:
		fmt.Fprintf(out, "[%d/%d] %s\n", v.Number, v.Total, v.Question.Text)
		for i, o := range v.Question.Options {
			fmt.Fprintf(out, "  %d) %s\n", i+1, o.Text)
		}
	case v.Node != nil:
		fmt.Fprintln(out, v.Node.Text)
		for i, o := range v.Node.Options {
			fmt.Fprintf(out, "  %d) %s\n", i+1, o.Text)
		}
	}
}

func printResult(out io.Writer, v quiz.View) {
	fmt.Fprintln(out)
	switch {
	case v.Result != nil:
		r := v.Result
		fmt.Fprintf(out, "You are a %s! (score %d)\n", r.Name, v.Score)
		if r.Summary != "" {
			fmt.Fprintln(out, r.Summary)
		}
		if r.Description != "" {
			fmt.Fprintln(out, r.Description)
		}
		if len(r.Traits) > 0 {
			fmt.Fprintf(out, "Traits: %s\n", strings.Join(r.Traits, ", "))
		}
		if len(r.Compatibility) > 0 {
			fmt.Fprintf(out, "Gets along with: %s\n", strings.Join(r.Compatibility, ", "))
		}
	case v.Node != nil:
		fmt.Fprintf(out, "You are a %s!\n", v.Node.Title)
		if v.Node.Description != "" {
			fmt.Fprintln(out, v.Node.Description)
		}
	}
}
