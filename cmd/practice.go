package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/cinelingo/internal/console"
)

var practiceCmd = &cobra.Command{
	Use:   "practice",
	Short: "Work through the activities with typed commands (no TUI)",
	Long: `Answer activities one command per line, reading from standard input.

Useful on terminals without full-screen support and for scripted runs:

  printf 'goto genres\nmatch A A\nquit\n' | cinelingo practice`,
	RunE: runPractice,
}

func init() {
	practiceCmd.Flags().Bool("summary", true, "Print the session summary on exit")
}

func runPractice(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime(cmd)
	if err != nil {
		return err
	}
	defer rt.Close()

	out := cmd.OutOrStdout()
	con := console.New(rt.sess, out, rt.log)
	if err := con.Run(cmd.Context(), cmd.InOrStdin()); err != nil {
		return fmt.Errorf("read commands: %w", err)
	}

	if show, _ := cmd.Flags().GetBool("summary"); !show {
		return nil
	}
	sum, err := rt.sess.BuildSummary(cmd.Context())
	if err != nil {
		return fmt.Errorf("build summary: %w", err)
	}

	fmt.Fprintf(out, "── Summary: %d of %d activities complete ──\n", sum.CompletedCount, sum.ActivityCount)
	if len(sum.CompletedTitles) > 0 {
		fmt.Fprintf(out, "Completed: %s\n", strings.Join(sum.CompletedTitles, ", "))
	}
	if sum.TotalAttempts == 0 {
		fmt.Fprintln(out, "No answers recorded yet.")
		return nil
	}
	fmt.Fprintf(out, "Answers: %d  Correct: %d  Accuracy: %.0f%%\n",
		sum.TotalAttempts, sum.TotalCorrect, sum.Accuracy*100)
	for _, r := range sum.Results {
		done := ""
		if r.Completed {
			done = " ✓"
		}
		fmt.Fprintf(out, "  %-30s %3d answers  %3.0f%%%s\n", r.Title, r.Attempts, r.Accuracy*100, done)
	}
	return nil
}
