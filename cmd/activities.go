package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var activitiesCmd = &cobra.Command{
	Use:   "activities",
	Short: "Browse the activity catalog",
}

var activitiesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List activities in presentation order",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		cat, err := loadCatalog(cfg)
		if err != nil {
			return err
		}
		showBroken, _ := cmd.Flags().GetBool("broken")

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%3s  %-24s  %-40s  %9s  %s\n", "#", "ID", "Title", "Questions", "Units")
		fmt.Fprintln(out, strings.Repeat("─", 90))

		for _, set := range cat.Available() {
			title := set.Title
			if len(title) > 40 {
				title = title[:37] + "..."
			}
			fmt.Fprintf(out, "%3d  %-24s  %-40s  %9d  %d\n",
				set.Number, set.ActivityID, title, len(set.Questions), set.RequiredCount())
		}

		broken := cat.Broken()
		fmt.Fprintf(out, "\n%d activities", len(cat.Available()))
		if len(broken) > 0 {
			fmt.Fprintf(out, ", %d unavailable", len(broken))
		}
		fmt.Fprintln(out)

		if showBroken {
			for _, id := range cat.Order() {
				if err, ok := broken[id]; ok {
					fmt.Fprintf(out, "  %s: %v\n", id, err)
				}
			}
		}
		return nil
	},
}

func init() {
	activitiesListCmd.Flags().Bool("broken", false, "Also print why unavailable activities failed to load")

	activitiesCmd.AddCommand(activitiesListCmd)
}
