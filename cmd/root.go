package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/cinelingo/internal/app"
	"github.com/abhisek/cinelingo/internal/config"
	"github.com/abhisek/cinelingo/internal/content"
)

var rootCmd = &cobra.Command{
	Use:   "cinelingo",
	Short: "Cinema-themed English practice in the terminal",
	Long:  "Cinelingo: interactive English activities about films: matching, fill-in-the-blank, choices and short writing.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "Path to a YAML config file")
	flags.String("content", "", "Path to an activities JSON file (overrides the built-in activities)")
	flags.String("log-file", "", "Write logs to this file")
	flags.String("log-level", "info", "Log level: debug, info, warn or error")
	flags.String("start", "", "Open this activity instead of the menu")
	flags.String("env", "local", "Environment: local, development or production")
	flags.Bool("splash", true, "Show the title card before the menu")

	rootCmd.AddCommand(practiceCmd)
	rootCmd.AddCommand(activitiesCmd)
	rootCmd.AddCommand(versionCmd)
}

// runApp builds a session and launches the TUI.
func runApp(cmd *cobra.Command) error {
	rt, err := newRuntime(cmd)
	if err != nil {
		return err
	}
	defer rt.Close()

	return app.Run(rt.sess, app.Options{Splash: rt.cfg.Splash})
}

// loadConfig reads configuration with the command's flags bound.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	return config.Load(config.Options{
		ConfigFile: path,
		Flags:      cmd.Flags(),
	})
}

// loadCatalog returns the content file's activities, or the built-in
// ones when no file is configured.
func loadCatalog(cfg *config.Config) (*content.Catalog, error) {
	if cfg.ContentFile == "" {
		return content.Default()
	}
	cat, err := content.FromFile(cfg.ContentFile)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", cfg.ContentFile, err)
	}
	return cat, nil
}
