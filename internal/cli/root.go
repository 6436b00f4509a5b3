// Package cli implements the spam-detector command line.
package cli

import (
	"context"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"go.uber.org/dig"

	"github.com/mikey/spam-detector/internal/config"
	"github.com/mikey/spam-detector/internal/di"
)

// globalOptions are the persistent flags shared by every command
type globalOptions struct {
	configFile string
	provider   string
	server     string
	logLevel   string
	logFile    string
	jsonLog    bool
}

// flagKeys maps persistent flags onto configuration keys
var flagKeys = map[string]string{
	"provider":  "classifier.provider",
	"server":    "classifier.base_url",
	"log-level": "logging.level",
	"log-file":  "logging.file",
}

// NewRootCommand creates the root command. Without a subcommand it starts the TUI.
func NewRootCommand(version, commit, date string) *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "spam-detector",
		Short: "Detect spam and phishing in emails and messages",
		Long: `spam-detector sends a message to a classification backend and shows whether it is
spam or legitimate, together with the confidence and class probabilities.

Run without a command to open the interactive analyzer, or use "classify" for
one-shot analysis from a file, a flag or stdin.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, opts)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.configFile, "config", "c", "", "config file path")
	flags.StringVarP(&opts.provider, "provider", "p", "", "classifier provider (http, openai, gemini, bedrock)")
	flags.StringVar(&opts.server, "server", "", "base URL of the prediction service")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	flags.StringVar(&opts.logFile, "log-file", "", "write logs to this file")
	flags.BoolVar(&opts.jsonLog, "json-log", false, "output logs in JSON format")

	rootCmd.AddCommand(newClassifyCommand(opts))
	rootCmd.AddCommand(newSamplesCommand())
	rootCmd.AddCommand(newVersionCommand(version, commit, date))

	return rootCmd
}

// loadConfig reads the configuration file and applies flag overrides
func loadConfig(cmd *cobra.Command, opts *globalOptions) (*config.Config, error) {
	cfg, err := config.New(opts.configFile)
	if err != nil {
		return nil, err
	}

	for name, key := range flagKeys {
		if err := cfg.BindFlag(key, cmd.Flag(name)); err != nil {
			return nil, err
		}
	}
	if opts.jsonLog {
		cfg.Set("logging.format", "json")
	}

	return cfg, nil
}

// buildContainer loads configuration and assembles the application graph
func buildContainer(cmd *cobra.Command, opts *globalOptions, tui bool) (*dig.Container, error) {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return nil, err
	}
	return di.BuildContainer(di.Options{Config: cfg, TUI: tui})
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func newVersionCommand(version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  "Display version number, build commit, date, and runtime information",
		Run: func(cmd *cobra.Command, args []string) {
			displayVersion := version
			displayCommit := commit
			displayDate := date

			if version == "dev" || version == "" {
				displayVersion = "development"
			}
			if commit == "none" || commit == "" {
				displayCommit = "local-build"
			}
			if date == "unknown" || date == "" {
				displayDate = "local-build"
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "spam-detector %s (%s) built on %s\n", displayVersion, displayCommit, displayDate)
			fmt.Fprintf(out, "Go version: %s\n", runtime.Version())
			fmt.Fprintf(out, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}
