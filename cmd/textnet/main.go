package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/stevenlee02/textnet/pkg/graph"
	"github.com/stevenlee02/textnet/pkg/logging"
	"github.com/stevenlee02/textnet/pkg/profile"
)

var version = "0.3.0"

var (
	profilePath string
	tunedFlag   bool
	logLevel    string
)

var rootCmd = &cobra.Command{
	Use:   "textnet",
	Short: "textnet - interactive force-directed text network diagrams",
	Long: `Lay out and explore co-occurrence networks extracted from text.

Documents are JSON: a nodes array, a links array, and an optional contexts
table keyed by sorted "A|B" pairs. The view command opens an interactive
terminal canvas; render exports a converged layout to an image.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.SetVersionTemplate("textnet {{ .Version }}\n")
	rootCmd.PersistentFlags().StringVar(&profilePath, "profile", "", "Path to a YAML layout profile")
	rootCmd.PersistentFlags().BoolVar(&tunedFlag, "tuned", false, "Use the tuned profile (flat 0.05 spring strength)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(
		viewCmd(),
		renderCmd(),
		statsCmd(),
		validateCmd(),
	)
}

// loadProfile resolves the layout profile from the persistent flags. A
// --profile file starts from the default profile and overrides only the
// fields it names.
func loadProfile() (profile.Profile, error) {
	if profilePath != "" {
		return profile.LoadFile(profilePath)
	}
	if tunedFlag {
		return profile.Tuned(), nil
	}
	return profile.Default(), nil
}

func loadDocument(path string) (*graph.Document, error) {
	if path == "-" {
		return graph.ParseDocument(os.Stdin)
	}
	return graph.ParseDocumentFile(path)
}

func newLogger() logging.Logger {
	return logging.NewJSONLogger(os.Stderr, logging.ParseLevel(logLevel))
}

func openLogFile(path string) (*os.File, error) {
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "textnet: %v\n", err)
		os.Exit(1)
	}
}
