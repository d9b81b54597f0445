// webforge is the main CLI: generate, edge, analyze, snapshots, serve.
//
// Usage:
//
//	webforge generate <url> [--kind=gui|api|both] [-o <dir>]
//	webforge edge <url> [--kind=gui|api] [--only=<category>]
//	webforge analyze <suite.json> [--kind=gui|api]
//	webforge snapshots [id] [--run=<run-id>]
//	webforge serve
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"webforge/internal/config"
	"webforge/internal/logging"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootFlags struct {
	configPath string
	logLevel   string
	logFormat  string
}

var rootCmd = &cobra.Command{
	Use:   "webforge",
	Short: "LLM-assisted test suite generation for web applications",
	Long: "Webforge discovers an application's page structure and API surface,\n" +
		"generates GUI and API test suites through an LLM, hardens them with\n" +
		"deterministic edge cases, and scores the result.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		logging.Init(logging.ParseLevel(rootFlags.logLevel), rootFlags.logFormat)
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&rootFlags.configPath, "config", "c", "", "Path to webforge config file (YAML/JSON)")
	pf.StringVar(&rootFlags.logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.StringVar(&rootFlags.logFormat, "log-format", "text", "Log format: text or json")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(edgeCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(snapshotsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.Version = version
}

// loadConfig merges the config file (if any) under the CLI flags. Flag
// handling stays in each subcommand; this only produces the base config.
func loadConfig() (*config.Config, error) {
	if rootFlags.configPath == "" {
		cfg := config.Default()
		return &cfg, nil
	}
	return config.LoadFromPath(rootFlags.configPath)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
