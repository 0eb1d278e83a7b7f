package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "component-resolver",
	Short: "Identify the UI component that owns a rendered element",
	Long: `Component Resolver maps an element of a rendered page to the component that owns it.

It reads a DOM snapshot and, when available, a render-tree snapshot exported from the
running application, then tries a chain of strategies (devtools hook, render-tree walk,
markup heuristics, fallback synthesis) until one produces a name and a breadcrumb path.
Resolution always succeeds; the strategy that answered is reported with the result.`,
	Version:       "1.0.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newResolveCommand())
	rootCmd.AddCommand(newRulesCommand())
}
