// Package cmd implements the command line interface of the portfolio server.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "portfolio-server",
	Short: "Personal portfolio website",
	Long: `portfolio-server serves the pages of a personal portfolio website,
including a music page built from Last.fm listening statistics.`,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "dev.config.yaml", "config file, empty for defaults and environment only")
}
