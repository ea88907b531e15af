// Copyright 2026 The Dandidash Authors
// SPDX-License-Identifier: MIT

package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	dashlog "github.com/dandiviz/dandidash/internal/log"
)

// Global flag values.
var (
	verbose bool
	quiet   bool
	noColor bool
)

// rootCmd is the base command for dandidash.
var rootCmd = &cobra.Command{
	Use:   "dandidash",
	Short: "Build interactive plot dashboards for DANDI datasets",
	Long: `Dandidash reads the asset metadata of a DANDI Archive dandiset and builds a
static HTML dashboard: a Modality x Subject overview, one Stain x Sample plot
per subject whose cells open the imaging data in Neuroglancer, and a selector
page that switches between them.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		dashlog.Setup(verbose, quiet)
		color.NoColor = useNoColor(noColor, os.Stdout.Fd())
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-essential output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// useNoColor reports whether color output must be disabled: on request, or
// when stdout is not a terminal.
func useNoColor(flag bool, fd uintptr) bool {
	if flag {
		return true
	}
	return !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd)
}
