// Copyright 2026 The Dandidash Authors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/dandiviz/dandidash/internal/verify"
)

// verifyCmd checks a generated page for broken plot references.
var verifyCmd = &cobra.Command{
	Use:   "verify <page>",
	Short: "Check that a selector page's plot files exist",
	Long: `Parse a generated selector page and check that every plot it references
exists relative to the page. Pages built with --format inline embed their
plots and have nothing to check.

Exits with status 2 when any reference is missing.`,
	Args: cobra.ExactArgs(1),
	RunE: runVerify,
}

func runVerify(cmd *cobra.Command, args []string) error {
	report, err := verify.Page(args[0])
	if err != nil {
		return exitError(ExitFailure, "dandidash: %v", err)
	}

	w := cmd.OutOrStdout()
	red := color.New(color.FgRed)
	green := color.New(color.FgGreen)

	if report.Inline {
		if !quiet {
			_, _ = green.Fprintf(w, "%s: %d embedded plot(s), no file references\n", report.Page, report.Embedded)
		}
		return nil
	}

	missing := report.Missing()
	for _, ref := range missing {
		_, _ = fmt.Fprintf(w, "  %s %s (%s)\n", red.Sprint("missing"), ref.Href, ref.Path)
	}
	if len(missing) > 0 {
		return exitError(ExitVerifyFailed, "dandidash: %d of %d plot reference(s) missing in %s",
			len(missing), len(report.Refs), report.Page)
	}
	if !quiet {
		_, _ = green.Fprintf(w, "%s: %d plot reference(s) ok\n", report.Page, len(report.Refs))
	}
	return nil
}
