// Copyright 2026 The Dandidash Authors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dandiviz/dandidash/internal/checkpoint"
	"github.com/dandiviz/dandidash/internal/pipeline"
)

// cacheCmd is the parent command for checkpoint cache subcommands.
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear the checkpoint cache",
	Long: `Inspect or clear the checkpoint cache written by 'dandidash build --cache'.

The cache directory comes from --cache-dir, DANDIDASH_CACHE_DIR, the config
files, or the per-user cache directory, in that order.`,
}

var cacheListCmd = &cobra.Command{
	Use:   "list",
	Short: "List cached entries",
	Args:  cobra.NoArgs,
	RunE:  runCacheList,
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every cached entry",
	Args:  cobra.NoArgs,
	RunE:  runCacheClear,
}

func init() {
	cacheCmd.PersistentFlags().String("cache-dir", "", "checkpoint cache directory")
	cacheCmd.AddCommand(cacheListCmd)
	cacheCmd.AddCommand(cacheClearCmd)
}

// openCache opens the store in the effective cache directory.
func openCache(cmd *cobra.Command) (*checkpoint.Store, error) {
	cfg, err := resolveConfig(pipeline.Config{CacheDir: stringFlag(cmd.Flags(), "cache-dir")})
	if err != nil {
		return nil, err
	}
	dir := cfg.CacheDir
	if dir == "" {
		dir = pipeline.DefaultCacheDir()
	}
	store, err := checkpoint.Open(dir, "")
	if err != nil {
		return nil, exitError(ExitFailure, "dandidash: cannot open cache %s (%v)", dir, err)
	}
	return store, nil
}

func runCacheList(cmd *cobra.Command, _ []string) error {
	store, err := openCache(cmd)
	if err != nil {
		return err
	}
	entries, err := store.List()
	if err != nil {
		return exitError(ExitFailure, "dandidash: %v", err)
	}

	w := cmd.OutOrStdout()
	if len(entries) == 0 {
		_, _ = fmt.Fprintf(w, "No cached entries in %s.\n", store.Dir())
		return nil
	}

	rows := make([][]string, len(entries))
	for i, e := range entries {
		rows[i] = []string{
			e.Key,
			e.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
			e.RunID,
			strconv.Itoa(e.Size()),
		}
	}
	_, _ = fmt.Fprintln(w, renderTable(
		[]string{"Key", "Created (UTC)", "Run", "Bytes"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight},
	))
	_, _ = fmt.Fprintf(w, "%d entries in %s\n", len(entries), store.Dir())
	return nil
}

func runCacheClear(cmd *cobra.Command, _ []string) error {
	store, err := openCache(cmd)
	if err != nil {
		return err
	}
	n, err := store.Clear()
	if err != nil {
		return exitError(ExitFailure, "dandidash: %v", err)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Removed %d cached entries from %s\n", n, store.Dir())
	return nil
}
