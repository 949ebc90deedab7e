package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"dubstrip/internal/scancache"
)

func newCacheCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the inspection cache",
	}
	cmd.AddCommand(newCacheListCommand(ctx))
	cmd.AddCommand(newCacheClearCommand(ctx))
	return cmd
}

func (c *commandContext) withCache(fn func(*scancache.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	store, err := scancache.Open(cfg.Paths.CacheDir, nil)
	if err != nil {
		return fmt.Errorf("open inspection cache: %w", err)
	}
	defer store.Close()
	return fn(store)
}

func newCacheListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List cached inspections",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withCache(func(store *scancache.Store) error {
				entries, err := store.Entries(cmd.Context())
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(entries) == 0 {
					fmt.Fprintln(out, "Inspection cache is empty.")
					return nil
				}

				rows := make([][]string, 0, len(entries))
				for _, entry := range entries {
					cachedAt := ""
					if !entry.CachedAt.IsZero() {
						cachedAt = entry.CachedAt.Local().Format(time.RFC3339)
					}
					rows = append(rows, []string{entry.Path, strconv.FormatInt(entry.Size, 10), cachedAt})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"File", "Size", "Cached At"},
					rows,
					[]columnAlignment{alignLeft, alignRight, alignLeft},
				))
				fmt.Fprintf(out, "%d entries in %s\n", len(entries), store.Path())
				return nil
			})
		},
	}
}

func newCacheClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached inspections",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withCache(func(store *scancache.Store) error {
				count, err := store.Count(cmd.Context())
				if err != nil {
					return err
				}
				if err := store.Clear(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d cached inspections.\n", count)
				return nil
			})
		},
	}
}
