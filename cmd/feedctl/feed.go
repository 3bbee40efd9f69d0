// Mediafeed - Hybrid Media Recommendation Feed
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mediafeed

package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/tomtom215/mediafeed/internal/app"
	"github.com/tomtom215/mediafeed/internal/feed"
	"github.com/tomtom215/mediafeed/internal/media"
)

const maxTitleWidth = 48

func newFeedCmd(c *cli) *cobra.Command {
	var (
		kind    string
		genre   string
		ratings []string
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "feed <user>",
		Short: "Build a recommendation feed for a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := media.ParseFilter(kind)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), c.cfg.Server.Timeout)
			defer cancel()

			instance, err := app.New(ctx, c.cfg, c.logger)
			if err != nil {
				return err
			}
			defer func() { _ = instance.Close() }()

			result, err := instance.Engine.BuildFeed(ctx, feed.Request{
				UserID:            args[0],
				Filter:            filter,
				Genre:             genre,
				RestrictedRatings: normalizeRatings(ratings),
			})
			if err != nil {
				return fmt.Errorf("building feed: %w", err)
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), result)
			}
			return writeTable(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "", "Restrict to movie, tv, book or game")
	cmd.Flags().StringVar(&genre, "genre", "", "Build a genre feed")
	cmd.Flags().StringSliceVar(&ratings, "ratings", nil, "Allowed content ratings (e.g. L,10,12)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the feed as JSON")
	return cmd
}

func normalizeRatings(in []string) []string {
	out := make([]string, 0, len(in))
	for _, r := range in {
		if r = strings.ToUpper(strings.TrimSpace(r)); r != "" {
			out = append(out, r)
		}
	}
	return out
}

func writeJSON(w io.Writer, result *feed.Feed) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding feed: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func writeTable(w io.Writer, result *feed.Feed) error {
	fmt.Fprintf(w, "mode: %s, items: %d\n\n", result.Mode, len(result.Items))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tKIND\tTITLE\tSCORE\tREASON")
	for i, item := range result.Items {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%.1f\t%s\n",
			i+1, item.Kind, truncate(item.Title, maxTitleWidth), media.Score(&item.Record), item.Reason().Description)
	}
	return tw.Flush()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
