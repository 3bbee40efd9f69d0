// Mediafeed - Hybrid Media Recommendation Feed
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mediafeed

package main

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/tomtom215/mediafeed/internal/media"
	"github.com/tomtom215/mediafeed/internal/store"
)

// withStore opens the configured database (applying migrations) for the
// duration of fn.
func (c *cli) withStore(cmd *cobra.Command, fn func(*store.Store) error) error {
	s, err := store.Open(cmd.Context(), c.cfg.Database, c.logger)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()
	return fn(s)
}

func newMigrateCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd, func(s *store.Store) error {
				counts, err := s.CountLibraryItems(cmd.Context())
				if err != nil {
					return err
				}
				total := 0
				for _, n := range counts {
					total += n
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Database is up to date (%s, %d library items)\n", c.cfg.Database.Driver, total)
				return nil
			})
		},
	}
}

func newSeedCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "seed <file.yaml>",
		Short: "Load library items, signals and preferences from YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd, func(s *store.Store) error {
				stats, err := s.SeedFromFile(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d items, %d ratings, %d likes\n", stats.Items, stats.Ratings, stats.Likes)
				return nil
			})
		},
	}
}

func newRateCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "rate <user> <media-id> <kind> <title> <stars>",
		Short: "Record a 1-5 star rating",
		Args:  cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := media.ParseKind(args[2])
			if err != nil {
				return err
			}
			stars, err := strconv.Atoi(args[4])
			if err != nil {
				return fmt.Errorf("stars must be a number: %w", err)
			}

			sig := media.Signal{
				UserID:    args[0],
				MediaID:   args[1],
				Kind:      kind,
				Title:     args[3],
				Source:    media.SignalRating,
				Stars:     stars,
				CreatedAt: time.Now(),
			}
			return c.withStore(cmd, func(s *store.Store) error {
				if err := s.AddRating(cmd.Context(), sig); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Rated %q %d/5 for %s\n", sig.Title, sig.Stars, sig.UserID)
				return nil
			})
		},
	}
}

func newLikeCmd(c *cli) *cobra.Command {
	var remove bool

	cmd := &cobra.Command{
		Use:   "like <user> <media-id> [kind title]",
		Short: "Like an item, or remove a like with --remove",
		Args: func(cmd *cobra.Command, args []string) error {
			if remove {
				return cobra.ExactArgs(2)(cmd, args)
			}
			return cobra.ExactArgs(4)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if remove {
				return c.withStore(cmd, func(s *store.Store) error {
					err := s.RemoveLike(cmd.Context(), args[0], args[1])
					if errors.Is(err, store.ErrNotFound) {
						fmt.Fprintf(cmd.OutOrStdout(), "%s had not liked %s\n", args[0], args[1])
						return nil
					}
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Removed like on %s for %s\n", args[1], args[0])
					return nil
				})
			}

			kind, err := media.ParseKind(args[2])
			if err != nil {
				return err
			}
			sig := media.Signal{
				UserID:    args[0],
				MediaID:   args[1],
				Kind:      kind,
				Title:     args[3],
				Source:    media.SignalLike,
				CreatedAt: time.Now(),
			}
			return c.withStore(cmd, func(s *store.Store) error {
				if err := s.AddLike(cmd.Context(), sig); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Liked %q for %s\n", sig.Title, sig.UserID)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&remove, "remove", false, "Remove an existing like")
	return cmd
}
