// Mediafeed - Hybrid Media Recommendation Feed
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mediafeed

package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tomtom215/mediafeed/internal/media"
)

// SignalLimit caps each signal list returned by GetUserSignals.
const SignalLimit = 10

// GetUserSignals returns the user's ratings of MinSeedRating stars or more
// and their likes, each most recent first and capped at SignalLimit. A
// non-zero filter restricts both lists to that kind.
func (s *Store) GetUserSignals(ctx context.Context, userID string, filter media.Kind) (media.Signals, error) {
	ratings, err := s.querySignals(ctx, media.SignalRating, userID, filter)
	if err != nil {
		return media.Signals{}, err
	}
	likes, err := s.querySignals(ctx, media.SignalLike, userID, filter)
	if err != nil {
		return media.Signals{}, err
	}
	return media.Signals{HighRatings: ratings, Likes: likes}, nil
}

func (s *Store) querySignals(ctx context.Context, source media.SignalSource, userID string, filter media.Kind) ([]media.Signal, error) {
	var b strings.Builder
	args := []any{userID}
	if source == media.SignalRating {
		b.WriteString(`SELECT media_id, media_kind, title, rating, created_at FROM user_ratings WHERE user_id = ? AND rating >= ?`)
		args = append(args, media.MinSeedRating)
	} else {
		b.WriteString(`SELECT media_id, media_kind, title, 0, created_at FROM user_likes WHERE user_id = ?`)
	}
	if filter != "" {
		b.WriteString(` AND media_kind = ?`)
		args = append(args, string(filter))
	}
	b.WriteString(` ORDER BY created_at DESC, id DESC LIMIT ?`)
	args = append(args, SignalLimit)

	rows, err := s.db.QueryContext(ctx, s.rebind(b.String()), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s signals: %w", source, err)
	}
	defer closeWithLog(rows, "signal rows")

	signals := make([]media.Signal, 0, SignalLimit)
	for rows.Next() {
		var (
			sig       media.Signal
			kind      string
			createdAt int64
		)
		if err := rows.Scan(&sig.MediaID, &kind, &sig.Title, &sig.Stars, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan %s signal: %w", source, err)
		}
		sig.UserID = userID
		sig.Kind = media.Kind(kind)
		sig.Source = source
		sig.CreatedAt = time.UnixMilli(createdAt).UTC()
		signals = append(signals, sig)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate %s signals: %w", source, err)
	}
	return signals, nil
}

// AddRating records or replaces the user's 1-5 star rating of a media item.
func (s *Store) AddRating(ctx context.Context, sig media.Signal) error {
	return s.addRating(ctx, s.db, sig)
}

func (s *Store) addRating(ctx context.Context, q querier, sig media.Signal) error {
	if err := validateSignal(&sig); err != nil {
		return err
	}
	if sig.Stars < 1 || sig.Stars > 5 {
		return fmt.Errorf("rating must be between 1 and 5, got %d", sig.Stars)
	}

	_, err := q.ExecContext(ctx, s.rebind(`INSERT INTO user_ratings (user_id, media_id, media_kind, title, rating, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, media_id) DO UPDATE SET
			rating = excluded.rating,
			title = excluded.title,
			media_kind = excluded.media_kind,
			created_at = excluded.created_at`),
		sig.UserID, sig.MediaID, string(sig.Kind), sig.Title, sig.Stars, createdAtMillis(sig.CreatedAt))
	if err != nil {
		return fmt.Errorf("failed to save rating: %w", err)
	}
	return nil
}

// AddLike records a like. Liking the same item twice is a no-op.
func (s *Store) AddLike(ctx context.Context, sig media.Signal) error {
	return s.addLike(ctx, s.db, sig)
}

func (s *Store) addLike(ctx context.Context, q querier, sig media.Signal) error {
	if err := validateSignal(&sig); err != nil {
		return err
	}

	_, err := q.ExecContext(ctx, s.rebind(`INSERT INTO user_likes (user_id, media_id, media_kind, title, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (user_id, media_id) DO NOTHING`),
		sig.UserID, sig.MediaID, string(sig.Kind), sig.Title, createdAtMillis(sig.CreatedAt))
	if err != nil {
		return fmt.Errorf("failed to save like: %w", err)
	}
	return nil
}

// RemoveLike deletes a like. It returns ErrNotFound when there was none.
func (s *Store) RemoveLike(ctx context.Context, userID, mediaID string) error {
	res, err := s.db.ExecContext(ctx, s.rebind(`DELETE FROM user_likes WHERE user_id = ? AND media_id = ?`), userID, mediaID)
	if err != nil {
		return fmt.Errorf("failed to remove like: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to remove like: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("like %s/%s: %w", userID, mediaID, ErrNotFound)
	}
	return nil
}

func validateSignal(sig *media.Signal) error {
	sig.UserID = strings.TrimSpace(sig.UserID)
	sig.MediaID = strings.TrimSpace(sig.MediaID)
	sig.Title = strings.TrimSpace(sig.Title)
	switch {
	case sig.UserID == "":
		return errors.New("signal user id is required")
	case sig.MediaID == "":
		return errors.New("signal media id is required")
	case sig.Title == "":
		return errors.New("signal title is required")
	case !sig.Kind.Valid():
		return fmt.Errorf("signal %s: %w: %q", sig.MediaID, media.ErrUnknownKind, sig.Kind)
	}
	return nil
}

func createdAtMillis(t time.Time) int64 {
	if t.IsZero() {
		t = time.Now()
	}
	return t.UnixMilli()
}
