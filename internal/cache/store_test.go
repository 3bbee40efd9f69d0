// Mediafeed - Hybrid Media Recommendation Feed
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mediafeed

package cache

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/rs/zerolog"

	"github.com/tomtom215/mediafeed/internal/config"
)

func TestGenerateKey(t *testing.T) {
	a := GenerateKey("tmdb", "search", "movie", "matrix")
	b := GenerateKey("tmdb", "search", "movie", "matrix")
	c := GenerateKey("tmdb", "search", "tv", "matrix")

	if a != b {
		t.Error("GenerateKey should be deterministic")
	}
	if a == c {
		t.Error("different parts should give different keys")
	}
	if !strings.HasPrefix(a, "tmdb:") || len(a) != len("tmdb:")+32 {
		t.Errorf("GenerateKey() = %q, want tmdb:<32 hex chars>", a)
	}
}

func TestOpen(t *testing.T) {
	mr := miniredis.RunT(t)

	tests := []struct {
		name    string
		cfg     config.CacheConfig
		want    string
		wantErr bool
	}{
		{"memory", config.CacheConfig{Backend: BackendMemory, CleanupInterval: time.Minute}, BackendMemory, false},
		{"default", config.CacheConfig{}, BackendMemory, false},
		{"badger", config.CacheConfig{Backend: BackendBadger, Badger: config.BadgerCacheConfig{InMemory: true}}, BackendBadger, false},
		{"redis", config.CacheConfig{Backend: BackendRedis, Redis: config.RedisCacheConfig{Addr: mr.Addr()}}, BackendRedis, false},
		{"none", config.CacheConfig{Backend: BackendNone}, BackendNone, false},
		{"unknown", config.CacheConfig{Backend: "memcached"}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := Open(context.Background(), tt.cfg, zerolog.Nop())
			if tt.wantErr {
				if err == nil {
					t.Fatal("Open() should fail")
				}
				return
			}
			if err != nil {
				t.Fatalf("Open() error = %v", err)
			}
			defer store.Close()
			if store.Name() != tt.want {
				t.Errorf("Name() = %q, want %q", store.Name(), tt.want)
			}
		})
	}
}

func TestNoop(t *testing.T) {
	var n Noop
	_ = n.Set(context.Background(), "k", []byte("v"), time.Minute)
	if _, ok, err := n.Get(context.Background(), "k"); ok || err != nil {
		t.Error("Noop should always miss")
	}
}
