package cachestore

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/karmascope/karmascope/helpers"
)

// A miss is reported as an empty string and no error.
type CacheStore interface {
	Get(ctx context.Context, name, key string) (string, error)
	Set(ctx context.Context, name, key string, val string) error
	Purge(ctx context.Context, name, key string) error
}

// Builds a fixed-length cache key out of arbitrary (possibly user-supplied) parts.
func Key(parts ...string) string {
	return helpers.HashOfString(strings.Join(parts, "\x00"))
}

// Fetches and decodes a cached JSON value. The boolean is false on a cache miss.
func GetJSON[T any](ctx context.Context, cs CacheStore, name, key string) (*T, bool, error) {
	raw, err := cs.Get(ctx, name, key)
	if err != nil {
		return nil, false, err
	}
	if raw == "" {
		return nil, false, nil
	}
	var val T
	if err := json.Unmarshal([]byte(raw), &val); err != nil {
		return nil, false, fmt.Errorf("decoding cached %s value: %w", name, err)
	}
	return &val, true, nil
}

func SetJSON(ctx context.Context, cs CacheStore, name, key string, val any) error {
	b, err := json.Marshal(val)
	if err != nil {
		return fmt.Errorf("encoding %s value for cache: %w", name, err)
	}
	return cs.Set(ctx, name, key, string(b))
}
