package blobstore

import (
	"context"
	"fmt"
	"strings"
)

// CurrentName is the blob that records the name of the latest snapshot in
// stores without native commit support.
const CurrentName = "CURRENT"

// Committer is implemented by stores that track the latest snapshot
// themselves, typically with a compare-and-swap primitive.
type Committer interface {
	// Commit makes name the latest snapshot.
	Commit(ctx context.Context, name string) error
	// Current returns the name of the latest snapshot.
	Current(ctx context.Context) (string, error)
}

// Commit records name as the latest snapshot in store.
func Commit(ctx context.Context, store Store, name string) error {
	if c, ok := store.(Committer); ok {
		return c.Commit(ctx, name)
	}
	return store.Put(ctx, CurrentName, []byte(name))
}

// Current returns the name of the latest snapshot in store. It returns an
// error satisfying errors.Is(err, ErrNotFound) if nothing was committed.
func Current(ctx context.Context, store Store) (string, error) {
	if c, ok := store.(Committer); ok {
		return c.Current(ctx)
	}
	data, err := store.Get(ctx, CurrentName)
	if err != nil {
		return "", err
	}
	name := strings.TrimSpace(string(data))
	if name == "" {
		return "", fmt.Errorf("blobstore: empty %s: %w", CurrentName, ErrNotFound)
	}
	return name, nil
}
