package strintern

import (
	"errors"
	"fmt"

	"github.com/hupe1980/strintern/blobstore"
	"github.com/hupe1980/strintern/internal/resource"
	"github.com/hupe1980/strintern/snapshot"
	"github.com/hupe1980/strintern/symbol"
)

var (
	// ErrUnknownSymbol is the panic value of MustResolve for symbols the
	// interner did not issue.
	ErrUnknownSymbol = errors.New("unknown symbol")

	// ErrCapacityExceeded is wrapped by the panic value raised when the
	// symbol type cannot encode the next index.
	ErrCapacityExceeded = symbol.ErrCapacityExceeded

	// ErrMemoryLimitExceeded is wrapped by the panic value raised when an
	// arena chunk would exceed the limit set by WithMemoryLimit.
	ErrMemoryLimitExceeded = resource.ErrMemoryLimitExceeded

	// ErrSnapshotNotFound is returned by Load when the named snapshot does
	// not exist.
	ErrSnapshotNotFound = errors.New("snapshot not found")

	// ErrDuplicateEntry is returned when a snapshot lists the same string
	// twice.
	ErrDuplicateEntry = errors.New("duplicate entry")
)

// ErrInvalidSnapshot indicates a snapshot that could not be decoded.
//
// The original underlying error can be accessed via errors.Unwrap.
type ErrInvalidSnapshot struct {
	Name  string
	cause error
}

func (e *ErrInvalidSnapshot) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("invalid snapshot: %v", e.cause)
	}
	return fmt.Sprintf("invalid snapshot %q: %v", e.Name, e.cause)
}

func (e *ErrInvalidSnapshot) Unwrap() error { return e.cause }

func translateError(name string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, blobstore.ErrNotFound) {
		return fmt.Errorf("%w: %q: %w", ErrSnapshotNotFound, name, err)
	}

	if errors.Is(err, snapshot.ErrInvalidMagic) ||
		errors.Is(err, snapshot.ErrUnsupportedVersion) ||
		errors.Is(err, snapshot.ErrChecksumMismatch) ||
		errors.Is(err, snapshot.ErrUnknownCodec) ||
		errors.Is(err, snapshot.ErrUnknownCompression) ||
		errors.Is(err, snapshot.ErrCorruptSnapshot) {
		return &ErrInvalidSnapshot{Name: name, cause: err}
	}

	return err
}
