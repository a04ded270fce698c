// Package resource tracks memory and IO budgets.
//
//   - Memory: a hard limit on bytes handed to interner arenas (non-blocking,
//     fail-fast). Exceeding it is a resource-exhaustion condition.
//   - IO: a token-bucket limit on snapshot bytes moved to or from blob storage.
//
//	rc := resource.NewController(resource.Config{
//	    MemoryLimitBytes:   64 << 20,
//	    IOLimitBytesPerSec: 32 << 20,
//	})
//
//	if err := rc.AcquireMemory(1 << 20); err != nil {
//	    // ErrMemoryLimitExceeded
//	}
//	defer rc.ReleaseMemory(1 << 20)
//
//	r := resource.NewRateLimitedReader(ctx, body, rc)
//
// All methods are safe for concurrent use and every method on a nil
// *Controller is a no-op.
package resource
