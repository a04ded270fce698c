// Package blobstore stores snapshots as whole, immutable blobs.
//
// Store is the interface for reading and writing blobs by name.
// Implementations must be safe for concurrent use.
//
// # Built-in Implementations
//
//   - LocalStore: local filesystem; atomic writes, memory-mapped reads
//   - MemoryStore: in-process map, for tests and ephemeral use
//   - s3.Store: Amazon S3, with s3.CommitStore adding a DynamoDB-backed
//     CURRENT pointer for concurrent writers
//   - minio.Store: MinIO and other S3-compatible services
//
// # Custom Implementations
//
//	type Store interface {
//	    Get(ctx, name) ([]byte, error)
//	    Put(ctx, name, data) error   // Atomic write
//	    Delete(ctx, name) error
//	    List(ctx, prefix) ([]string, error)
//	    Exists(ctx, name) (bool, error)
//	}
//
// Get must return an error satisfying errors.Is(err, ErrNotFound) for
// missing blobs.
package blobstore
