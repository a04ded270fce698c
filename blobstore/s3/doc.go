// Package s3 provides an Amazon S3 implementation of blobstore.Store.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("interners/"),
//	    s3.WithRegion("us-east-1"),
//	)
//
//	err = in.Save(ctx, store, "tokens.sint", snapshot.Options{})
//
// # Features
//
//   - Managed uploads (multipart for large snapshots)
//   - CRC32C integrity checksums on single-part uploads
//   - Optional throughput limit for uploads and downloads
//   - Configurable prefix for multi-tenant isolation
//   - CommitStore: DynamoDB conditional writes for a CURRENT pointer that
//     stays consistent with concurrent writers
package s3
