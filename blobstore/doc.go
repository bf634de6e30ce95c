// Package blobstore abstracts where fingerprint databases, sequence caches
// and term databases live.
//
// A BlobStore holds immutable named blobs. Writers replace a blob as a whole
// with Put; readers Open a blob and read it by offset or range.
//
// # Implementations
//
//   - LocalStore: a directory on the local file system, mmap-backed reads
//   - MemoryStore: in-process map, for tests
//   - s3.Store: Amazon S3
//   - s3.CommitStore: versioned blobs with DynamoDB commits
//   - minio.Store: MinIO and other S3-compatible services
//
// Location strings such as "s3://bucket/prefix" are parsed with
// ParseLocation; constructing the backend is left to the caller.
package blobstore
