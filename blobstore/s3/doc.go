// Package s3 stores prost blobs in Amazon S3.
//
// # Usage
//
//	cfg, err := config.LoadDefaultConfig(ctx)
//	store := s3.NewStore(awss3.NewFromConfig(cfg), "my-bucket", "prost/")
//
//	db, err := persistence.LoadDatabase(ctx, store, "sp.prdb")
//
// A CommitStore layers versioned, conflict-checked writes on top of any
// blobstore.BlobStore using DynamoDB conditional puts. It is meant for blobs
// that several machines update, such as a shared sequence cache.
package s3
