// Package minio stores prost blobs in MinIO or any other S3-compatible
// service (Ceph, Garage, SeaweedFS) through the MinIO client.
//
//	client, err := minio.New("localhost:9000", &minio.Options{
//	    Creds:  credentials.NewStaticV4("minioadmin", "minioadmin", ""),
//	    Secure: false,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	store := minioblob.NewStore(client, "prost", "databases/")
//	db, err := persistence.LoadDatabase(ctx, store, "sp.prdb")
//
// The CLI builds a store from MINIO_ACCESS_KEY, MINIO_SECRET_KEY and
// MINIO_SECURE for minio://endpoint/bucket/... locations.
package minio
