// Package storage connects to the S3-compatible bucket that can replace the
// local RACache directory (racache.backend=s3).
//
// The Client interface exposes only the MinIO calls the object backend needs,
// so tests use the testify mock in core/storage/mocks.
//
//	client, err := storage.NewClient(cfg.Storage)
//	err = storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region)
package storage
