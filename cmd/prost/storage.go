package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	miniogo "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/hupe1980/prost/blobstore"
	"github.com/hupe1980/prost/blobstore/minio"
	"github.com/hupe1980/prost/blobstore/s3"
)

// openLocation returns the store holding loc and the blob name inside it.
func openLocation(ctx context.Context, cfg config, loc string) (blobstore.BlobStore, string, error) {
	l, err := blobstore.ParseLocation(loc)
	if err != nil {
		return nil, "", err
	}
	if l.Name == "" {
		return nil, "", fmt.Errorf("location %q names no blob", loc)
	}

	switch l.Scheme {
	case "file":
		return blobstore.NewLocalStore(l.Prefix), l.Name, nil

	case "s3":
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, "", fmt.Errorf("load AWS config: %w", err)
		}
		var bs blobstore.BlobStore = s3.NewStore(awss3.NewFromConfig(awsCfg), l.Bucket, l.Prefix)
		if cfg.CommitTable != "" {
			base := "s3://" + l.Bucket + "/" + l.Prefix
			bs = s3.NewCommitStore(bs, dynamodb.NewFromConfig(awsCfg), cfg.CommitTable, strings.TrimSuffix(base, "/"))
		}
		return bs, l.Name, nil

	case "minio":
		client, err := miniogo.New(l.Endpoint, &miniogo.Options{
			Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
			Secure: cfg.MinioSecure,
		})
		if err != nil {
			return nil, "", fmt.Errorf("minio client: %w", err)
		}
		return minio.NewStore(client, l.Bucket, l.Prefix), l.Name, nil

	default:
		return nil, "", fmt.Errorf("%w: %q", blobstore.ErrUnsupportedScheme, l.Scheme)
	}
}

// openInput opens a plain input file ("-" is stdin) or a blob location.
func openInput(ctx context.Context, cfg config, loc string) (io.ReadCloser, error) {
	if loc == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	bs, name, err := openLocation(ctx, cfg, loc)
	if err != nil {
		return nil, err
	}
	data, err := blobstore.ReadAll(ctx, bs, name)
	if err != nil {
		return nil, err
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

// writeOutput stores the bytes produced by write at loc ("-" is stdout).
func writeOutput(ctx context.Context, cfg config, loc string, stdout io.Writer, write func(io.Writer) error) error {
	if loc == "-" {
		return write(stdout)
	}
	var buf bytes.Buffer
	if err := write(&buf); err != nil {
		return err
	}
	bs, name, err := openLocation(ctx, cfg, loc)
	if err != nil {
		return err
	}
	return bs.Put(ctx, name, buf.Bytes())
}
