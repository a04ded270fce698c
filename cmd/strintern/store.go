package main

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/config"

	"github.com/hupe1980/strintern/blobstore"
	"github.com/hupe1980/strintern/blobstore/minio"
	"github.com/hupe1980/strintern/blobstore/s3"
)

// openStore opens the snapshot store named by cfg.Store.
//
//	file://dir                      local directory (relative paths allowed)
//	mem://                          process-local memory
//	s3://bucket/prefix              Amazon S3, default credential chain
//	minio://endpoint/bucket/prefix  MinIO, credentials from MINIO_ACCESS_KEY
//	                                and MINIO_SECRET_KEY
//
// A bare path is treated as file://.
func openStore(ctx context.Context, cfg *Config) (blobstore.Store, error) {
	raw := cfg.Store
	if !strings.Contains(raw, "://") {
		raw = "file://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid store URL %q: %w", cfg.Store, err)
	}

	switch u.Scheme {
	case "file":
		dir := u.Host + u.Path
		if dir == "" {
			dir = "."
		}
		return blobstore.NewLocalStore(filepath.Clean(dir)), nil
	case "mem":
		return blobstore.NewMemoryStore(), nil
	case "s3":
		return openS3(ctx, cfg, u)
	case "minio":
		return openMinio(u)
	default:
		return nil, fmt.Errorf("unsupported store scheme %q", u.Scheme)
	}
}

func openS3(ctx context.Context, cfg *Config, u *url.URL) (blobstore.Store, error) {
	if u.Host == "" {
		return nil, fmt.Errorf("s3 store URL %q has no bucket", cfg.Store)
	}

	opts := []s3.Option{s3.WithPrefix(strings.Trim(u.Path, "/"))}
	if cfg.Region != "" {
		opts = append(opts, s3.WithRegion(cfg.Region))
	}
	if cfg.Endpoint != "" {
		opts = append(opts, s3.WithEndpoint(cfg.Endpoint))
	}
	limit, err := parseSize(cfg.RateLimit)
	if err != nil {
		return nil, err
	}
	if limit > 0 {
		opts = append(opts, s3.WithRateLimit(limit))
	}

	store, err := s3.New(ctx, u.Host, opts...)
	if err != nil {
		return nil, err
	}
	if cfg.DynamoTable == "" {
		return store, nil
	}

	var cfgOpts []func(*config.LoadOptions) error
	if cfg.Region != "" {
		cfgOpts = append(cfgOpts, config.WithRegion(cfg.Region))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, cfgOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return s3.NewCommitStoreFromConfig(store, awsCfg, cfg.DynamoTable, "s3://"+u.Host+u.Path), nil
}

func openMinio(u *url.URL) (blobstore.Store, error) {
	bucket, prefix, _ := strings.Cut(strings.Trim(u.Path, "/"), "/")
	if u.Host == "" || bucket == "" {
		return nil, fmt.Errorf("minio store URL must look like minio://endpoint/bucket/prefix")
	}
	secure := u.Query().Get("secure") != "false"
	return minio.Connect(u.Host, os.Getenv("MINIO_ACCESS_KEY"), os.Getenv("MINIO_SECRET_KEY"), secure, bucket, prefix)
}
