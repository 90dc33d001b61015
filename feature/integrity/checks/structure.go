package checks

import (
	"bytes"
	"context"
	"fmt"

	"merch-manager/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// CheckStructure reports whether the bucket exists and returns the required
// folders that are missing. Only the product image folder is required.
func CheckStructure(ctx context.Context, client storage.Client, cfg storage.Config) ([]string, error) {
	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("bucket %s does not exist", cfg.Bucket)
	}

	folder := cfg.ProductFolder("")
	opts := minio.ListObjectsOptions{
		Prefix:    folder,
		Recursive: false,
		MaxKeys:   1,
	}

	found := false
	for obj := range client.ListObjects(ctx, cfg.Bucket, opts) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", folder, obj.Err)
		}
		found = true
		break
	}

	if found {
		return []string{}, nil
	}
	return []string{folder}, nil
}

// FixStructure materialises the image folder with an empty marker object.
func FixStructure(ctx context.Context, client storage.Client, cfg storage.Config, logger *zap.Logger, missing []string) error {
	if len(missing) == 0 {
		return nil
	}

	key := cfg.PlaceholderKey()
	_, err := client.PutObject(ctx, cfg.Bucket, key, bytes.NewReader([]byte{}), 0, minio.PutObjectOptions{})
	if err != nil {
		logger.Error("Failed to create folder", zap.String("key", key), zap.Error(err))
		return err
	}
	logger.Info("Created missing folder", zap.Strings("folders", missing))
	return nil
}
