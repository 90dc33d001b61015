package storage_test

import (
	"context"
	"errors"
	"testing"

	"merch-manager/core/storage"
	"merch-manager/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	t.Run("ValidConfig", func(t *testing.T) {
		cfg := storage.Config{
			Endpoint:  "localhost:9000",
			AccessKey: "testkey",
			SecretKey: "testsecret",
			Bucket:    "test-bucket",
			Region:    "us-east-1",
		}

		client, err := storage.NewClient(cfg)
		assert.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("EndpointWithHTTPS", func(t *testing.T) {
		cfg := storage.Config{
			Endpoint:  "https://s3.amazonaws.com",
			AccessKey: "testkey",
			SecretKey: "testsecret",
			UseSSL:    true,
			Region:    "us-east-1",
		}

		client, err := storage.NewClient(cfg)
		assert.NoError(t, err)
		assert.NotNil(t, client)
	})
}

func TestConfig_Keys(t *testing.T) {
	cfg := storage.Config{ImagePrefix: "products"}

	assert.Equal(t, "products/p-1/", cfg.ProductFolder("p-1"))
	assert.Equal(t, "products/p-1/image.jpg", cfg.ImageKey("p-1"))
	assert.Equal(t, "products/p-1/thumb.jpg", cfg.ThumbnailKey("p-1"))
	assert.Equal(t, "products/.keep", cfg.PlaceholderKey())

	assert.Equal(t, "products/p-1/image.jpg", storage.Config{}.ImageKey("p-1"))
}

func TestRemoveFolder(t *testing.T) {
	ctx := context.Background()

	t.Run("RemovesListedObjects", func(t *testing.T) {
		m := new(mocks.Client)
		m.On("ListObjects", ctx, "merch", minio.ListObjectsOptions{Prefix: "products/p-1/", Recursive: true}).
			Return(mocks.ObjectsChan("products/p-1/image.jpg", "products/p-1/thumb.jpg"))
		m.On("RemoveObjects", ctx, "merch", mock.Anything, minio.RemoveObjectsOptions{}).Return(nil)

		n, err := storage.RemoveFolder(ctx, m, "merch", "products/p-1/")
		require.NoError(t, err)
		assert.Equal(t, 2, n)
		m.AssertExpectations(t)
	})

	t.Run("EmptyFolder", func(t *testing.T) {
		m := new(mocks.Client)
		m.On("ListObjects", ctx, "merch", mock.Anything).Return(nil)

		n, err := storage.RemoveFolder(ctx, m, "merch", "products/p-2/")
		require.NoError(t, err)
		assert.Zero(t, n)
		m.AssertNotCalled(t, "RemoveObjects", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("PartialFailure", func(t *testing.T) {
		errs := make(chan minio.RemoveObjectError, 1)
		errs <- minio.RemoveObjectError{ObjectName: "products/p-1/thumb.jpg", Err: errors.New("denied")}
		close(errs)

		m := new(mocks.Client)
		m.On("ListObjects", ctx, "merch", mock.Anything).
			Return(mocks.ObjectsChan("products/p-1/image.jpg", "products/p-1/thumb.jpg"))
		m.On("RemoveObjects", ctx, "merch", mock.Anything, mock.Anything).
			Return((<-chan minio.RemoveObjectError)(errs))

		n, err := storage.RemoveFolder(ctx, m, "merch", "products/p-1/")
		assert.EqualError(t, err, "failed to remove products/p-1/thumb.jpg: denied")
		assert.Equal(t, 1, n)
	})
}

func TestIsNotFound(t *testing.T) {
	assert.False(t, storage.IsNotFound(nil))
	assert.True(t, storage.IsNotFound(minio.ErrorResponse{Code: "NoSuchKey"}))
	assert.False(t, storage.IsNotFound(errors.New("boom")))
}
