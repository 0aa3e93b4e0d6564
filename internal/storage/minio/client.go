package minio

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path"

	"github.com/minio/minio-go/v7"

	"github.com/dtroode/storefront-server/internal/model"
)

const receiptContentType = "application/json"

// Internal adapter interface to enable mocking without a real MinIO server.
type minioAPI interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	GetObject(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (io.ReadCloser, error)
	StatObject(ctx context.Context, bucketName, objectName string, opts minio.StatObjectOptions) (minio.ObjectInfo, error)
}

// Wrapper to adapt *minio.Client to minioAPI.
type minioClientWrapper struct{ c *minio.Client }

func (w minioClientWrapper) BucketExists(ctx context.Context, bucketName string) (bool, error) {
	return w.c.BucketExists(ctx, bucketName)
}
func (w minioClientWrapper) MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error {
	return w.c.MakeBucket(ctx, bucketName, opts)
}
func (w minioClientWrapper) PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	return w.c.PutObject(ctx, bucketName, objectName, reader, objectSize, opts)
}
func (w minioClientWrapper) GetObject(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (io.ReadCloser, error) {
	obj, err := w.c.GetObject(ctx, bucketName, objectName, opts)
	if err != nil {
		return nil, err
	}
	return obj, nil
}
func (w minioClientWrapper) StatObject(ctx context.Context, bucketName, objectName string, opts minio.StatObjectOptions) (minio.ObjectInfo, error) {
	return w.c.StatObject(ctx, bucketName, objectName, opts)
}

var _ model.ReceiptArchive = (*ReceiptArchive)(nil)

// ReceiptArchive stores one JSON object per completed order under
// receipts/{userID}/{orderID}.json.
type ReceiptArchive struct {
	api    minioAPI
	bucket string
}

// NewReceiptArchive creates an archive backed by a real *minio.Client instance.
func NewReceiptArchive(ctx context.Context, client *minio.Client, bucket string) (*ReceiptArchive, error) {
	return newReceiptArchive(ctx, minioClientWrapper{c: client}, bucket)
}

func newReceiptArchive(ctx context.Context, api minioAPI, bucket string) (*ReceiptArchive, error) {
	a := &ReceiptArchive{
		api:    api,
		bucket: bucket,
	}

	err := a.ensureBucketExists(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to ensure bucket exists: %w", err)
	}

	return a, nil
}

// ensureBucketExists creates the bucket if it doesn't exist
func (a *ReceiptArchive) ensureBucketExists(ctx context.Context) error {
	exists, err := a.api.BucketExists(ctx, a.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	if !exists {
		err = a.api.MakeBucket(ctx, a.bucket, minio.MakeBucketOptions{})
		if err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return nil
}

// ReceiptKey is the object name of an order receipt.
func ReceiptKey(userID, orderID string) string {
	return path.Join("receipts", userID, orderID+".json")
}

// SaveReceipt uploads the order as JSON.
func (a *ReceiptArchive) SaveReceipt(ctx context.Context, userID string, order model.Order) error {
	body, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("failed to encode receipt: %w", err)
	}

	_, err = a.api.PutObject(ctx, a.bucket, ReceiptKey(userID, order.ID), bytes.NewReader(body), int64(len(body)),
		minio.PutObjectOptions{ContentType: receiptContentType})
	if err != nil {
		return fmt.Errorf("failed to upload receipt: %w", err)
	}
	return nil
}

// GetReceipt downloads and decodes a receipt. Missing receipts yield model.ErrNotFound.
func (a *ReceiptArchive) GetReceipt(ctx context.Context, userID, orderID string) (model.Order, error) {
	obj, err := a.api.GetObject(ctx, a.bucket, ReceiptKey(userID, orderID), minio.GetObjectOptions{})
	if err != nil {
		return model.Order{}, fmt.Errorf("failed to get receipt: %w", err)
	}
	defer obj.Close()

	var order model.Order
	if err := json.NewDecoder(obj).Decode(&order); err != nil {
		if isNoSuchKey(err) {
			return model.Order{}, model.ErrNotFound
		}
		return model.Order{}, fmt.Errorf("failed to decode receipt: %w", err)
	}
	return order, nil
}

// HasReceipt checks whether the receipt object exists.
func (a *ReceiptArchive) HasReceipt(ctx context.Context, userID, orderID string) (bool, error) {
	_, err := a.api.StatObject(ctx, a.bucket, ReceiptKey(userID, orderID), minio.StatObjectOptions{})
	if err != nil {
		if isNoSuchKey(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat receipt: %w", err)
	}
	return true, nil
}

func isNoSuchKey(err error) bool {
	return minio.ToErrorResponse(err).Code == "NoSuchKey"
}
