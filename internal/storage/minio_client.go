package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"voiceunheard/internal/config"
)

var ErrEmptyObject = errors.New("пустой файл")

// Storage is the object half of the remote facade.
type Storage interface {
	UploadEvidence(ctx context.Context, data []byte) (string, string, error)
	PublicURL(objectName string) string
	DeleteObject(ctx context.Context, objectName string) error
}

type MinIOClient struct {
	client  *minio.Client
	bucket  string
	baseURL string
}

func NewMinIOClient(ctx context.Context, cfg config.MinIO) (*MinIOClient, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка создания клиента MinIO: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.BucketName)
	if err != nil {
		return nil, fmt.Errorf("ошибка проверки бакета %s: %w", cfg.BucketName, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.BucketName, minio.MakeBucketOptions{Region: cfg.Region}); err != nil {
			return nil, fmt.Errorf("ошибка создания бакета %s: %w", cfg.BucketName, err)
		}
		slog.Info("[Storage] bucket created", slog.String("bucket", cfg.BucketName))
	}

	return &MinIOClient{
		client:  client,
		bucket:  cfg.BucketName,
		baseURL: cfg.PublicBaseURL,
	}, nil
}

// UploadEvidence stores the image under a fresh unique name and returns
// the object name together with its public URL.
func (m *MinIOClient) UploadEvidence(ctx context.Context, data []byte) (string, string, error) {
	if len(data) == 0 {
		return "", "", ErrEmptyObject
	}

	mtype := mimetype.Detect(data)
	now := time.Now()
	objectName := ObjectName(now, uuid.New().String(), mtype.Extension())

	_, err := m.client.PutObject(ctx, m.bucket, objectName, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{
			ContentType: mtype.String(),
			UserMetadata: map[string]string{
				"uploaded-at": now.Format(time.RFC3339),
			},
		})
	if err != nil {
		return "", "", fmt.Errorf("ошибка загрузки в MinIO: %w", err)
	}

	return objectName, m.PublicURL(objectName), nil
}

func (m *MinIOClient) PublicURL(objectName string) string {
	return PublicURL(m.baseURL, m.bucket, objectName)
}

func (m *MinIOClient) DeleteObject(ctx context.Context, objectName string) error {
	err := m.client.RemoveObject(ctx, m.bucket, objectName, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("ошибка удаления из MinIO: %w", err)
	}
	return nil
}

// ObjectName lays evidence out by upload month; ext comes from mimetype
// and already carries its leading dot.
func ObjectName(now time.Time, id, ext string) string {
	if ext == "" {
		ext = ".bin"
	}
	return fmt.Sprintf("%d/%02d/%d-%s%s", now.Year(), now.Month(), now.UnixMilli(), id, ext)
}

func PublicURL(baseURL, bucket, objectName string) string {
	return fmt.Sprintf("%s/%s/%s", baseURL, bucket, objectName)
}
