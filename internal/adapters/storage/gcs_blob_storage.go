package storage_adapter

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/marvelcn015/api-utaipei-book-xchange/internal/contextkeys"
	"github.com/marvelcn015/api-utaipei-book-xchange/internal/core/port"
)

const publicURLPrefix = "https://storage.googleapis.com/"

// GCSBlobStorage - реализация порта бинарного хранилища поверх
// бакета Cloud Storage (того же, что выдаёт Firebase проекту).
type GCSBlobStorage struct {
	client *storage.Client
	bucket string
}

// NewGCSBlobStorage - конструктор. Пустой credentialsFile означает
// Application Default Credentials.
func NewGCSBlobStorage(ctx context.Context, bucket, credentialsFile string) (*GCSBlobStorage, error) {
	if bucket == "" {
		return nil, fmt.Errorf("storage bucket name cannot be empty")
	}

	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	return &GCSBlobStorage{client: client, bucket: bucket}, nil
}

// Upload записывает объект и возвращает его публичный URL.
// Бакет должен быть настроен на публичное чтение (uniform bucket-level
// access + allUsers:objectViewer) — ACL на уровне объекта не трогаем.
func (s *GCSBlobStorage) Upload(ctx context.Context, objectPath string, data []byte, contentType string) (string, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	adapterLogger := logger.WithFields(port.Fields{
		"component":   "GCSBlobStorage",
		"method":      "Upload",
		"object_path": objectPath,
		"size_bytes":  len(data),
	})
	adapterLogger.Debug("Uploading object.", nil)

	w := s.client.Bucket(s.bucket).Object(objectPath).NewWriter(ctx)
	w.ContentType = contentType

	if _, err := w.Write(data); err != nil {
		w.Close()
		adapterLogger.Error("Failed to write object", err, nil)
		return "", fmt.Errorf("failed to write object %s: %w", objectPath, err)
	}
	// Реальная фиксация загрузки происходит в Close.
	if err := w.Close(); err != nil {
		adapterLogger.Error("Failed to finalize object upload", err, nil)
		return "", fmt.Errorf("failed to finalize upload of %s: %w", objectPath, err)
	}

	adapterLogger.Debug("Object uploaded successfully.", nil)
	return publicURLPrefix + s.bucket + "/" + objectPath, nil
}

// Delete удаляет объект по его публичному URL. Отсутствие объекта
// не считается ошибкой: повторное удаление должно быть идемпотентным.
func (s *GCSBlobStorage) Delete(ctx context.Context, publicURL string) error {
	logger := contextkeys.LoggerFromContext(ctx)
	adapterLogger := logger.WithFields(port.Fields{
		"component": "GCSBlobStorage",
		"method":    "Delete",
		"url":       publicURL,
	})

	objectPath, err := s.objectPathFromURL(publicURL)
	if err != nil {
		adapterLogger.Warn("URL does not belong to this bucket, skipping delete.", nil)
		return err
	}

	if err := s.client.Bucket(s.bucket).Object(objectPath).Delete(ctx); err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			adapterLogger.Warn("Object already gone.", nil)
			return nil
		}
		adapterLogger.Error("Failed to delete object", err, nil)
		return fmt.Errorf("failed to delete object %s: %w", objectPath, err)
	}

	adapterLogger.Debug("Object deleted successfully.", nil)
	return nil
}

func (s *GCSBlobStorage) objectPathFromURL(publicURL string) (string, error) {
	prefix := publicURLPrefix + s.bucket + "/"
	if !strings.HasPrefix(publicURL, prefix) {
		return "", fmt.Errorf("url %q is not an object of bucket %q", publicURL, s.bucket)
	}
	return strings.TrimPrefix(publicURL, prefix), nil
}

// Close освобождает ресурсы клиента при остановке приложения.
func (s *GCSBlobStorage) Close() error {
	return s.client.Close()
}
