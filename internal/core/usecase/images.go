package usecase

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/marvelcn015/api-utaipei-book-xchange/internal/core/domain"
	"github.com/marvelcn015/api-utaipei-book-xchange/internal/core/port"
)

// validateImages проверяет количество и размер файлов до единой загрузки.
func validateImages(images []port.ImageUpload) error {
	if err := domain.ValidateImageCount(len(images)); err != nil {
		return err
	}
	for _, img := range images {
		if len(img.Data) > domain.MaxImageSizeBytes {
			return fmt.Errorf("%w: %q", domain.ErrImageTooLarge, img.Filename)
		}
	}
	return nil
}

// objectPathFor строит путь объекта в бинарном хранилище:
// books/{ownerID}/{bookID}/{unix_ms}_{uuid}_{имя файла}.
// UUID в имени исключает коллизии при одинаковых именах файлов в одном запросе.
func objectPathFor(ownerID, bookID, filename string) string {
	// Берём только базовое имя и выбрасываем из него разделители путей.
	base := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	base = strings.ReplaceAll(base, " ", "_")
	return fmt.Sprintf("books/%s/%s/%d_%s_%s", ownerID, bookID, time.Now().UnixMilli(), uuid.NewString(), base)
}

// uploadImages загружает все изображения параллельно, сохраняя порядок.
// При ошибке хотя бы одной загрузки возвращается первая ошибка; уже
// загруженные объекты не откатываются (мусор подчистит lifecycle-политика бакета).
func uploadImages(ctx context.Context, blobs port.BlobStoragePort, ownerID, bookID string, images []port.ImageUpload) ([]string, error) {
	urls := make([]string, len(images))

	g, gCtx := errgroup.WithContext(ctx)
	for i, img := range images {
		g.Go(func() error {
			url, err := blobs.Upload(gCtx, objectPathFor(ownerID, bookID, img.Filename), img.Data, img.ContentType)
			if err != nil {
				return fmt.Errorf("upload %q: %w", img.Filename, err)
			}
			urls[i] = url
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return urls, nil
}

// deleteImagesBestEffort удаляет объекты по их публичным URL.
// Ошибки удаления только логируются: основная операция уже выполнена,
// и осиротевший файл в хранилище дешевле отказа пользователю.
func deleteImagesBestEffort(ctx context.Context, blobs port.BlobStoragePort, logger port.LoggerPort, urls []string) {
	for _, url := range urls {
		if err := blobs.Delete(ctx, url); err != nil {
			logger.Warn("Failed to delete image from blob storage, skipping", port.Fields{
				"image_url": url,
				"error":     err.Error(),
			})
		}
	}
}
