package port

import "context"

// ImageUpload — содержимое одного загружаемого изображения,
// уже прочитанное из транспорта.
type ImageUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// BlobStoragePort — контракт бинарного хранилища изображений.
type BlobStoragePort interface {
	// Upload сохраняет объект по заданному пути и возвращает публичный URL.
	Upload(ctx context.Context, objectPath string, data []byte, contentType string) (string, error)

	// Delete удаляет объект по его публичному URL.
	// Ошибка удаления никогда не прерывает родительскую операцию —
	// вызывающий код логирует её и продолжает (best-effort политика).
	Delete(ctx context.Context, publicURL string) error
}
