package logger_adapter

import (
	"fmt"

	"github.com/fluent/fluent-logger-golang/fluent"
)

// FluentConfig хранит параметры подключения к Fluent Bit.
type FluentConfig struct {
	Host      string // "127.0.0.1" или "fluent-bit" в Docker
	Port      int    // обычно 24224
	TagPrefix string // общий префикс тегов логов этого сервиса
}

// NewFluentClient создает клиент для Fluent Bit.
// Успешное создание клиента не гарантирует соединения: ошибки проявятся
// при первой попытке отправить лог.
func NewFluentClient(cfg FluentConfig) (*fluent.Fluent, error) {
	if cfg.TagPrefix == "" {
		return nil, fmt.Errorf("fluentd tag prefix is required")
	}

	client, err := fluent.New(fluent.Config{
		FluentHost: cfg.Host,
		FluentPort: cfg.Port,
		TagPrefix:  cfg.TagPrefix,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create fluentd logger: %w", err)
	}
	return client, nil
}
