package internal

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	cloud_firestore "cloud.google.com/go/firestore"
	"github.com/fluent/fluent-logger-golang/fluent"

	firestore_adapter "github.com/marvelcn015/api-utaipei-book-xchange/internal/adapters/firestore"
	token_adapter "github.com/marvelcn015/api-utaipei-book-xchange/internal/adapters/jwt"
	logger_adapter "github.com/marvelcn015/api-utaipei-book-xchange/internal/adapters/logger"
	"github.com/marvelcn015/api-utaipei-book-xchange/internal/adapters/rest"
	storage_adapter "github.com/marvelcn015/api-utaipei-book-xchange/internal/adapters/storage"
	"github.com/marvelcn015/api-utaipei-book-xchange/internal/configs"
	"github.com/marvelcn015/api-utaipei-book-xchange/internal/core/port"
	"github.com/marvelcn015/api-utaipei-book-xchange/internal/core/usecase"
)

type App struct {
	config          *configs.AppConfig
	firestoreClient *cloud_firestore.Client
	blobStorage     *storage_adapter.GCSBlobStorage
	apiServer       *rest.Server

	fluentClient *fluent.Fluent
	logger       port.LoggerPort
}

func NewApp() (*App, error) {
	appConfig, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}

	// --- 1. ИНИЦИАЛИЗАЦИЯ ЛОГГЕРОВ ---
	var activeLoggers []port.LoggerPort

	slogCfg := logger_adapter.SlogConfig{
		Level:    parseLogLevel(appConfig.StdoutLogger.Level),
		IsJSON:   false, // текстовый формат
		UseColor: true,
	}
	stdoutLogger := logger_adapter.NewSlogAdapter(slogCfg)
	activeLoggers = append(activeLoggers, stdoutLogger)

	// Добавляем Fluent Bit логгер, если он включен в конфигурации
	var fluentClient *fluent.Fluent
	if appConfig.FluentBit.Enabled {
		fluentClient, err = logger_adapter.NewFluentClient(logger_adapter.FluentConfig{
			Host:      appConfig.FluentBit.Host,
			Port:      appConfig.FluentBit.Port,
			TagPrefix: appConfig.AppName, // Используем имя приложения как префикс
		})
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit client", err, nil)
			return nil, fmt.Errorf("failed to create fluentbit client: %w", err)
		}

		fluentAdapter, err := logger_adapter.NewFluentLoggerAdapter(fluentClient, parseLogLevel(appConfig.FluentBit.Level))
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit adapter", err, nil)
			fluentClient.Close()
			return nil, err
		}
		activeLoggers = append(activeLoggers, fluentAdapter)
	}

	// Создаем наш композитный логгер
	multiLogger, err := logger_adapter.NewMultiloggerAdapter(activeLoggers...)
	if err != nil {
		return nil, fmt.Errorf("failed to create multi-logger: %w", err)
	}

	// --- 2. СОЗДАЕМ БАЗОВЫЙ ЛОГГЕР ПРИЛОЖЕНИЯ С КОНТЕКСТОМ ---
	baseLogger := multiLogger.WithFields(port.Fields{
		"service_name": appConfig.AppName,
	})

	appLogger := baseLogger.WithFields(port.Fields{"component": "app"})
	appLogger.Info("Logger system initialized", port.Fields{
		"active_loggers": len(activeLoggers), "fluent_enabled": appConfig.FluentBit.Enabled,
	})

	// --- 3. НИЗКОУРОВНЕВЫЕ ЗАВИСИМОСТИ ---
	firestoreClient, err := firestore_adapter.NewClient(context.Background(), appConfig.Firebase.ProjectID, appConfig.Firebase.CredentialsFile)
	if err != nil {
		appLogger.Error("Failed to connect to Firestore", err, nil)
		return nil, fmt.Errorf("failed to connect to Firestore: %w", err)
	}
	appLogger.Info("Successfully connected to Firestore!", nil)

	bookRepo, err := firestore_adapter.NewFirestoreBookRepository(firestoreClient)
	if err != nil {
		firestoreClient.Close()
		return nil, fmt.Errorf("failed to create book repository: %w", err)
	}
	transactionRepo, err := firestore_adapter.NewFirestoreTransactionRepository(firestoreClient)
	if err != nil {
		firestoreClient.Close()
		return nil, fmt.Errorf("failed to create transaction repository: %w", err)
	}
	commentRepo, err := firestore_adapter.NewFirestoreCommentRepository(firestoreClient)
	if err != nil {
		firestoreClient.Close()
		return nil, fmt.Errorf("failed to create comment repository: %w", err)
	}
	userRepo, err := firestore_adapter.NewFirestoreUserRepository(firestoreClient)
	if err != nil {
		firestoreClient.Close()
		return nil, fmt.Errorf("failed to create user repository: %w", err)
	}

	blobStorage, err := storage_adapter.NewGCSBlobStorage(context.Background(), appConfig.Firebase.StorageBucket, appConfig.Firebase.CredentialsFile)
	if err != nil {
		appLogger.Error("Failed to create GCS blob storage", err, nil)
		firestoreClient.Close()
		return nil, fmt.Errorf("failed to create blob storage: %w", err)
	}

	tokenService, err := token_adapter.NewTokenService(appConfig.JWT.SigningKey)
	if err != nil {
		firestoreClient.Close()
		blobStorage.Close()
		return nil, fmt.Errorf("failed to create token service: %w", err)
	}
	appLogger.Info("All persistence and service adapters initialized.", nil)

	// --- 4. ИНИЦИАЛИЗАЦИЯ USE CASES (ядра бизнес-логики) ---
	registerUserUseCase := usecase.NewRegisterUserUseCase(userRepo)
	loginUserUseCase := usecase.NewLoginUserUseCase(userRepo, tokenService, appConfig.JWT.AccessTokenTTL)
	getUserProfileUseCase := usecase.NewGetUserProfileUseCase(userRepo)
	updateUserProfileUseCase := usecase.NewUpdateUserProfileUseCase(userRepo)
	getPublicProfileUseCase := usecase.NewGetPublicProfileUseCase(userRepo)

	createBookUseCase := usecase.NewCreateBookUseCase(bookRepo, blobStorage)
	findBooksUseCase := usecase.NewFindBooksUseCase(bookRepo, userRepo)
	findMyBooksUseCase := usecase.NewFindMyBooksUseCase(bookRepo)
	getBookUseCase := usecase.NewGetBookUseCase(bookRepo, userRepo)
	updateBookUseCase := usecase.NewUpdateBookUseCase(bookRepo, blobStorage)
	deleteBookUseCase := usecase.NewDeleteBookUseCase(bookRepo, blobStorage)

	createTransactionUseCase := usecase.NewCreateTransactionUseCase(transactionRepo, bookRepo, userRepo)
	getTransactionUseCase := usecase.NewGetTransactionUseCase(transactionRepo, bookRepo, userRepo)
	updateTransactionUseCase := usecase.NewUpdateTransactionUseCase(transactionRepo, bookRepo, userRepo)
	findUserTransactionsUseCase := usecase.NewFindUserTransactionsUseCase(transactionRepo, bookRepo, userRepo)
	findBookTransactionsUseCase := usecase.NewFindBookTransactionsUseCase(transactionRepo, bookRepo, userRepo)

	createCommentUseCase := usecase.NewCreateCommentUseCase(commentRepo, bookRepo, userRepo)
	findBookCommentsUseCase := usecase.NewFindBookCommentsUseCase(commentRepo, bookRepo, userRepo)
	updateCommentUseCase := usecase.NewUpdateCommentUseCase(commentRepo, userRepo)
	deleteCommentUseCase := usecase.NewDeleteCommentUseCase(commentRepo)

	// --- 5. REST API Server ---
	apiHandlers := rest.Handlers{
		Auth:  rest.NewAuthHandler(registerUserUseCase, loginUserUseCase),
		Users: rest.NewUserHandler(getUserProfileUseCase, updateUserProfileUseCase, getPublicProfileUseCase),
		Books: rest.NewBookHandler(
			createBookUseCase,
			findBooksUseCase,
			findMyBooksUseCase,
			getBookUseCase,
			updateBookUseCase,
			deleteBookUseCase,
		),
		Comments: rest.NewCommentHandler(
			createCommentUseCase,
			findBookCommentsUseCase,
			updateCommentUseCase,
			deleteCommentUseCase,
		),
		Transactions: rest.NewTransactionHandler(
			createTransactionUseCase,
			getTransactionUseCase,
			updateTransactionUseCase,
			findUserTransactionsUseCase,
			findBookTransactionsUseCase,
		),
	}
	apiServer := rest.NewServer(appConfig.Rest.PORT, apiHandlers, tokenService, appConfig.Rest.AllowedOrigins, baseLogger)
	appLogger.Info("REST API server configured.", nil)

	application := &App{
		config:          appConfig,
		firestoreClient: firestoreClient,
		blobStorage:     blobStorage,
		apiServer:       apiServer,

		fluentClient: fluentClient,
		logger:       appLogger,
	}

	return application, nil
}

// Run запускает все компоненты приложения и управляет их жизненным циклом.
func (a *App) Run() error {
	// Единый контекст приложения для управления graceful shutdown
	appCtx, cancelApp := context.WithCancel(context.Background())

	defer func() {
		a.logger.Info("Shutdown sequence initiated...", nil)

		if a.apiServer != nil {
			if err := a.apiServer.Stop(context.Background()); err != nil {
				a.logger.Error("Error during API server shutdown", err, nil)
			}
		}

		if a.firestoreClient != nil {
			if err := a.firestoreClient.Close(); err != nil {
				a.logger.Error("Error closing Firestore client", err, nil)
			} else {
				a.logger.Info("Firestore client closed.", nil)
			}
		}

		if a.blobStorage != nil {
			if err := a.blobStorage.Close(); err != nil {
				a.logger.Error("Error closing blob storage client", err, nil)
			}
		}

		a.logger.Info("Application shut down gracefully.", nil)

		if a.fluentClient != nil {
			if err := a.fluentClient.Close(); err != nil {
				// Логируем в stdout, так как fluent может быть уже недоступен
				fmt.Printf("ERROR: Error closing fluent client: %v\n", err)
			}
		}
	}()

	a.logger.Info("Application is starting...", nil)

	serverErrors := make(chan error, 1)
	go func() {
		a.logger.Info("Starting HTTP server...", port.Fields{"port": a.config.Rest.PORT})
		if err := a.apiServer.Start(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	// Ожидание сигнала на завершение или ошибки от одного из компонентов
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	a.logger.Info("Application running. Waiting for signals or server error...", nil)
	select {
	case receivedSignal := <-quit:
		a.logger.Warn("Received OS signal, shutting down...", port.Fields{"signal": receivedSignal.String()})
	case <-appCtx.Done():
		a.logger.Warn("Context was cancelled unexpectedly, shutting down...", nil)
	case err := <-serverErrors:
		a.logger.Error("Server failed to start, shutting down", err, nil)
	}

	cancelApp()

	return nil
}

func parseLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		// Возвращаем безопасное значение по умолчанию и логируем предупреждение
		log.Printf("Warning: Unknown log level '%s'. Defaulting to 'info'.", levelStr)
		return slog.LevelInfo
	}
}
