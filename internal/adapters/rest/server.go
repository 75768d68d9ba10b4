package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	core_port "github.com/marvelcn015/api-utaipei-book-xchange/internal/core/port"
)

// Server - наш REST API сервер.
type Server struct {
	httpServer *http.Server
	logger     core_port.LoggerPort
}

// Handlers — все обработчики, которые монтирует сервер.
type Handlers struct {
	Auth         *AuthHandler
	Users        *UserHandler
	Books        *BookHandler
	Comments     *CommentHandler
	Transactions *TransactionHandler
}

// NewServer создает новый экземпляр сервера и собирает дерево роутов.
func NewServer(port string, handlers Handlers, tokenSvc core_port.TokenServicePort, allowedOrigins []string, baseLogger core_port.LoggerPort) *Server {
	r := chi.NewRouter()

	// Middleware
	r.Use(LoggerMiddleware(baseLogger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Trace-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	auth := AuthMiddleware(tokenSvc)

	r.Route("/api/v1", func(r chi.Router) {
		// Публичные роуты
		r.Post("/auth/register", handlers.Auth.Register)
		r.Post("/auth/login", handlers.Auth.Login)

		r.Get("/books", handlers.Books.Find)
		r.Get("/books/{bookID}", handlers.Books.Get)
		r.Get("/books/{bookID}/comments", handlers.Comments.Find)
		r.Get("/users/{userID}", handlers.Users.GetPublicProfile)

		// Приватные роуты
		r.Group(func(r chi.Router) {
			r.Use(auth)

			r.Get("/users/me", handlers.Users.GetMe)
			r.Patch("/users/me", handlers.Users.UpdateMe)

			r.Post("/books", handlers.Books.Create)
			r.Get("/books/my-listings", handlers.Books.FindMy)
			r.Patch("/books/{bookID}", handlers.Books.Update)
			r.Delete("/books/{bookID}", handlers.Books.Delete)

			r.Post("/books/{bookID}/comments", handlers.Comments.Create)
			r.Patch("/comments/{commentID}", handlers.Comments.Update)
			r.Delete("/comments/{commentID}", handlers.Comments.Delete)

			r.Post("/transactions", handlers.Transactions.Create)
			r.Get("/transactions", handlers.Transactions.FindMine)
			r.Get("/transactions/book/{bookID}", handlers.Transactions.FindByBook)
			r.Get("/transactions/{transactionID}", handlers.Transactions.Get)
			r.Patch("/transactions/{transactionID}", handlers.Transactions.Update)
		})
	})

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	return &Server{
		httpServer: srv,
		logger:     baseLogger,
	}
}

// Start запускает HTTP-сервер.
func (s *Server) Start() error {
	s.logger.Info("Starting REST API server", core_port.Fields{"address": s.httpServer.Addr})
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		s.logger.Error("Could not start server", err, nil)
		return fmt.Errorf("could not start server: %w", err)
	}
	return nil
}

// Stop корректно останавливает сервер.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping REST API server...", nil)
	return s.httpServer.Shutdown(ctx)
}
