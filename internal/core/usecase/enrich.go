package usecase

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/marvelcn015/api-utaipei-book-xchange/internal/contextkeys"
	"github.com/marvelcn015/api-utaipei-book-xchange/internal/core/domain"
	"github.com/marvelcn015/api-utaipei-book-xchange/internal/core/port"
)

// Ограничение на параллельные обращения к хранилищу при обогащении списков.
const enrichConcurrency = 8

// transactionEnricher достраивает к транзакции карточку книги и публичные
// профили сторон. Общий для всех транзакционных use case'ов.
type transactionEnricher struct {
	books port.BookRepositoryPort
	users port.UserRepositoryPort
}

// enrichOne собирает TransactionView тремя параллельными запросами.
//
// Если книга уже удалена, транзакция всё равно отдаётся — с деградированной
// карточкой, где заполнен только ID. Отсутствующий профиль участника,
// напротив, считается нарушением целостности и пробрасывается как ошибка.
func (e *transactionEnricher) enrichOne(ctx context.Context, t domain.Transaction) (domain.TransactionView, error) {
	view := domain.TransactionView{Transaction: t}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		book, err := e.books.GetByID(gCtx, t.BookID)
		if errors.Is(err, domain.ErrBookNotFound) {
			logger := contextkeys.LoggerFromContext(ctx)
			logger.Warn("Book referenced by transaction no longer exists", port.Fields{
				"transaction_id": t.ID,
				"book_id":        t.BookID,
			})
			view.Book = domain.BookCard{ID: t.BookID}
			return nil
		}
		if err != nil {
			return err
		}
		view.Book = book.Card()
		return nil
	})
	g.Go(func() error {
		seller, err := e.users.GetByID(gCtx, t.SellerID)
		if err != nil {
			return err
		}
		view.Seller = seller.Public()
		return nil
	})
	g.Go(func() error {
		buyer, err := e.users.GetByID(gCtx, t.BuyerID)
		if err != nil {
			return err
		}
		view.Buyer = buyer.Public()
		return nil
	})

	if err := g.Wait(); err != nil {
		return domain.TransactionView{}, err
	}
	return view, nil
}

// enrichMany обогащает список с ограниченным параллелизмом, сохраняя порядок.
func (e *transactionEnricher) enrichMany(ctx context.Context, ts []domain.Transaction) ([]domain.TransactionView, error) {
	views := make([]domain.TransactionView, len(ts))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(enrichConcurrency)
	for i, t := range ts {
		g.Go(func() error {
			view, err := e.enrichOne(gCtx, t)
			if err != nil {
				return err
			}
			views[i] = view
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return views, nil
}

// profileLoader кэширует публичные профили в рамках одного запроса,
// чтобы не ходить в хранилище за одним и тем же автором по многу раз.
type profileLoader struct {
	users port.UserRepositoryPort
	cache map[string]domain.PublicProfile
}

func newProfileLoader(users port.UserRepositoryPort) *profileLoader {
	return &profileLoader{users: users, cache: make(map[string]domain.PublicProfile)}
}

func (l *profileLoader) load(ctx context.Context, userID string) (domain.PublicProfile, error) {
	if p, ok := l.cache[userID]; ok {
		return p, nil
	}
	user, err := l.users.GetByID(ctx, userID)
	if err != nil {
		return domain.PublicProfile{}, err
	}
	p := user.Public()
	l.cache[userID] = p
	return p, nil
}
