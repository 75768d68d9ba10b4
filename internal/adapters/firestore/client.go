package firestore_adapter

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/firestore/apiv1/firestorepb"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"
)

// Имена коллекций. Плоская схема: все четыре коллекции на верхнем уровне,
// связи — по строковым ID документов.
const (
	usersCollection        = "users"
	booksCollection        = "books"
	commentsCollection     = "comments"
	transactionsCollection = "transactions"
)

// NewClient инициализирует Firebase App и возвращает Firestore-клиент.
// Пустой credentialsFile означает Application Default Credentials
// (так работает деплой в GCP; файл нужен только для локального запуска).
func NewClient(ctx context.Context, projectID, credentialsFile string) (*firestore.Client, error) {
	conf := &firebase.Config{ProjectID: projectID}

	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	app, err := firebase.NewApp(ctx, conf, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}

	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create firestore client: %w", err)
	}
	return client, nil
}

// runCount выполняет server-side агрегацию COUNT(*) по запросу.
// Дешевле выгрузки документов: тарифицируется по числу просмотренных
// индексных записей, а не по числу документов.
func runCount(ctx context.Context, q firestore.Query) (int, error) {
	results, err := q.NewAggregationQuery().WithCount("total").Get(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to run count aggregation: %w", err)
	}
	raw, ok := results["total"]
	if !ok {
		return 0, fmt.Errorf("count aggregation returned no result")
	}
	value, ok := raw.(*firestorepb.Value)
	if !ok {
		return 0, fmt.Errorf("count aggregation returned unexpected type %T", raw)
	}
	return int(value.GetIntegerValue()), nil
}
