package storage

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/guttosm/rollup/internal/domain/models"
)

type mongoStore struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewMongoStore wraps a database handle. Close disconnects the handle's client.
func NewMongoStore(db *mongo.Database) SummaryStore {
	return &mongoStore{client: db.Client(), db: db}
}

func (s *mongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

// InsertBatch issues one unordered InsertMany. With ordered=false the server
// keeps going after a failed document, so a bulk write exception still means
// every document without a write error was stored.
func (s *mongoStore) InsertBatch(ctx context.Context, collection string, docs []models.PeriodSummary) (int, error) {
	if len(docs) == 0 {
		return 0, nil
	}

	payload := make([]any, len(docs))
	for i := range docs {
		payload[i] = docs[i]
	}

	res, err := s.db.Collection(collection).InsertMany(ctx, payload, options.InsertMany().SetOrdered(false))
	if err == nil {
		return len(res.InsertedIDs), nil
	}

	var bwe mongo.BulkWriteException
	if errors.As(err, &bwe) && bwe.WriteConcernError == nil {
		inserted := len(docs) - len(bwe.WriteErrors)
		return max(inserted, 0), fmt.Errorf("insert %s: %d of %d documents rejected: %w", collection, len(bwe.WriteErrors), len(docs), err)
	}
	return 0, fmt.Errorf("insert %s: %w", collection, err)
}

func (s *mongoStore) FindByTicker(ctx context.Context, collection, ticker string) ([]models.PeriodSummary, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "Bulan", Value: 1}}).
		SetProjection(bson.M{"_id": 0})

	cur, err := s.db.Collection(collection).Find(ctx, bson.M{"ticker": ticker}, opts)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", collection, err)
	}

	var out []models.PeriodSummary
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", collection, err)
	}
	return out, nil
}

func (s *mongoStore) DistinctTickers(ctx context.Context, collection string) ([]string, error) {
	values, err := s.db.Collection(collection).Distinct(ctx, "ticker", bson.M{})
	if err != nil {
		return nil, fmt.Errorf("distinct %s: %w", collection, err)
	}

	out := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (s *mongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
