package storage

import (
	"context"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestMongoStore(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("insert batch ok", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		store := NewMongoStore(mt.DB)

		n, err := store.InsertBatch(ctx, "data_bulanan", sampleDocs())
		if err != nil {
			mt.Fatalf("InsertBatch: %v", err)
		}
		if n != 2 {
			mt.Fatalf("inserted = %d, want 2", n)
		}
	})

	mt.Run("insert batch partial failure counts survivors", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   1,
			Code:    11000,
			Message: "duplicate key error",
		}))
		store := NewMongoStore(mt.DB)

		n, err := store.InsertBatch(ctx, "data_bulanan", sampleDocs())
		if err == nil {
			mt.Fatalf("expected bulk write error")
		}
		if n != 1 {
			mt.Fatalf("inserted = %d, want 1", n)
		}
	})

	mt.Run("insert batch command failure", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    2,
			Message: "bad value",
			Name:    "BadValue",
		}))
		store := NewMongoStore(mt.DB)

		n, err := store.InsertBatch(ctx, "data_bulanan", sampleDocs())
		if err == nil || n != 0 {
			mt.Fatalf("want 0 and error, got n=%d err=%v", n, err)
		}
	})

	mt.Run("insert empty batch is a no-op", func(mt *mtest.T) {
		store := NewMongoStore(mt.DB)
		n, err := store.InsertBatch(ctx, "data_bulanan", nil)
		if err != nil || n != 0 {
			mt.Fatalf("want 0,nil got %d,%v", n, err)
		}
	})

	mt.Run("find by ticker", func(mt *mtest.T) {
		ns := mt.DB.Name() + ".data_bulanan"
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			bson.D{
				{Key: "Bulan", Value: "2024-01"},
				{Key: "StartDate", Value: "2024-01-02T00:00:00.000+00:00"},
				{Key: "EndDate", Value: "2024-01-31T00:00:00.000+00:00"},
				{Key: "Open", Value: 10.0},
				{Key: "Close", Value: 12.0},
				{Key: "Low", Value: 9.0},
				{Key: "High", Value: 13.0},
				{Key: "AvgVolume", Value: int64(150)},
				{Key: "MaxVolume", Value: int64(300)},
				{Key: "ticker", Value: "BBCA.JK"},
			},
		))
		store := NewMongoStore(mt.DB)

		got, err := store.FindByTicker(ctx, "data_bulanan", "BBCA.JK")
		if err != nil {
			mt.Fatalf("FindByTicker: %v", err)
		}
		if len(got) != 1 || got[0] != sampleDocs()[0] {
			mt.Fatalf("unexpected summaries: %+v", got)
		}
	})

	mt.Run("distinct tickers sorted", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "values", Value: bson.A{"BBCA.JK", "AALI.JK"}},
		))
		store := NewMongoStore(mt.DB)

		got, err := store.DistinctTickers(ctx, "data_harian")
		if err != nil {
			mt.Fatalf("DistinctTickers: %v", err)
		}
		if len(got) != 2 || got[0] != "AALI.JK" || got[1] != "BBCA.JK" {
			mt.Fatalf("unexpected tickers: %v", got)
		}
	})

	mt.Run("ping", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		if err := NewMongoStore(mt.DB).Ping(ctx); err != nil {
			mt.Fatalf("ping: %v", err)
		}
	})
}
