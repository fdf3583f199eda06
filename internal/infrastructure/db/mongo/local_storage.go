package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const localStorageCollection = "local_storage"

// LocalStorage keeps one document per key: {_id: key, value: "..."}.
type LocalStorage struct {
	coll *mongo.Collection
}

func NewLocalStorage(db *mongo.Database) *LocalStorage {
	return &LocalStorage{coll: db.Collection(localStorageCollection)}
}

type entry struct {
	Key   string `bson:"_id"`
	Value string `bson:"value"`
}

func (s *LocalStorage) Get(ctx context.Context, key string) (string, bool, error) {
	var doc entry
	err := s.coll.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("find %s: %w", key, err)
	}
	return doc.Value, true, nil
}

func (s *LocalStorage) Set(ctx context.Context, key, value string) error {
	_, err := s.coll.ReplaceOne(ctx,
		bson.M{"_id": key},
		entry{Key: key, Value: value},
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("upsert %s: %w", key, err)
	}
	return nil
}

func (s *LocalStorage) Ping(ctx context.Context) error {
	return s.coll.Database().Client().Ping(ctx, nil)
}
