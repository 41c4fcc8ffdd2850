package persistence

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/petrijr/draftflow/pkg/api"
)

// MongoStore is an api.Store backed by a MongoDB collection holding one
// document per key.
type MongoStore struct {
	coll *mongo.Collection
}

var _ api.Store = (*MongoStore)(nil)

// NewMongoStore creates a Mongo-backed store.
// dbName defaults to "draftflow" if empty, collName defaults to "kv_store".
func NewMongoStore(client *mongo.Client, dbName, collName string) *MongoStore {
	if dbName == "" {
		dbName = "draftflow"
	}
	if collName == "" {
		collName = "kv_store"
	}
	return &MongoStore{
		coll: client.Database(dbName).Collection(collName),
	}
}

type mongoKVDoc struct {
	Key   string `bson:"_id"`
	Value string `bson:"value"`
}

func (s *MongoStore) Get(ctx context.Context, key string) (string, error) {
	var doc mongoKVDoc
	err := s.coll.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", ErrKeyNotFound
		}
		return "", err
	}
	return doc.Value, nil
}

func (s *MongoStore) Set(ctx context.Context, key string, value string) error {
	_, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": key},
		bson.M{"$set": bson.M{"value": value}},
		options.Update().SetUpsert(true),
	)
	return err
}

func (s *MongoStore) Remove(ctx context.Context, key string) error {
	_, err := s.coll.DeleteOne(ctx, bson.M{"_id": key})
	return err
}
