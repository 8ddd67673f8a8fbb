package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ConnectMongoDB opens a client and verifies it with a ping.
func ConnectMongoDB(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongodb connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongodb ping: %w", err)
	}
	return client, nil
}

type collectionDocument struct {
	Name      string    `bson:"_id"`
	Data      string    `bson:"data"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// MongoBackend stores each collection as a single document holding the same
// JSON array the file backend writes, so both backends share one contract.
type MongoBackend struct {
	client *mongo.Client
	coll   *mongo.Collection
}

func NewMongoBackend(client *mongo.Client, database, collection string) *MongoBackend {
	return &MongoBackend{
		client: client,
		coll:   client.Database(database).Collection(collection),
	}
}

func (b *MongoBackend) Read(ctx context.Context, name string) ([]byte, error) {
	var doc collectionDocument
	err := b.coll.FindOne(ctx, bson.M{"_id": name}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotExist
	}
	if err != nil {
		return nil, err
	}
	return []byte(doc.Data), nil
}

func (b *MongoBackend) Write(ctx context.Context, name string, data []byte) error {
	doc := collectionDocument{
		Name:      name,
		Data:      string(data),
		UpdatedAt: time.Now().UTC(),
	}
	_, err := b.coll.ReplaceOne(ctx, bson.M{"_id": name}, doc, options.Replace().SetUpsert(true))
	return err
}

func (b *MongoBackend) Close(ctx context.Context) error {
	return b.client.Disconnect(ctx)
}
