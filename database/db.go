package database

import (
	"context"
	"fmt"
	"time"

	"curabot/config"
	"curabot/utils"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// MongoClient is the global MongoDB client instance.
var MongoClient *mongo.Client

// InitDB initializes the MongoDB connection.
func InitDB() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(config.AppConfig.DatabaseURL)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		utils.GetLogger().Fatal("failed to connect to MongoDB", zap.Error(err))
	}
	if err := client.Ping(ctx, nil); err != nil {
		utils.GetLogger().Fatal("failed to ping MongoDB", zap.Error(err))
	}
	MongoClient = client
	utils.GetLogger().Info("Connected to MongoDB successfully",
		zap.String("database", config.AppConfig.DatabaseName))
}

// Database returns the configured application database.
func Database() *mongo.Database {
	return MongoClient.Database(config.AppConfig.DatabaseName)
}

// Disconnect closes the global client if it was opened.
func Disconnect(ctx context.Context) error {
	if MongoClient == nil {
		return nil
	}
	return MongoClient.Disconnect(ctx)
}

// Transactor runs a unit of work atomically where the deployment allows it.
type Transactor interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// MongoTransactor wraps fn in a multi-document transaction. Requires a
// replica set; on a standalone server use NoopTransactor instead.
type MongoTransactor struct {
	client *mongo.Client
}

func NewMongoTransactor(client *mongo.Client) *MongoTransactor {
	return &MongoTransactor{client: client}
}

func (t *MongoTransactor) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	sess, err := t.client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	if err != nil {
		return fmt.Errorf("transaction failed: %w", err)
	}
	return nil
}

// NoopTransactor runs fn directly with no atomicity across documents.
type NoopTransactor struct{}

func (NoopTransactor) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// NewTransactor picks the transactor matching MONGO_TRANSACTIONS.
func NewTransactor(client *mongo.Client) Transactor {
	if config.AppConfig.MongoTransactions && client != nil {
		return NewMongoTransactor(client)
	}
	return NoopTransactor{}
}

// Atomic reports whether t provides real multi-document atomicity.
func Atomic(t Transactor) bool {
	_, ok := t.(*MongoTransactor)
	return ok
}
