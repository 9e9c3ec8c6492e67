package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoConfig configures a MongoCache.
type MongoConfig struct {
	URI string
	// Database defaults to "turkshead".
	Database string
	// Collection defaults to "cache".
	Collection string
	// Timeout bounds server selection and connection attempts. Defaults to 2s.
	Timeout time.Duration
}

// MongoCache stores entries in a MongoDB collection. Expired entries are
// removed by a TTL index on expires_at and ignored on read until then.
type MongoCache struct {
	client *mongo.Client
	coll   *mongo.Collection
	db     string
}

type mongoEntry struct {
	Key       string     `bson:"_id"`
	Data      []byte     `bson:"data"`
	ExpiresAt *time.Time `bson:"expires_at,omitempty"`
}

// NewMongoCache creates a MongoDB-backed cache. The driver connects lazily;
// call Ping to check the server is reachable and create the TTL index.
func NewMongoCache(ctx context.Context, cfg MongoConfig) (*MongoCache, error) {
	if cfg.Database == "" {
		cfg.Database = "turkshead"
	}
	if cfg.Collection == "" {
		cfg.Collection = "cache"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 2 * time.Second
	}
	opts := options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(cfg.Timeout).
		SetServerSelectionTimeout(cfg.Timeout)
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	return &MongoCache{
		client: client,
		coll:   client.Database(cfg.Database).Collection(cfg.Collection),
		db:     cfg.Database + "." + cfg.Collection,
	}, nil
}

// Ping checks connectivity, retrying with backoff, and ensures the TTL index
// exists.
func (c *MongoCache) Ping(ctx context.Context) error {
	err := RetryWithBackoff(ctx, func() error {
		return c.unavailable(c.client.Ping(ctx, nil))
	})
	if err != nil {
		return err
	}
	_, err = c.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0),
	})
	return c.unavailable(err)
}

// Get retrieves a value.
func (c *MongoCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var e mongoEntry
	err := c.coll.FindOne(ctx, bson.M{"_id": key}).Decode(&e)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, c.unavailable(err)
	}
	if e.ExpiresAt != nil && time.Now().After(*e.ExpiresAt) {
		return nil, false, nil
	}
	return e.Data, true, nil
}

// Set stores a value. A ttl <= 0 keeps the entry until deleted.
func (c *MongoCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	e := mongoEntry{Key: key, Data: data}
	if ttl > 0 {
		exp := time.Now().Add(ttl).UTC()
		e.ExpiresAt = &exp
	}
	_, err := c.coll.ReplaceOne(ctx, bson.M{"_id": key}, e, options.Replace().SetUpsert(true))
	return c.unavailable(err)
}

// Delete removes a value.
func (c *MongoCache) Delete(ctx context.Context, key string) error {
	_, err := c.coll.DeleteOne(ctx, bson.M{"_id": key})
	return c.unavailable(err)
}

// Close disconnects the client.
func (c *MongoCache) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return c.client.Disconnect(ctx)
}

func (c *MongoCache) unavailable(err error) error {
	if err == nil {
		return nil
	}
	return Retryable(fmt.Errorf("%w: mongo %s: %w", ErrUnavailable, c.db, err))
}

var _ Cache = (*MongoCache)(nil)
