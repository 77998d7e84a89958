package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	CollectionRestaurants = "restaurants"
	CollectionArticles    = "articles"
	CollectionMenus       = "menus"
)

type Storage struct {
	client   *mongo.Client
	database *mongo.Database
	config   Config
}

type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

func New(cfg Config) (*Storage, error) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	clientOptions := options.Client().
		ApplyURI(cfg.URI).
		SetMaxPoolSize(100).
		SetMinPoolSize(10)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	database := client.Database(cfg.Database)

	return &Storage{
		client:   client,
		database: database,
		config:   cfg,
	}, nil
}

func (s *Storage) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *Storage) Database() *mongo.Database {
	return s.database
}

// WithTransaction runs fn inside a single session transaction. The restaurant
// delete cascade goes through here so the article/menu purge and the
// restaurant removal commit or abort together.
func (s *Storage) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := s.client.StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		return nil, fn(sessCtx)
	})
	if err != nil {
		return fmt.Errorf("transaction failed: %w", err)
	}

	return nil
}

// CreateIndexes installs the unique indexes that are the real enforcement
// point for the naming and ownership rules. The service pre-checks only
// exist to produce friendly errors before the write.
func (s *Storage) CreateIndexes(ctx context.Context) error {
	restaurantIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			// one restaurant per creator
			Keys:    bson.D{{Key: "creator_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	if _, err := s.database.Collection(CollectionRestaurants).Indexes().CreateMany(ctx, restaurantIndexes); err != nil {
		return fmt.Errorf("failed to create restaurants indexes: %w", err)
	}

	articleIndexes := []mongo.IndexModel{
		{
			// article names are unique within a restaurant, not globally
			Keys:    bson.D{{Key: "restaurant_id", Value: 1}, {Key: "name", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	if _, err := s.database.Collection(CollectionArticles).Indexes().CreateMany(ctx, articleIndexes); err != nil {
		return fmt.Errorf("failed to create articles indexes: %w", err)
	}

	menuIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "restaurant_id", Value: 1}, {Key: "name", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "articles", Value: 1}},
		},
	}
	if _, err := s.database.Collection(CollectionMenus).Indexes().CreateMany(ctx, menuIndexes); err != nil {
		return fmt.Errorf("failed to create menus indexes: %w", err)
	}

	return nil
}
