package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/AlexandrePereon/ELECTIVE-WEB-RESTAURANT/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ArticleRepository struct {
	collection *mongo.Collection
}

func NewArticleRepository(db *mongo.Database) *ArticleRepository {
	return &ArticleRepository{
		collection: db.Collection(CollectionArticles),
	}
}

func (r *ArticleRepository) Create(ctx context.Context, article *domain.Article) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if article.ID.IsZero() {
		article.ID = primitive.NewObjectID()
	}
	article.CreatedAt = time.Now()
	article.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, article)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrNameTaken
		}
		return fmt.Errorf("failed to create article: %w", err)
	}

	return nil
}

func (r *ArticleRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Article, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var article domain.Article
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&article)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("article: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get article: %w", err)
	}

	return &article, nil
}

func (r *ArticleRepository) GetByName(ctx context.Context, restaurantID primitive.ObjectID, name string) (*domain.Article, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var article domain.Article
	err := r.collection.FindOne(ctx, bson.M{"restaurant_id": restaurantID, "name": name}).Decode(&article)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("article %q: %w", name, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get article by name: %w", err)
	}

	return &article, nil
}

func (r *ArticleRepository) Update(ctx context.Context, article *domain.Article) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	article.UpdatedAt = time.Now()

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": article.ID}, bson.M{"$set": article})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrNameTaken
		}
		return fmt.Errorf("failed to update article: %w", err)
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("article: %w", domain.ErrNotFound)
	}

	return nil
}

func (r *ArticleRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete article: %w", err)
	}

	if result.DeletedCount == 0 {
		return fmt.Errorf("article: %w", domain.ErrNotFound)
	}

	return nil
}

func (r *ArticleRepository) ListByRestaurantID(ctx context.Context, restaurantID primitive.ObjectID, skip, limit int64) ([]domain.Article, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetSkip(skip).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, bson.M{"restaurant_id": restaurantID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list articles: %w", err)
	}
	defer cursor.Close(ctx)

	articles := []domain.Article{}
	if err := cursor.All(ctx, &articles); err != nil {
		return nil, fmt.Errorf("failed to decode articles: %w", err)
	}

	return articles, nil
}

func (r *ArticleRepository) CountByRestaurantID(ctx context.Context, restaurantID primitive.ObjectID) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{"restaurant_id": restaurantID})
	if err != nil {
		return 0, fmt.Errorf("failed to count articles: %w", err)
	}

	return count, nil
}

func (r *ArticleRepository) DeleteByRestaurantID(ctx context.Context, restaurantID primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := r.collection.DeleteMany(ctx, bson.M{"restaurant_id": restaurantID})
	if err != nil {
		return fmt.Errorf("failed to delete restaurant articles: %w", err)
	}

	return nil
}
