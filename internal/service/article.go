package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/AlexandrePereon/ELECTIVE-WEB-RESTAURANT/internal/domain"
	"github.com/AlexandrePereon/ELECTIVE-WEB-RESTAURANT/internal/media"
	"github.com/AlexandrePereon/ELECTIVE-WEB-RESTAURANT/internal/pagination"
	"github.com/AlexandrePereon/ELECTIVE-WEB-RESTAURANT/internal/repo"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ArticleService owns the article lifecycle. Names are unique within the
// owning restaurant; an article cannot be deleted while a menu references it.
type ArticleService struct {
	articles  repo.ArticleRepository
	menus     repo.MenuRepository
	converter *media.Converter
	logger    *zap.SugaredLogger
}

func NewArticleService(
	articles repo.ArticleRepository,
	menus repo.MenuRepository,
	converter *media.Converter,
	logger *zap.SugaredLogger,
) *ArticleService {
	return &ArticleService{
		articles:  articles,
		menus:     menus,
		converter: converter,
		logger:    logger,
	}
}

type CreateArticleInput struct {
	Name        string
	Description string
	Price       float64
	Image       string
}

// ArticlePatch applies merge-patch semantics. Price is a pointer so an
// omitted price is distinguishable from a zero one.
type ArticlePatch struct {
	Name        string
	Description string
	Image       string
	Price       *float64
}

type ArticleList struct {
	Items   []domain.Article `json:"items"`
	Count   int64            `json:"count"`
	MaxPage int              `json:"max_page"`
}

func (s *ArticleService) Create(ctx context.Context, restaurantID primitive.ObjectID, in CreateArticleInput) (primitive.ObjectID, error) {
	if in.Price < 0 {
		return primitive.NilObjectID, domain.ErrInvalidPrice
	}

	if _, err := s.articles.GetByName(ctx, restaurantID, in.Name); err == nil {
		return primitive.NilObjectID, fmt.Errorf("article name: %w", domain.ErrNameTaken)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return primitive.NilObjectID, err
	}

	image, err := s.converter.Convert(in.Image, media.ProfileArticle)
	if err != nil {
		return primitive.NilObjectID, err
	}

	article := &domain.Article{
		Name:         in.Name,
		Image:        image,
		Description:  in.Description,
		Price:        in.Price,
		RestaurantID: restaurantID,
	}

	if err := s.articles.Create(ctx, article); err != nil {
		return primitive.NilObjectID, err
	}

	s.logger.Infow("article created", "article_id", article.ID.Hex(), "restaurant_id", restaurantID.Hex())

	return article.ID, nil
}

func (s *ArticleService) Get(ctx context.Context, id string) (*domain.Article, error) {
	articleID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	return s.articles.GetByID(ctx, articleID)
}

func (s *ArticleService) Update(ctx context.Context, restaurantID primitive.ObjectID, id string, patch ArticlePatch) (*domain.Article, error) {
	articleID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	article, err := s.articles.GetByID(ctx, articleID)
	if err != nil {
		return nil, err
	}

	if article.RestaurantID != restaurantID {
		return nil, domain.ErrForbidden
	}

	if patch.Name != "" && patch.Name != article.Name {
		if _, err := s.articles.GetByName(ctx, restaurantID, patch.Name); err == nil {
			return nil, fmt.Errorf("article name: %w", domain.ErrNameTaken)
		} else if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		article.Name = patch.Name
	}

	if patch.Description != "" {
		article.Description = patch.Description
	}

	if patch.Price != nil {
		if *patch.Price < 0 {
			return nil, domain.ErrInvalidPrice
		}
		article.Price = *patch.Price
	}

	if patch.Image != "" {
		image, err := s.converter.Convert(patch.Image, media.ProfileArticle)
		if err != nil {
			return nil, err
		}
		article.Image = image
	}

	if err := s.articles.Update(ctx, article); err != nil {
		return nil, err
	}

	return article, nil
}

// Delete refuses to remove an article while any menu references it, keeping
// menu compositions valid after creation.
func (s *ArticleService) Delete(ctx context.Context, restaurantID primitive.ObjectID, id string) error {
	articleID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrInvalidID
	}

	article, err := s.articles.GetByID(ctx, articleID)
	if err != nil {
		return err
	}

	if article.RestaurantID != restaurantID {
		return domain.ErrForbidden
	}

	referencing, err := s.menus.CountByArticleID(ctx, articleID)
	if err != nil {
		return err
	}
	if referencing > 0 {
		return fmt.Errorf("%w (%d menus)", domain.ErrArticleInUse, referencing)
	}

	if err := s.articles.Delete(ctx, articleID); err != nil {
		return err
	}

	s.logger.Infow("article deleted", "article_id", articleID.Hex(), "restaurant_id", restaurantID.Hex())

	return nil
}

func (s *ArticleService) ListByRestaurant(ctx context.Context, restaurantID string, page int) (*ArticleList, error) {
	id, err := primitive.ObjectIDFromHex(restaurantID)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	count, err := s.articles.CountByRestaurantID(ctx, id)
	if err != nil {
		return nil, err
	}

	if count == 0 {
		return nil, fmt.Errorf("no articles found for this restaurant: %w", domain.ErrNotFound)
	}

	skip, maxPage, err := pagination.Paginate(count, page)
	if err != nil {
		return nil, err
	}

	items, err := s.articles.ListByRestaurantID(ctx, id, skip, pagination.PageSize)
	if err != nil {
		return nil, err
	}

	return &ArticleList{Items: items, Count: count, MaxPage: maxPage}, nil
}
