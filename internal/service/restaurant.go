package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/AlexandrePereon/ELECTIVE-WEB-RESTAURANT/internal/domain"
	"github.com/AlexandrePereon/ELECTIVE-WEB-RESTAURANT/internal/media"
	"github.com/AlexandrePereon/ELECTIVE-WEB-RESTAURANT/internal/pagination"
	"github.com/AlexandrePereon/ELECTIVE-WEB-RESTAURANT/internal/queue"
	"github.com/AlexandrePereon/ELECTIVE-WEB-RESTAURANT/internal/repo"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// RestaurantService owns the restaurant lifecycle: one restaurant per
// creator, globally unique names, and the transactional delete cascade over
// the restaurant's articles and menus.
type RestaurantService struct {
	restaurants repo.RestaurantRepository
	articles    repo.ArticleRepository
	menus       repo.MenuRepository
	tx          repo.Transactor
	broker      queue.Broker
	converter   *media.Converter
	logger      *zap.SugaredLogger
}

func NewRestaurantService(
	restaurants repo.RestaurantRepository,
	articles repo.ArticleRepository,
	menus repo.MenuRepository,
	tx repo.Transactor,
	broker queue.Broker,
	converter *media.Converter,
	logger *zap.SugaredLogger,
) *RestaurantService {
	return &RestaurantService{
		restaurants: restaurants,
		articles:    articles,
		menus:       menus,
		tx:          tx,
		broker:      broker,
		converter:   converter,
		logger:      logger,
	}
}

type CreateRestaurantInput struct {
	Name        string
	Description string
	Image       string
}

// RestaurantPatch applies merge-patch semantics: empty fields keep the
// stored value.
type RestaurantPatch struct {
	Name        string
	Description string
	Image       string
}

type RestaurantList struct {
	Items   []domain.Restaurant `json:"items"`
	Count   int64               `json:"count"`
	MaxPage int                 `json:"max_page"`
}

func (s *RestaurantService) Create(ctx context.Context, creatorID string, in CreateRestaurantInput) (primitive.ObjectID, error) {
	_, err := s.restaurants.GetByCreatorID(ctx, creatorID)
	if err == nil {
		return primitive.NilObjectID, domain.ErrRestaurantExists
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return primitive.NilObjectID, err
	}

	if _, err := s.restaurants.GetByName(ctx, in.Name); err == nil {
		return primitive.NilObjectID, fmt.Errorf("restaurant name: %w", domain.ErrNameTaken)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return primitive.NilObjectID, err
	}

	image, err := s.converter.Convert(in.Image, media.ProfileRestaurant)
	if err != nil {
		return primitive.NilObjectID, err
	}

	restaurant := &domain.Restaurant{
		Name:        in.Name,
		Image:       image,
		Description: in.Description,
		CreatorID:   creatorID,
	}

	if err := s.restaurants.Create(ctx, restaurant); err != nil {
		return primitive.NilObjectID, err
	}

	s.logger.Infow("restaurant created", "restaurant_id", restaurant.ID.Hex(), "creator_id", creatorID)

	return restaurant.ID, nil
}

func (s *RestaurantService) Update(ctx context.Context, creatorID string, patch RestaurantPatch) (*domain.Restaurant, error) {
	restaurant, err := s.restaurants.GetByCreatorID(ctx, creatorID)
	if err != nil {
		return nil, err
	}

	if patch.Name != "" && patch.Name != restaurant.Name {
		if _, err := s.restaurants.GetByName(ctx, patch.Name); err == nil {
			return nil, fmt.Errorf("restaurant name: %w", domain.ErrNameTaken)
		} else if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		restaurant.Name = patch.Name
	}

	if patch.Description != "" {
		restaurant.Description = patch.Description
	}

	if patch.Image != "" {
		image, err := s.converter.Convert(patch.Image, media.ProfileRestaurant)
		if err != nil {
			return nil, err
		}
		restaurant.Image = image
	}

	if err := s.restaurants.Update(ctx, restaurant); err != nil {
		return nil, err
	}

	return restaurant, nil
}

// Delete removes the creator's restaurant together with every article and
// menu referencing it, inside one transaction. The identity service is told
// afterwards through the broker; a publish failure is logged and swallowed
// so the committed cascade stands.
func (s *RestaurantService) Delete(ctx context.Context, creatorID string) error {
	restaurant, err := s.restaurants.GetByCreatorID(ctx, creatorID)
	if err != nil {
		return err
	}

	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.articles.DeleteByRestaurantID(ctx, restaurant.ID); err != nil {
			return err
		}
		if err := s.menus.DeleteByRestaurantID(ctx, restaurant.ID); err != nil {
			return err
		}
		return s.restaurants.Delete(ctx, restaurant.ID)
	})
	if err != nil {
		return fmt.Errorf("failed to delete restaurant: %w", err)
	}

	s.logger.Infow("restaurant deleted", "restaurant_id", restaurant.ID.Hex(), "creator_id", creatorID)

	event := domain.RestaurantDeletedEvent{
		EventType:    domain.EventRestaurantDeleted,
		RestaurantID: restaurant.ID.Hex(),
		CreatorID:    creatorID,
		Timestamp:    time.Now(),
	}

	eventBytes, err := json.Marshal(event)
	if err != nil {
		s.logger.Errorw("failed to marshal restaurant deleted event", "error", err)
		return nil
	}

	if err := s.broker.Publish(ctx, queue.QueueRestaurantDeleted, eventBytes); err != nil {
		s.logger.Errorw("failed to publish restaurant deleted event",
			"restaurant_id", restaurant.ID.Hex(), "error", err)
	}

	return nil
}

func (s *RestaurantService) GetByCreator(ctx context.Context, creatorID string) (*domain.Restaurant, error) {
	return s.restaurants.GetByCreatorID(ctx, creatorID)
}

func (s *RestaurantService) GetByID(ctx context.Context, id string) (*domain.Restaurant, error) {
	restaurantID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	return s.restaurants.GetByID(ctx, restaurantID)
}

func (s *RestaurantService) List(ctx context.Context, page int) (*RestaurantList, error) {
	count, err := s.restaurants.Count(ctx)
	if err != nil {
		return nil, err
	}

	skip, maxPage, err := pagination.Paginate(count, page)
	if err != nil {
		return nil, err
	}

	items := []domain.Restaurant{}
	if count > 0 {
		items, err = s.restaurants.List(ctx, skip, pagination.PageSize)
		if err != nil {
			return nil, err
		}
	}

	return &RestaurantList{Items: items, Count: count, MaxPage: maxPage}, nil
}
