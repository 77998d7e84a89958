package domain

import "errors"

var (
	ErrNotFound  = errors.New("not found")
	ErrInvalidID = errors.New("invalid ID format")

	// ErrRestaurantExists means the creator already owns a restaurant.
	ErrRestaurantExists = errors.New("this user already owns a restaurant")

	// ErrNameTaken covers both the global restaurant name and the
	// per-restaurant article/menu name uniqueness rules.
	ErrNameTaken = errors.New("this name is already taken")

	ErrInvalidPrice = errors.New("price must not be negative")

	ErrNotEnoughArticles      = errors.New("a menu needs at least two distinct articles")
	ErrArticleNotFound        = errors.New("article not found")
	ErrArticleWrongRestaurant = errors.New("article belongs to another restaurant")

	// ErrArticleInUse blocks deleting an article still referenced by a menu.
	ErrArticleInUse = errors.New("article is still part of a menu")

	ErrInvalidPage    = errors.New("page must be 1 or greater")
	ErrPageOutOfRange = errors.New("page is out of range")

	ErrForbidden  = errors.New("you do not have the role required for this resource")
	ErrConversion = errors.New("image conversion failed")
)
