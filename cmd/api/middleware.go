package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/AlexandrePereon/ELECTIVE-WEB-RESTAURANT/internal/domain"
)

type contextKey string

const (
	identityContextKey   contextKey = "identity"
	restaurantContextKey contextKey = "restaurant"
)

// identityMiddleware parses the X-User header set by the gateway. The claim
// is trusted verbatim; some upstreams serialize the id as a number, so it is
// decoded leniently.
func (app *application) identityMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("X-User")
		if header == "" {
			app.unauthorizedResponse(w, r, errors.New("missing identity header"))
			return
		}

		var claim struct {
			ID   json.Number `json:"id"`
			Role string      `json:"role"`
		}
		if err := json.Unmarshal([]byte(header), &claim); err != nil {
			app.unauthorizedResponse(w, r, errors.New("malformed identity header"))
			return
		}

		if claim.ID.String() == "" {
			app.unauthorizedResponse(w, r, errors.New("identity header has no id"))
			return
		}

		user := domain.Identity{ID: claim.ID.String(), Role: claim.Role}

		ctx := context.WithValue(r.Context(), identityContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (app *application) requireRestaurantRole(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := identityFromContext(r.Context())
		if user.Role != domain.RoleRestaurant {
			app.forbiddenResponse(w, r, errors.New("restaurant role required"))
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withOwnedRestaurant resolves the caller's restaurant and attaches it to the
// request context, so handlers never re-fetch it.
func (app *application) withOwnedRestaurant(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := identityFromContext(r.Context())

		restaurant, err := app.restaurantService.GetByCreator(r.Context(), user.ID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				app.forbiddenResponse(w, r, errors.New("caller has no restaurant"))
				return
			}
			app.internalServerError(w, r, err)
			return
		}

		ctx := context.WithValue(r.Context(), restaurantContextKey, restaurant)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireNoRestaurant gates restaurant creation: one restaurant per creator.
func (app *application) requireNoRestaurant(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := identityFromContext(r.Context())

		_, err := app.restaurantService.GetByCreator(r.Context(), user.ID)
		if err == nil {
			app.conflictResponse(w, r, domain.ErrRestaurantExists)
			return
		}
		if !errors.Is(err, domain.ErrNotFound) {
			app.internalServerError(w, r, err)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (app *application) rateLimiterMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if app.config.rateLimiter.Enabled {
			if allow, retryAfter := app.rateLimiter.Allow(r.RemoteAddr); !allow {
				app.rateLimitExceededResponse(w, r, retryAfter.String())
				return
			}
		}

		next.ServeHTTP(w, r)
	})
}

func identityFromContext(ctx context.Context) domain.Identity {
	user, _ := ctx.Value(identityContextKey).(domain.Identity)
	return user
}

func restaurantFromContext(ctx context.Context) *domain.Restaurant {
	restaurant, _ := ctx.Value(restaurantContextKey).(*domain.Restaurant)
	return restaurant
}
