package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AlexandrePereon/ELECTIVE-WEB-RESTAURANT/docs"
	"github.com/AlexandrePereon/ELECTIVE-WEB-RESTAURANT/internal/queue"
	"github.com/AlexandrePereon/ELECTIVE-WEB-RESTAURANT/internal/ratelimiter"
	"github.com/AlexandrePereon/ELECTIVE-WEB-RESTAURANT/internal/service"
	"github.com/AlexandrePereon/ELECTIVE-WEB-RESTAURANT/internal/store/mongo"
	"github.com/AlexandrePereon/ELECTIVE-WEB-RESTAURANT/internal/worker"
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
)

type application struct {
	config            config
	logger            *zap.SugaredLogger
	rateLimiter       ratelimiter.Limiter
	storage           *mongo.Storage
	broker            queue.Broker
	restaurantService *service.RestaurantService
	articleService    *service.ArticleService
	menuService       *service.MenuService
	identityWorker    *worker.IdentityNotifyWorker
}

type config struct {
	addr        string
	env         string
	apiURL      string
	authURL     string
	rateLimiter ratelimiter.Config
	mongo       mongoConfig
	rabbitMQ    rabbitMQConfig
}

type mongoConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

type rabbitMQConfig struct {
	URL           string
	MaxRetries    int
	RetryDelay    time.Duration
	PrefetchCount int
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(app.rateLimiterMiddleware)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", app.healthCheckHandler)

		// public catalog reads
		r.Get("/restaurants/all/{page}", app.listRestaurantsHandler)
		r.Get("/restaurants/{restaurant_id}", app.getRestaurantHandler)
		r.Get("/restaurants/{restaurant_id}/articles/{page}", app.listRestaurantArticlesHandler)
		r.Get("/restaurants/{restaurant_id}/menus/{page}", app.listRestaurantMenusHandler)
		r.Get("/articles/{article_id}", app.getArticleHandler)
		r.Get("/menus/{menu_id}", app.getMenuHandler)

		// owner operations
		r.Group(func(r chi.Router) {
			r.Use(app.identityMiddleware)
			r.Use(app.requireRestaurantRole)

			r.With(app.requireNoRestaurant).Post("/restaurant/create", app.createRestaurantHandler)

			r.Group(func(r chi.Router) {
				r.Use(app.withOwnedRestaurant)

				r.Get("/restaurant", app.getMyRestaurantHandler)
				r.Patch("/restaurant/update", app.updateRestaurantHandler)
				r.Delete("/restaurant/delete", app.deleteRestaurantHandler)

				r.Post("/article/create", app.createArticleHandler)
				r.Patch("/article/update/{article_id}", app.updateArticleHandler)
				r.Delete("/article/delete/{article_id}", app.deleteArticleHandler)

				r.Post("/menu/create", app.createMenuHandler)
				r.Patch("/menu/update/{menu_id}", app.updateMenuHandler)
				r.Delete("/menu/delete/{menu_id}", app.deleteMenuHandler)
			})
		})

		docsURL := fmt.Sprintf("%s/swagger/doc.json", app.config.addr)
		r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL(docsURL)))
	})

	return r
}

func (app *application) run(mux http.Handler) error {
	// docs
	docs.SwaggerInfo.Title = "Elective Restaurant"
	docs.SwaggerInfo.Description = "Restaurant catalog API"
	docs.SwaggerInfo.Version = "1.0"
	docs.SwaggerInfo.Host = app.config.apiURL
	docs.SwaggerInfo.BasePath = "/api/v1"

	// workers
	if app.identityWorker != nil {
		if err := app.identityWorker.Start(); err != nil {
			return fmt.Errorf("failed to start identity notify worker: %w", err)
		}
	}

	srv := &http.Server{
		Addr:         app.config.addr,
		Handler:      mux,
		WriteTimeout: time.Second * 30,
		ReadTimeout:  time.Second * 10,
		IdleTimeout:  time.Minute,
	}

	shutdown := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)

		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		app.logger.Infow("signal caught", "signal", s.String())

		if app.identityWorker != nil {
			app.identityWorker.Stop()
		}

		if app.storage != nil {
			if err := app.storage.Close(ctx); err != nil {
				app.logger.Errorw("error closing MongoDB", "error", err)
			} else {
				app.logger.Info("MongoDB connection closed gracefully")
			}
		}

		if app.broker != nil {
			if err := app.broker.Close(); err != nil {
				app.logger.Errorw("error closing RabbitMQ", "error", err)
			} else {
				app.logger.Info("RabbitMQ connection closed gracefully")
			}
		}

		shutdown <- srv.Shutdown(ctx)
	}()

	app.logger.Infow("server have started", "addr", app.config.addr, "env", app.config.env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdown
	if err != nil {
		return err
	}

	app.logger.Infow("server has stopped", "addr", app.config.addr, "env", app.config.env)

	return nil
}
