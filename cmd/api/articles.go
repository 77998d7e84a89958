package main

import (
	"net/http"

	"github.com/AlexandrePereon/ELECTIVE-WEB-RESTAURANT/internal/domain"
	"github.com/AlexandrePereon/ELECTIVE-WEB-RESTAURANT/internal/service"
	"github.com/go-chi/chi"
)

type CreateArticleRequest struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Description string  `json:"description" validate:"required"`
	Price       float64 `json:"price" validate:"gte=0"`
	Image       string  `json:"image"`
}

type UpdateArticleRequest struct {
	Name        string   `json:"name" validate:"omitempty,max=100"`
	Description string   `json:"description"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	Image       string   `json:"image"`
}

// createArticleHandler godoc
//
//	@Summary		Create an article
//	@Description	Creates an article in the caller's restaurant
//	@Tags			articles
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateArticleRequest	true	"Article payload"
//	@Success		201		{object}	CreatedResponse
//	@Failure		400		{object}	MessageResponse
//	@Failure		409		{object}	MessageResponse
//	@Router			/article/create [post]
func (app *application) createArticleHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateArticleRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	restaurant := restaurantFromContext(r.Context())

	id, err := app.articleService.Create(r.Context(), restaurant.ID, service.CreateArticleInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Image:       req.Image,
	})
	if err != nil {
		app.handleServiceError(w, r, err)
		return
	}

	response := CreatedResponse{ID: id.Hex(), Message: "Article created successfully"}

	if err := app.jsonRespone(w, http.StatusCreated, response); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getArticleHandler godoc
//
//	@Summary		Get article by ID
//	@Tags			articles
//	@Produce		json
//	@Param			article_id	path		string	true	"Article ID"
//	@Success		200			{object}	domain.Article
//	@Failure		400			{object}	MessageResponse
//	@Failure		404			{object}	MessageResponse
//	@Router			/articles/{article_id} [get]
func (app *application) getArticleHandler(w http.ResponseWriter, r *http.Request) {
	article, err := app.articleService.Get(r.Context(), chi.URLParam(r, "article_id"))
	if err != nil {
		app.handleServiceError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, article); err != nil {
		app.internalServerError(w, r, err)
	}
}

// updateArticleHandler godoc
//
//	@Summary		Update an article
//	@Description	Partial update; omitted fields keep their stored value
//	@Tags			articles
//	@Accept			json
//	@Produce		json
//	@Param			article_id	path		string					true	"Article ID"
//	@Param			request		body		UpdateArticleRequest	true	"Fields to update"
//	@Success		200			{object}	domain.Article
//	@Failure		400			{object}	MessageResponse
//	@Failure		403			{object}	MessageResponse
//	@Failure		404			{object}	MessageResponse
//	@Router			/article/update/{article_id} [patch]
func (app *application) updateArticleHandler(w http.ResponseWriter, r *http.Request) {
	var req UpdateArticleRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	restaurant := restaurantFromContext(r.Context())

	article, err := app.articleService.Update(r.Context(), restaurant.ID, chi.URLParam(r, "article_id"), service.ArticlePatch{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Image:       req.Image,
	})
	if err != nil {
		app.handleServiceError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, article); err != nil {
		app.internalServerError(w, r, err)
	}
}

// deleteArticleHandler godoc
//
//	@Summary		Delete an article
//	@Description	Fails while any menu still references the article
//	@Tags			articles
//	@Produce		json
//	@Param			article_id	path		string	true	"Article ID"
//	@Success		200			{object}	MessageResponse
//	@Failure		403			{object}	MessageResponse
//	@Failure		404			{object}	MessageResponse
//	@Failure		409			{object}	MessageResponse
//	@Router			/article/delete/{article_id} [delete]
func (app *application) deleteArticleHandler(w http.ResponseWriter, r *http.Request) {
	restaurant := restaurantFromContext(r.Context())

	if err := app.articleService.Delete(r.Context(), restaurant.ID, chi.URLParam(r, "article_id")); err != nil {
		app.handleServiceError(w, r, err)
		return
	}

	response := MessageResponse{Message: "Article deleted successfully"}

	if err := app.jsonRespone(w, http.StatusOK, response); err != nil {
		app.internalServerError(w, r, err)
	}
}

// listRestaurantArticlesHandler godoc
//
//	@Summary		List articles of a restaurant
//	@Description	Paginated list, five per page; 404 when the restaurant has none
//	@Tags			articles
//	@Produce		json
//	@Param			restaurant_id	path		string	true	"Restaurant ID"
//	@Param			page			path		int		true	"Page number (1-indexed)"
//	@Success		200				{object}	service.ArticleList
//	@Failure		400				{object}	MessageResponse
//	@Failure		404				{object}	MessageResponse
//	@Router			/restaurants/{restaurant_id}/articles/{page} [get]
func (app *application) listRestaurantArticlesHandler(w http.ResponseWriter, r *http.Request) {
	page, err := pageParam(r)
	if err != nil {
		app.badRequestResponse(w, r, domain.ErrInvalidPage)
		return
	}

	list, err := app.articleService.ListByRestaurant(r.Context(), chi.URLParam(r, "restaurant_id"), page)
	if err != nil {
		app.handleServiceError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, list); err != nil {
		app.internalServerError(w, r, err)
	}
}
