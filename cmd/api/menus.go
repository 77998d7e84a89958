package main

import (
	"net/http"

	"github.com/AlexandrePereon/ELECTIVE-WEB-RESTAURANT/internal/domain"
	"github.com/AlexandrePereon/ELECTIVE-WEB-RESTAURANT/internal/service"
	"github.com/go-chi/chi"
)

type CreateMenuRequest struct {
	Name        string   `json:"name" validate:"required,max=100"`
	Description string   `json:"description" validate:"required"`
	Articles    []string `json:"articles" validate:"required,min=2"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	Image       string   `json:"image"`
}

type UpdateMenuRequest struct {
	Name        string   `json:"name" validate:"omitempty,max=100"`
	Description string   `json:"description"`
	Articles    []string `json:"articles" validate:"omitempty,min=2"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	Image       string   `json:"image"`
}

// createMenuHandler godoc
//
//	@Summary		Create a menu
//	@Description	Composes at least two distinct articles of the caller's restaurant; price defaults to the article sum
//	@Tags			menus
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateMenuRequest	true	"Menu payload"
//	@Success		201		{object}	CreatedResponse
//	@Failure		400		{object}	MessageResponse
//	@Failure		404		{object}	MessageResponse
//	@Failure		409		{object}	MessageResponse
//	@Router			/menu/create [post]
func (app *application) createMenuHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateMenuRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	restaurant := restaurantFromContext(r.Context())

	id, err := app.menuService.Create(r.Context(), restaurant.ID, service.CreateMenuInput{
		Name:        req.Name,
		Description: req.Description,
		ArticleIDs:  req.Articles,
		Price:       req.Price,
		Image:       req.Image,
	})
	if err != nil {
		app.handleServiceError(w, r, err)
		return
	}

	response := CreatedResponse{ID: id.Hex(), Message: "Menu created successfully"}

	if err := app.jsonRespone(w, http.StatusCreated, response); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getMenuHandler godoc
//
//	@Summary		Get menu by ID
//	@Description	Returns the menu with its article references resolved
//	@Tags			menus
//	@Produce		json
//	@Param			menu_id	path		string	true	"Menu ID"
//	@Success		200		{object}	domain.MenuWithArticles
//	@Failure		400		{object}	MessageResponse
//	@Failure		404		{object}	MessageResponse
//	@Router			/menus/{menu_id} [get]
func (app *application) getMenuHandler(w http.ResponseWriter, r *http.Request) {
	menu, err := app.menuService.Get(r.Context(), chi.URLParam(r, "menu_id"))
	if err != nil {
		app.handleServiceError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, menu); err != nil {
		app.internalServerError(w, r, err)
	}
}

// updateMenuHandler godoc
//
//	@Summary		Update a menu
//	@Description	Partial update; replacing the article list re-validates the composition and re-derives the price unless one is given
//	@Tags			menus
//	@Accept			json
//	@Produce		json
//	@Param			menu_id	path		string				true	"Menu ID"
//	@Param			request	body		UpdateMenuRequest	true	"Fields to update"
//	@Success		200		{object}	domain.Menu
//	@Failure		400		{object}	MessageResponse
//	@Failure		403		{object}	MessageResponse
//	@Failure		404		{object}	MessageResponse
//	@Router			/menu/update/{menu_id} [patch]
func (app *application) updateMenuHandler(w http.ResponseWriter, r *http.Request) {
	var req UpdateMenuRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	restaurant := restaurantFromContext(r.Context())

	menu, err := app.menuService.Update(r.Context(), restaurant.ID, chi.URLParam(r, "menu_id"), service.MenuPatch{
		Name:        req.Name,
		Description: req.Description,
		ArticleIDs:  req.Articles,
		Price:       req.Price,
		Image:       req.Image,
	})
	if err != nil {
		app.handleServiceError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, menu); err != nil {
		app.internalServerError(w, r, err)
	}
}

// deleteMenuHandler godoc
//
//	@Summary		Delete a menu
//	@Description	Member articles are left untouched
//	@Tags			menus
//	@Produce		json
//	@Param			menu_id	path		string	true	"Menu ID"
//	@Success		200		{object}	MessageResponse
//	@Failure		403		{object}	MessageResponse
//	@Failure		404		{object}	MessageResponse
//	@Router			/menu/delete/{menu_id} [delete]
func (app *application) deleteMenuHandler(w http.ResponseWriter, r *http.Request) {
	restaurant := restaurantFromContext(r.Context())

	if err := app.menuService.Delete(r.Context(), restaurant.ID, chi.URLParam(r, "menu_id")); err != nil {
		app.handleServiceError(w, r, err)
		return
	}

	response := MessageResponse{Message: "Menu deleted successfully"}

	if err := app.jsonRespone(w, http.StatusOK, response); err != nil {
		app.internalServerError(w, r, err)
	}
}

// listRestaurantMenusHandler godoc
//
//	@Summary		List menus of a restaurant
//	@Description	Paginated list, five per page; 404 when the restaurant has none
//	@Tags			menus
//	@Produce		json
//	@Param			restaurant_id	path		string	true	"Restaurant ID"
//	@Param			page			path		int		true	"Page number (1-indexed)"
//	@Success		200				{object}	service.MenuList
//	@Failure		400				{object}	MessageResponse
//	@Failure		404				{object}	MessageResponse
//	@Router			/restaurants/{restaurant_id}/menus/{page} [get]
func (app *application) listRestaurantMenusHandler(w http.ResponseWriter, r *http.Request) {
	page, err := pageParam(r)
	if err != nil {
		app.badRequestResponse(w, r, domain.ErrInvalidPage)
		return
	}

	list, err := app.menuService.ListByRestaurant(r.Context(), chi.URLParam(r, "restaurant_id"), page)
	if err != nil {
		app.handleServiceError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, list); err != nil {
		app.internalServerError(w, r, err)
	}
}
