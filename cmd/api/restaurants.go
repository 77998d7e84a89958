package main

import (
	"net/http"
	"strconv"

	"github.com/AlexandrePereon/ELECTIVE-WEB-RESTAURANT/internal/domain"
	"github.com/AlexandrePereon/ELECTIVE-WEB-RESTAURANT/internal/service"
	"github.com/go-chi/chi"
)

type CreateRestaurantRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"required"`
	Image       string `json:"image"`
}

type UpdateRestaurantRequest struct {
	Name        string `json:"name" validate:"omitempty,max=100"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

type CreatedResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func pageParam(r *http.Request) (int, error) {
	return strconv.Atoi(chi.URLParam(r, "page"))
}

// createRestaurantHandler godoc
//
//	@Summary		Create a restaurant
//	@Description	Creates the caller's restaurant; a creator can own only one
//	@Tags			restaurants
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateRestaurantRequest	true	"Restaurant payload"
//	@Success		201		{object}	CreatedResponse
//	@Failure		400		{object}	MessageResponse
//	@Failure		409		{object}	MessageResponse
//	@Router			/restaurant/create [post]
func (app *application) createRestaurantHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateRestaurantRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	user := identityFromContext(r.Context())

	id, err := app.restaurantService.Create(r.Context(), user.ID, service.CreateRestaurantInput{
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
	})
	if err != nil {
		app.handleServiceError(w, r, err)
		return
	}

	response := CreatedResponse{ID: id.Hex(), Message: "Restaurant created successfully"}

	if err := app.jsonRespone(w, http.StatusCreated, response); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getMyRestaurantHandler godoc
//
//	@Summary		Get own restaurant
//	@Description	Returns the restaurant owned by the caller
//	@Tags			restaurants
//	@Produce		json
//	@Success		200	{object}	domain.Restaurant
//	@Failure		403	{object}	MessageResponse
//	@Router			/restaurant [get]
func (app *application) getMyRestaurantHandler(w http.ResponseWriter, r *http.Request) {
	restaurant := restaurantFromContext(r.Context())

	if err := app.jsonRespone(w, http.StatusOK, restaurant); err != nil {
		app.internalServerError(w, r, err)
	}
}

// updateRestaurantHandler godoc
//
//	@Summary		Update own restaurant
//	@Description	Partial update; omitted fields keep their stored value
//	@Tags			restaurants
//	@Accept			json
//	@Produce		json
//	@Param			request	body		UpdateRestaurantRequest	true	"Fields to update"
//	@Success		200		{object}	domain.Restaurant
//	@Failure		400		{object}	MessageResponse
//	@Failure		409		{object}	MessageResponse
//	@Router			/restaurant/update [patch]
func (app *application) updateRestaurantHandler(w http.ResponseWriter, r *http.Request) {
	var req UpdateRestaurantRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	user := identityFromContext(r.Context())

	restaurant, err := app.restaurantService.Update(r.Context(), user.ID, service.RestaurantPatch{
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
	})
	if err != nil {
		app.handleServiceError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, restaurant); err != nil {
		app.internalServerError(w, r, err)
	}
}

// deleteRestaurantHandler godoc
//
//	@Summary		Delete own restaurant
//	@Description	Removes the restaurant together with all its articles and menus
//	@Tags			restaurants
//	@Produce		json
//	@Success		200	{object}	MessageResponse
//	@Failure		404	{object}	MessageResponse
//	@Router			/restaurant/delete [delete]
func (app *application) deleteRestaurantHandler(w http.ResponseWriter, r *http.Request) {
	user := identityFromContext(r.Context())

	if err := app.restaurantService.Delete(r.Context(), user.ID); err != nil {
		app.handleServiceError(w, r, err)
		return
	}

	response := MessageResponse{Message: "Restaurant deleted successfully"}

	if err := app.jsonRespone(w, http.StatusOK, response); err != nil {
		app.internalServerError(w, r, err)
	}
}

// listRestaurantsHandler godoc
//
//	@Summary		List restaurants
//	@Description	Paginated list of all restaurants, five per page
//	@Tags			restaurants
//	@Produce		json
//	@Param			page	path		int	true	"Page number (1-indexed)"
//	@Success		200		{object}	service.RestaurantList
//	@Failure		400		{object}	MessageResponse
//	@Failure		404		{object}	MessageResponse
//	@Router			/restaurants/all/{page} [get]
func (app *application) listRestaurantsHandler(w http.ResponseWriter, r *http.Request) {
	page, err := pageParam(r)
	if err != nil {
		app.badRequestResponse(w, r, domain.ErrInvalidPage)
		return
	}

	list, err := app.restaurantService.List(r.Context(), page)
	if err != nil {
		app.handleServiceError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, list); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getRestaurantHandler godoc
//
//	@Summary		Get restaurant by ID
//	@Tags			restaurants
//	@Produce		json
//	@Param			restaurant_id	path		string	true	"Restaurant ID"
//	@Success		200				{object}	domain.Restaurant
//	@Failure		400				{object}	MessageResponse
//	@Failure		404				{object}	MessageResponse
//	@Router			/restaurants/{restaurant_id} [get]
func (app *application) getRestaurantHandler(w http.ResponseWriter, r *http.Request) {
	restaurant, err := app.restaurantService.GetByID(r.Context(), chi.URLParam(r, "restaurant_id"))
	if err != nil {
		app.handleServiceError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, restaurant); err != nil {
		app.internalServerError(w, r, err)
	}
}
