package ratings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"launchrate/pkg/auth"
	"launchrate/pkg/response"
	"launchrate/pkg/startups"
)

type RatingHandler struct {
	service RatingService
}

func NewRatingHandler(service RatingService) *RatingHandler {
	return &RatingHandler{service: service}
}

func (h *RatingHandler) RegisterRoutes(router *gin.Engine) {
	router.PUT("/startups/:id/ratings", auth.Required(), h.submitRatings)
	router.GET("/startups/:id/ratings", h.listRatings)
	router.DELETE("/startups/:id/ratings", auth.Required(), h.clearRatings)
}

type ratingEntry struct {
	Dimension  string `json:"dimension" binding:"required"`
	Score      int    `json:"score" binding:"required"`
	Comment    string `json:"comment"`
	Visibility string `json:"visibility"`
}

type submitRatingsRequest struct {
	Ratings []ratingEntry `json:"ratings" binding:"required"`
}

// @Summary      Submit ratings
// @Description  Replaces the caller's ratings for a startup atomically, one entry per dimension
// @Tags         ratings
// @Accept       json
// @Produce      json
// @Param        id path int true "Startup ID"
// @Param        request body submitRatingsRequest true "Rating submission"
// @Success      200  {object}  response.APIResponse{data=[]Rating} "Ratings saved"
// @Failure      400  {object}  response.APIResponse "Invalid submission"
// @Failure      403  {object}  response.APIResponse "Owners cannot rate their own startup"
// @Failure      404  {object}  response.APIResponse "Startup not found"
// @Router       /startups/{id}/ratings [put]
func (h *RatingHandler) submitRatings(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Fail(c, http.StatusBadRequest, "invalid startup id")
		return
	}

	var req submitRatingsRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Ratings) == 0 {
		response.Fail(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	entries := make([]Rating, 0, len(req.Ratings))
	for _, e := range req.Ratings {
		entries = append(entries, Rating{
			Dimension:  e.Dimension,
			Score:      e.Score,
			Comment:    e.Comment,
			Visibility: e.Visibility,
		})
	}

	saved, err := h.service.Submit(c.Request.Context(), id, auth.Viewer(c), entries)
	if err != nil {
		switch {
		case errors.Is(err, startups.ErrStartupNotFound):
			response.Fail(c, http.StatusNotFound, "startup not found")
		case errors.Is(err, ErrOwnRating):
			response.Fail(c, http.StatusForbidden, err.Error())
		case errors.Is(err, ErrInvalidDimension), errors.Is(err, ErrInvalidScore),
			errors.Is(err, ErrInvalidVisibility), errors.Is(err, ErrDuplicateDim):
			response.Fail(c, http.StatusBadRequest, err.Error())
		default:
			response.Fail(c, http.StatusInternalServerError, err.Error())
		}
		return
	}

	response.OK(c, "ratings saved", saved)
}

// @Summary      List visible ratings
// @Description  Returns the ratings the caller may see for a startup, plus aggregates over that set
// @Tags         ratings
// @Produce      json
// @Param        id path int true "Startup ID"
// @Success      200  {object}  response.APIResponse{data=RatingView} "Ratings listed"
// @Failure      404  {object}  response.APIResponse "Startup not found"
// @Router       /startups/{id}/ratings [get]
func (h *RatingHandler) listRatings(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Fail(c, http.StatusBadRequest, "invalid startup id")
		return
	}

	view, err := h.service.ListVisible(c.Request.Context(), id, auth.Viewer(c))
	if err != nil {
		if errors.Is(err, startups.ErrStartupNotFound) {
			response.Fail(c, http.StatusNotFound, "startup not found")
			return
		}
		response.Fail(c, http.StatusInternalServerError, err.Error())
		return
	}

	response.OK(c, "ratings listed", view)
}

// @Summary      Clear own ratings
// @Description  Removes all of the caller's ratings for a startup
// @Tags         ratings
// @Produce      json
// @Param        id path int true "Startup ID"
// @Success      200  {object}  response.APIResponse "Ratings cleared"
// @Failure      404  {object}  response.APIResponse "No ratings to clear"
// @Router       /startups/{id}/ratings [delete]
func (h *RatingHandler) clearRatings(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Fail(c, http.StatusBadRequest, "invalid startup id")
		return
	}

	if err := h.service.Clear(c.Request.Context(), id, auth.Viewer(c)); err != nil {
		if errors.Is(err, ErrRatingNotFound) {
			response.Fail(c, http.StatusNotFound, "no ratings to clear")
			return
		}
		response.Fail(c, http.StatusInternalServerError, err.Error())
		return
	}

	response.OK(c, "ratings cleared", nil)
}
