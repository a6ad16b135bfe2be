package startups

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"launchrate/pkg/access"
	"launchrate/pkg/auth"
	"launchrate/pkg/response"
)

type StartupHandler struct {
	service StartupService
}

func NewStartupHandler(service StartupService) *StartupHandler {
	return &StartupHandler{service: service}
}

func (h *StartupHandler) RegisterRoutes(router *gin.Engine) {
	router.POST("/startups", auth.Required(), h.createStartup)
	router.PUT("/startups/:id", auth.Required(), h.updateStartup)
	router.DELETE("/startups/:id", auth.Required(), h.deleteStartup)
	router.GET("/startups/:id", h.getStartupByID)
}

type startupRequest struct {
	Name        string   `json:"name" binding:"required"`
	Summary     string   `json:"summary"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	LogoURL     string   `json:"logo_url"`
	Visibility  string   `json:"visibility"`
	Status      string   `json:"status"`
	Asks        string   `json:"asks"`
	WebsiteURL  string   `json:"website_url"`
}

func (r startupRequest) toStartup() Startup {
	return Startup{
		Name:        r.Name,
		Summary:     r.Summary,
		Description: r.Description,
		Tags:        r.Tags,
		LogoURL:     r.LogoURL,
		Visibility:  r.Visibility,
		Status:      r.Status,
		Asks:        r.Asks,
		WebsiteURL:  r.WebsiteURL,
	}
}

// @Summary      Create a new startup
// @Description  Creates a startup owned by the authenticated user; visibility defaults to public
// @Tags         startups
// @Accept       json
// @Produce      json
// @Param        request body startupRequest true "Startup creation request"
// @Success      201  {object}  response.APIResponse{data=Startup} "Startup created"
// @Failure      400  {object}  response.APIResponse "Invalid request payload"
// @Failure      401  {object}  response.APIResponse "Authentication required"
// @Router       /startups [post]
func (h *StartupHandler) createStartup(c *gin.Context) {
	var req startupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	input := req.toStartup()
	input.OwnerUUID = auth.Viewer(c)

	startup, err := h.service.CreateStartup(c.Request.Context(), input)
	if err != nil {
		if err == ErrInvalidVisibility {
			response.Fail(c, http.StatusBadRequest, "invalid visibility")
			return
		}
		response.Fail(c, http.StatusInternalServerError, err.Error())
		return
	}

	response.SendAPIResponse(c, http.StatusCreated, true, "startup created", startup)
}

// @Summary      Update a startup
// @Description  Updates a startup; only the owner may do this
// @Tags         startups
// @Accept       json
// @Produce      json
// @Param        id   path      int  true  "Startup ID"
// @Param        request body startupRequest true "Startup update request"
// @Success      200  {object}  response.APIResponse{data=Startup} "Startup updated"
// @Failure      400  {object}  response.APIResponse "Invalid request"
// @Failure      403  {object}  response.APIResponse "Not the owner"
// @Failure      404  {object}  response.APIResponse "Startup not found"
// @Router       /startups/{id} [put]
func (h *StartupHandler) updateStartup(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Fail(c, http.StatusBadRequest, "invalid startup id")
		return
	}

	var req startupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	input := req.toStartup()
	input.ID = id

	startup, err := h.service.UpdateStartup(c.Request.Context(), auth.Viewer(c), input)
	if err != nil {
		switch err {
		case ErrStartupNotFound:
			response.Fail(c, http.StatusNotFound, "startup not found")
		case ErrInvalidVisibility:
			response.Fail(c, http.StatusBadRequest, "invalid visibility")
		case access.ErrNotOwner:
			response.Fail(c, http.StatusForbidden, "only the owner may update a startup")
		default:
			response.Fail(c, http.StatusInternalServerError, err.Error())
		}
		return
	}

	response.OK(c, "startup updated", startup)
}

// @Summary      Delete a startup
// @Description  Soft deletes a startup; only the owner may do this
// @Tags         startups
// @Produce      json
// @Param        id   path      int  true  "Startup ID"
// @Success      200  {object}  response.APIResponse "Startup deleted"
// @Failure      403  {object}  response.APIResponse "Not the owner"
// @Failure      404  {object}  response.APIResponse "Startup not found"
// @Router       /startups/{id} [delete]
func (h *StartupHandler) deleteStartup(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Fail(c, http.StatusBadRequest, "invalid startup id")
		return
	}

	if err := h.service.DeleteStartup(c.Request.Context(), auth.Viewer(c), id); err != nil {
		switch err {
		case ErrStartupNotFound:
			response.Fail(c, http.StatusNotFound, "startup not found")
		case access.ErrNotOwner:
			response.Fail(c, http.StatusForbidden, "only the owner may delete a startup")
		default:
			response.Fail(c, http.StatusInternalServerError, err.Error())
		}
		return
	}

	response.OK(c, "startup deleted", nil)
}

// @Summary      Get startup by ID
// @Description  Retrieves a single startup's public fields
// @Tags         startups
// @Produce      json
// @Param        id   path      int  true  "Startup ID"
// @Success      200  {object}  response.APIResponse{data=Startup} "Startup fetched"
// @Failure      404  {object}  response.APIResponse "Startup not found"
// @Router       /startups/{id} [get]
func (h *StartupHandler) getStartupByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Fail(c, http.StatusBadRequest, "invalid startup id")
		return
	}

	startup, err := h.service.GetStartupByID(c.Request.Context(), id)
	if err != nil {
		if err == ErrStartupNotFound {
			response.Fail(c, http.StatusNotFound, "startup not found")
			return
		}
		response.Fail(c, http.StatusInternalServerError, err.Error())
		return
	}

	response.OK(c, "startup fetched", startup)
}
