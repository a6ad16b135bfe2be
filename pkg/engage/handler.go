package engage

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"launchrate/pkg/auth"
	"launchrate/pkg/response"
)

type EngagementHandler struct {
	service EngagementService
}

func NewEngagementHandler(service EngagementService) *EngagementHandler {
	return &EngagementHandler{service: service}
}

func (h *EngagementHandler) RegisterRoutes(router *gin.Engine) {
	router.POST("/startups/:id/engagements/:type", auth.Required(), h.toggle)
	router.GET("/me/engagements", auth.Required(), h.listMine)
}

type toggleResult struct {
	StartupID int64  `json:"startup_id"`
	Type      string `json:"type"`
	On        bool   `json:"on"`
}

// @Summary      Toggle an engagement flag
// @Description  Flips the saved or interest flag for the caller on a startup
// @Tags         engagements
// @Produce      json
// @Param        id path int true "Startup ID"
// @Param        type path string true "Engagement type" Enums(saved, interest)
// @Success      200  {object}  response.APIResponse{data=toggleResult} "Flag toggled"
// @Failure      400  {object}  response.APIResponse "Invalid type"
// @Router       /startups/{id}/engagements/{type} [post]
func (h *EngagementHandler) toggle(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Fail(c, http.StatusBadRequest, "invalid startup id")
		return
	}

	engType := c.Param("type")
	on, err := h.service.Toggle(c.Request.Context(), id, auth.Viewer(c), engType)
	if err != nil {
		if err == ErrInvalidType {
			response.Fail(c, http.StatusBadRequest, "invalid engagement type")
			return
		}
		response.Fail(c, http.StatusInternalServerError, err.Error())
		return
	}

	response.OK(c, "engagement toggled", toggleResult{StartupID: id, Type: engType, On: on})
}

// @Summary      List own engagements
// @Tags         engagements
// @Produce      json
// @Success      200  {object}  response.APIResponse{data=[]Engagement} "Engagements listed"
// @Router       /me/engagements [get]
func (h *EngagementHandler) listMine(c *gin.Context) {
	engagements, err := h.service.ListByUser(c.Request.Context(), auth.Viewer(c))
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, err.Error())
		return
	}

	response.OK(c, "engagements listed", engagements)
}
