package access

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"launchrate/pkg/auth"
	"launchrate/pkg/response"
	"launchrate/pkg/users"
)

type GrantHandler struct {
	service GrantService
}

func NewGrantHandler(service GrantService) *GrantHandler {
	return &GrantHandler{service: service}
}

func (h *GrantHandler) RegisterRoutes(router *gin.Engine) {
	router.POST("/startups/:id/grants", auth.Required(), h.createGrant)
	router.GET("/startups/:id/grants", auth.Required(), h.listGrants)
	router.PUT("/startups/:id/grants/:uuid", auth.Required(), h.updateGrant)
	router.DELETE("/startups/:id/grants/:uuid", auth.Required(), h.revokeGrant)
}

type createGrantRequest struct {
	UserUUID string `json:"user_uuid" binding:"required"`
	Role     string `json:"role" binding:"required"`
}

type updateGrantRequest struct {
	Role string `json:"role" binding:"required"`
}

func startupIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Fail(c, http.StatusBadRequest, "invalid startup id")
		return 0, false
	}
	return id, true
}

func sendGrantError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotOwner):
		response.Fail(c, http.StatusForbidden, "only the owner may manage access grants")
	case errors.Is(err, ErrStartupNotFound):
		response.Fail(c, http.StatusNotFound, "startup not found")
	case errors.Is(err, ErrGrantNotFound):
		response.Fail(c, http.StatusNotFound, "access grant not found")
	case errors.Is(err, ErrInvalidRole):
		response.Fail(c, http.StatusBadRequest, "invalid grant role")
	case errors.Is(err, users.ErrUserNotFound):
		response.Fail(c, http.StatusNotFound, "user not found")
	default:
		response.Fail(c, http.StatusInternalServerError, err.Error())
	}
}

// @Summary      Grant access
// @Description  Gives a user viewer, commenter or editor access to a non-public startup; owner only
// @Tags         access
// @Accept       json
// @Produce      json
// @Param        id path int true "Startup ID"
// @Param        request body createGrantRequest true "Grant request"
// @Success      201  {object}  response.APIResponse{data=Grant} "Grant created"
// @Failure      400  {object}  response.APIResponse "Invalid role"
// @Failure      403  {object}  response.APIResponse "Not the owner"
// @Failure      404  {object}  response.APIResponse "Startup or user not found"
// @Router       /startups/{id}/grants [post]
func (h *GrantHandler) createGrant(c *gin.Context) {
	id, ok := startupIDParam(c)
	if !ok {
		return
	}

	var req createGrantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	g, err := h.service.Grant(c.Request.Context(), auth.Viewer(c), id, req.UserUUID, Role(req.Role))
	if err != nil {
		sendGrantError(c, err)
		return
	}

	response.SendAPIResponse(c, http.StatusCreated, true, "grant created", g)
}

// @Summary      List grants
// @Description  Lists a startup's access grants; owner only
// @Tags         access
// @Produce      json
// @Param        id path int true "Startup ID"
// @Success      200  {object}  response.APIResponse{data=[]Grant} "Grants listed"
// @Failure      403  {object}  response.APIResponse "Not the owner"
// @Failure      404  {object}  response.APIResponse "Startup not found"
// @Router       /startups/{id}/grants [get]
func (h *GrantHandler) listGrants(c *gin.Context) {
	id, ok := startupIDParam(c)
	if !ok {
		return
	}

	grants, err := h.service.ListGrants(c.Request.Context(), auth.Viewer(c), id)
	if err != nil {
		sendGrantError(c, err)
		return
	}

	response.OK(c, "grants listed", grants)
}

// @Summary      Update a grant's role
// @Tags         access
// @Accept       json
// @Produce      json
// @Param        id path int true "Startup ID"
// @Param        uuid path string true "Grantee UUID"
// @Param        request body updateGrantRequest true "Role update"
// @Success      200  {object}  response.APIResponse{data=Grant} "Grant updated"
// @Failure      403  {object}  response.APIResponse "Not the owner"
// @Failure      404  {object}  response.APIResponse "Startup not found"
// @Router       /startups/{id}/grants/{uuid} [put]
func (h *GrantHandler) updateGrant(c *gin.Context) {
	id, ok := startupIDParam(c)
	if !ok {
		return
	}

	var req updateGrantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	g, err := h.service.UpdateRole(c.Request.Context(), auth.Viewer(c), id, c.Param("uuid"), Role(req.Role))
	if err != nil {
		sendGrantError(c, err)
		return
	}

	response.OK(c, "grant updated", g)
}

// @Summary      Revoke a grant
// @Tags         access
// @Produce      json
// @Param        id path int true "Startup ID"
// @Param        uuid path string true "Grantee UUID"
// @Success      200  {object}  response.APIResponse "Grant revoked"
// @Failure      403  {object}  response.APIResponse "Not the owner"
// @Failure      404  {object}  response.APIResponse "Grant not found"
// @Router       /startups/{id}/grants/{uuid} [delete]
func (h *GrantHandler) revokeGrant(c *gin.Context) {
	id, ok := startupIDParam(c)
	if !ok {
		return
	}

	if err := h.service.Revoke(c.Request.Context(), auth.Viewer(c), id, c.Param("uuid")); err != nil {
		sendGrantError(c, err)
		return
	}

	response.OK(c, "grant revoked", nil)
}
