package invites

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"launchrate/pkg/access"
	"launchrate/pkg/auth"
	"launchrate/pkg/response"
	"launchrate/pkg/users"
)

type InviteHandler struct {
	service InviteService
}

func NewInviteHandler(service InviteService) *InviteHandler {
	return &InviteHandler{service: service}
}

func (h *InviteHandler) RegisterRoutes(router *gin.Engine) {
	router.POST("/startups/:id/invites", auth.Required(), h.issueInvite)
	router.POST("/invites/redeem", auth.Required(), h.redeemInvite)
}

type issueInviteRequest struct {
	Email string `json:"email" binding:"required,email"`
	Role  string `json:"role" binding:"required"`
}

type redeemInviteRequest struct {
	Code string `json:"code" binding:"required"`
}

// @Summary      Issue an invite
// @Description  Emails an access invite code for a startup; owner only, rate limited
// @Tags         invites
// @Accept       json
// @Produce      json
// @Param        id path int true "Startup ID"
// @Param        request body issueInviteRequest true "Invite request"
// @Success      201  {object}  response.APIResponse{data=Invite} "Invite sent"
// @Failure      400  {object}  response.APIResponse "Invalid role"
// @Failure      403  {object}  response.APIResponse "Not the owner"
// @Failure      404  {object}  response.APIResponse "Startup not found"
// @Failure      429  {object}  response.APIResponse "Too many invites"
// @Router       /startups/{id}/invites [post]
func (h *InviteHandler) issueInvite(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Fail(c, http.StatusBadRequest, "invalid startup id")
		return
	}

	var req issueInviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	inv, err := h.service.IssueInvite(c.Request.Context(), auth.Viewer(c), id, req.Email, access.Role(req.Role))
	if err != nil {
		switch {
		case errors.Is(err, access.ErrInvalidRole):
			response.Fail(c, http.StatusBadRequest, "invalid grant role")
		case errors.Is(err, access.ErrNotOwner):
			response.Fail(c, http.StatusForbidden, "only the owner may issue invites")
		case errors.Is(err, access.ErrStartupNotFound):
			response.Fail(c, http.StatusNotFound, "startup not found")
		case errors.Is(err, ErrTooManyInvites):
			response.Fail(c, http.StatusTooManyRequests, err.Error())
		default:
			response.Fail(c, http.StatusInternalServerError, err.Error())
		}
		return
	}

	response.SendAPIResponse(c, http.StatusCreated, true, "invite sent", inv)
}

// @Summary      Redeem an invite
// @Description  Exchanges a valid invite code for an access grant on the startup
// @Tags         invites
// @Accept       json
// @Produce      json
// @Param        request body redeemInviteRequest true "Redeem request"
// @Success      200  {object}  response.APIResponse{data=access.Grant} "Invite redeemed"
// @Failure      400  {object}  response.APIResponse "Expired or mismatched invite"
// @Failure      404  {object}  response.APIResponse "Invite not found"
// @Router       /invites/redeem [post]
func (h *InviteHandler) redeemInvite(c *gin.Context) {
	var req redeemInviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	g, err := h.service.RedeemInvite(c.Request.Context(), auth.Viewer(c), req.Code)
	if err != nil {
		switch {
		case errors.Is(err, ErrInviteNotFound):
			response.Fail(c, http.StatusNotFound, "invite not found or already used")
		case errors.Is(err, ErrInviteExpired), errors.Is(err, ErrInviteWrongEmail):
			response.Fail(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, users.ErrUserNotFound):
			response.Fail(c, http.StatusNotFound, "user not found")
		default:
			response.Fail(c, http.StatusInternalServerError, err.Error())
		}
		return
	}

	response.OK(c, "invite redeemed", g)
}
