package users

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"launchrate/pkg/auth"
	"launchrate/pkg/response"
)

type UserHandler struct {
	service UserService
}

func NewUserHandler(service UserService) *UserHandler {
	return &UserHandler{service: service}
}

func (h *UserHandler) RegisterRoutes(router *gin.Engine) {
	router.POST("/auth/register", h.register)
	router.POST("/auth/login", h.login)
	router.GET("/users/:uuid", h.getUserByUUID)
	router.PUT("/users/:uuid", auth.Required(), h.updateUser)
	router.DELETE("/users/:uuid", auth.Required(), h.deleteUser)
}

type registerRequest struct {
	Name          string `json:"name" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	Password      string `json:"password" binding:"required,min=8"`
	ProfilePicURL string `json:"profile_pic_url"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type updateUserRequest struct {
	Name          string `json:"name" binding:"required"`
	ProfilePicURL string `json:"profile_pic_url"`
}

// @Summary      Register a new user
// @Description  Creates an account and returns the profile plus a bearer token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body registerRequest true "Registration request"
// @Success      201  {object}  response.APIResponse{data=AuthResult} "User registered"
// @Failure      400  {object}  response.APIResponse "Invalid request payload"
// @Failure      409  {object}  response.APIResponse "Email already in use"
// @Router       /auth/register [post]
func (h *UserHandler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	result, err := h.service.Register(c.Request.Context(), req.Name, req.Email, req.Password, req.ProfilePicURL)
	if err != nil {
		if err.Error() == "user exists with that email" {
			response.Fail(c, http.StatusConflict, err.Error())
			return
		}
		response.Fail(c, http.StatusInternalServerError, err.Error())
		return
	}

	response.SendAPIResponse(c, http.StatusCreated, true, "user registered", result)
}

// @Summary      Log in
// @Description  Verifies credentials and returns the profile plus a bearer token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body loginRequest true "Login request"
// @Success      200  {object}  response.APIResponse{data=AuthResult} "Logged in"
// @Failure      401  {object}  response.APIResponse "Invalid credentials"
// @Router       /auth/login [post]
func (h *UserHandler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	result, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if err == ErrInvalidCredentials {
			response.Fail(c, http.StatusUnauthorized, "invalid credentials")
			return
		}
		response.Fail(c, http.StatusInternalServerError, err.Error())
		return
	}

	response.OK(c, "logged in", result)
}

// @Summary      Get user by UUID
// @Tags         users
// @Produce      json
// @Param        uuid path string true "User UUID"
// @Success      200  {object}  response.APIResponse{data=User} "User fetched"
// @Failure      404  {object}  response.APIResponse "User not found"
// @Router       /users/{uuid} [get]
func (h *UserHandler) getUserByUUID(c *gin.Context) {
	u, err := h.service.GetUserByUUID(c.Request.Context(), c.Param("uuid"))
	if err != nil {
		if err == ErrUserNotFound {
			response.Fail(c, http.StatusNotFound, "user not found")
			return
		}
		response.Fail(c, http.StatusInternalServerError, err.Error())
		return
	}

	response.OK(c, "user fetched", u)
}

// @Summary      Update own profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        uuid path string true "User UUID"
// @Param        request body updateUserRequest true "Profile update request"
// @Success      200  {object}  response.APIResponse{data=User} "User updated"
// @Failure      403  {object}  response.APIResponse "Not the profile owner"
// @Failure      404  {object}  response.APIResponse "User not found"
// @Router       /users/{uuid} [put]
func (h *UserHandler) updateUser(c *gin.Context) {
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	u, err := h.service.UpdateUser(c.Request.Context(), auth.Viewer(c), c.Param("uuid"), User{
		Name:          req.Name,
		ProfilePicURL: req.ProfilePicURL,
	})
	if err != nil {
		if err == ErrUserNotFound {
			response.Fail(c, http.StatusNotFound, "user not found")
			return
		}
		if err.Error() == "cannot update another user's profile" {
			response.Fail(c, http.StatusForbidden, err.Error())
			return
		}
		response.Fail(c, http.StatusInternalServerError, err.Error())
		return
	}

	response.OK(c, "user updated", u)
}

// @Summary      Delete own profile
// @Tags         users
// @Produce      json
// @Param        uuid path string true "User UUID"
// @Success      200  {object}  response.APIResponse "User deleted"
// @Failure      403  {object}  response.APIResponse "Not the profile owner"
// @Failure      404  {object}  response.APIResponse "User not found"
// @Router       /users/{uuid} [delete]
func (h *UserHandler) deleteUser(c *gin.Context) {
	err := h.service.DeleteUser(c.Request.Context(), auth.Viewer(c), c.Param("uuid"))
	if err != nil {
		if err == ErrUserNotFound {
			response.Fail(c, http.StatusNotFound, "user not found")
			return
		}
		if err.Error() == "cannot delete another user's profile" {
			response.Fail(c, http.StatusForbidden, err.Error())
			return
		}
		response.Fail(c, http.StatusInternalServerError, err.Error())
		return
	}

	response.OK(c, "user deleted", nil)
}
