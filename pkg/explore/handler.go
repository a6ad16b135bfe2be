package explore

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"launchrate/pkg/auth"
	"launchrate/pkg/response"
)

type ExploreHandler struct {
	service ExploreService
}

func NewExploreHandler(service ExploreService) *ExploreHandler {
	return &ExploreHandler{service: service}
}

func (h *ExploreHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/explore", h.explore)
	router.GET("/dashboard", auth.Required(), h.dashboard)
	router.GET("/me/saved", auth.Required(), h.saved)
}

func pageParams(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}

// @Summary      Explore startups
// @Description  Filtered, sorted, paginated startup listing; rating data is scoped to the caller
// @Tags         explore
// @Produce      json
// @Param        search        query string  false "Free-text search over name, summary, description"
// @Param        tags          query string  false "Comma-separated tags (any match)"
// @Param        visibility    query string  false "Comma-separated visibility tiers"
// @Param        status        query string  false "Comma-separated status labels"
// @Param        min_rating    query number  false "Lower rating bound" default(1)
// @Param        max_rating    query number  false "Upper rating bound" default(5)
// @Param        sort          query string  false "Sort key" Enums(name, rating, created_at)
// @Param        order         query string  false "Sort direction" Enums(asc, desc)
// @Param        active_first  query bool    false "Put Active startups first"
// @Param        page          query int     false "Page number" default(1)
// @Param        limit         query int     false "Items per page" default(10)
// @Success      200  {object}  response.APIResponse{data=EnrichedList} "Startups listed"
// @Failure      400  {object}  response.APIResponse "Unrecognized filter or sort parameter"
// @Router       /explore [get]
func (h *ExploreHandler) explore(c *gin.Context) {
	q, err := ParseQuery(c.Request.URL.Query())
	if err != nil {
		response.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	page, limit := pageParams(c)
	list, err := h.service.Explore(c.Request.Context(), auth.Viewer(c), q, page, limit)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, err.Error())
		return
	}

	response.OK(c, "startups listed", list)
}

// @Summary      Owner dashboard
// @Description  The caller's own startups, filtered and sorted like explore
// @Tags         explore
// @Produce      json
// @Success      200  {object}  response.APIResponse{data=EnrichedList} "Startups listed"
// @Failure      400  {object}  response.APIResponse "Unrecognized filter or sort parameter"
// @Failure      401  {object}  response.APIResponse "Authentication required"
// @Router       /dashboard [get]
func (h *ExploreHandler) dashboard(c *gin.Context) {
	q, err := ParseQuery(c.Request.URL.Query())
	if err != nil {
		response.Fail(c, http.StatusBadRequest, err.Error())
		return
	}
	// The dashboard shows everything the owner has, rated or not.
	if c.Query("min_rating") == "" {
		q.MinRating = 0
	}

	page, limit := pageParams(c)
	list, err := h.service.Dashboard(c.Request.Context(), auth.Viewer(c), q, page, limit)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, err.Error())
		return
	}

	response.OK(c, "startups listed", list)
}

// @Summary      Saved list
// @Description  Startups the caller has saved, filtered and sorted like explore
// @Tags         explore
// @Produce      json
// @Success      200  {object}  response.APIResponse{data=EnrichedList} "Startups listed"
// @Failure      400  {object}  response.APIResponse "Unrecognized filter or sort parameter"
// @Failure      401  {object}  response.APIResponse "Authentication required"
// @Router       /me/saved [get]
func (h *ExploreHandler) saved(c *gin.Context) {
	q, err := ParseQuery(c.Request.URL.Query())
	if err != nil {
		response.Fail(c, http.StatusBadRequest, err.Error())
		return
	}
	if c.Query("min_rating") == "" {
		q.MinRating = 0
	}

	page, limit := pageParams(c)
	list, err := h.service.Saved(c.Request.Context(), auth.Viewer(c), q, page, limit)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, err.Error())
		return
	}

	response.OK(c, "startups listed", list)
}
