package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/MyelinBots/userrank-go/internal/db/repositories/user"
	"github.com/MyelinBots/userrank-go/internal/services/userservice"
	"github.com/gin-gonic/gin"
)

// UserHandler translates HTTP requests into service calls and service
// results into status codes.
type UserHandler struct {
	users userservice.UserService
}

// UserRequest is the create/update payload. Score has no binding rule on
// purpose: positivity is a service concern with its own fixed message.
type UserRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Score int    `json:"score"`
}

func NewUserHandler(users userservice.UserService) *UserHandler {
	return &UserHandler{users: users}
}

func RegisterRoutes(router *gin.Engine, h *UserHandler) {
	users := router.Group("/users")
	{
		users.POST("", h.CreateUser)
		users.GET("", h.ListUsers)
		users.GET("/rank", h.RankedUsers)
		users.GET("/rank/:id", h.UserRank)
		users.GET("/:id", h.GetUser)
		users.PUT("/:id", h.UpdateUser)
		users.DELETE("/:id", h.DeleteUser)
	}
}

func (h *UserHandler) CreateUser(c *gin.Context) {
	var req UserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := ValidateRequest(req); validationErrors != nil {
		RespondWithValidationError(c, validationErrors)
		return
	}

	created, err := h.users.Create(c.Request.Context(), req.Name, req.Email, req.Score)
	if err != nil {
		var vErr *userservice.ValidationError
		if errors.As(err, &vErr) {
			RespondWithError(c, http.StatusBadRequest, vErr.Message)
			return
		}
		RespondWithError(c, http.StatusInternalServerError, "Failed to create user")
		return
	}

	c.Header("Location", fmt.Sprintf("/users/%d", created.ID))
	c.JSON(http.StatusCreated, created)
}

func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := ValidateRequest(req); validationErrors != nil {
		RespondWithValidationError(c, validationErrors)
		return
	}

	err := h.users.Update(c.Request.Context(), id, req.Name, req.Email, req.Score)
	if err != nil {
		var vErr *userservice.ValidationError
		switch {
		case errors.Is(err, userservice.ErrNotFound):
			RespondWithError(c, http.StatusNotFound, "User not found")
		case errors.As(err, &vErr):
			RespondWithError(c, http.StatusBadRequest, vErr.Message)
		default:
			RespondWithError(c, http.StatusInternalServerError, "Failed to update user")
		}
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	u, err := h.users.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, userservice.ErrNotFound) {
			RespondWithError(c, http.StatusNotFound, "User not found")
			return
		}
		RespondWithError(c, http.StatusInternalServerError, "Failed to get user")
		return
	}

	c.JSON(http.StatusOK, u)
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	err := h.users.Delete(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, userservice.ErrNotFound) {
			RespondWithError(c, http.StatusNotFound, "User not found")
			return
		}
		RespondWithError(c, http.StatusInternalServerError, "Failed to delete user")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	var minScore *int
	if raw := c.Query("minScore"); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil {
			RespondWithError(c, http.StatusBadRequest, "Invalid minScore")
			return
		}
		minScore = &value
	}

	sortByScore := false
	if raw := c.Query("sort"); raw != "" {
		value, err := strconv.ParseBool(raw)
		if err != nil {
			RespondWithError(c, http.StatusBadRequest, "Invalid sort")
			return
		}
		sortByScore = value
	}

	users, err := h.users.List(c.Request.Context(), minScore, sortByScore)
	if err != nil {
		RespondWithError(c, http.StatusInternalServerError, "Failed to list users")
		return
	}

	c.JSON(http.StatusOK, emptyIfNil(users))
}

func (h *UserHandler) RankedUsers(c *gin.Context) {
	users, err := h.users.RankedList(c.Request.Context())
	if err != nil {
		RespondWithError(c, http.StatusInternalServerError, "Failed to rank users")
		return
	}

	c.JSON(http.StatusOK, emptyIfNil(users))
}

func (h *UserHandler) UserRank(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	rank, err := h.users.RankOf(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, userservice.ErrNotFound) {
			RespondWithError(c, http.StatusNotFound, "User not found")
			return
		}
		RespondWithError(c, http.StatusInternalServerError, "Failed to rank user")
		return
	}

	// Bare integer body, matching the wire format of the rank endpoint.
	c.JSON(http.StatusOK, rank)
}

// parseID reads the :id path parameter. A non-numeric id can never match a
// record, so it reports not-found.
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		RespondWithError(c, http.StatusNotFound, "User not found")
		return 0, false
	}
	return uint(id), true
}

func emptyIfNil(users []*user.User) []*user.User {
	if users == nil {
		return []*user.User{}
	}
	return users
}
