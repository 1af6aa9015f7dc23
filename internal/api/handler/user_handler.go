package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskhive/task-system/internal/core/domain"
	"github.com/taskhive/task-system/internal/core/ports"
)

// PresenceReader reports which users currently hold open realtime connections.
type PresenceReader interface {
	Online(ctx context.Context) ([]string, error)
}

// UserHandler handles HTTP requests for the user directory.
type UserHandler struct {
	service  ports.UserService
	presence PresenceReader
}

func NewUserHandler(service ports.UserService, presence PresenceReader) *UserHandler {
	return &UserHandler{service: service, presence: presence}
}

func toUserResponses(users []*domain.User) []userResponse {
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return out
}

// List handles GET /api/users. Manager only.
//
// @Summary      List all users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  successResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, respondList(toUserResponses(users), len(users)))
}

// ListEmployees handles GET /api/users/employees. Manager only; used to
// populate assignee pickers.
//
// @Summary      List employees
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  successResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/users/employees [get]
func (h *UserHandler) ListEmployees(c echo.Context) error {
	users, err := h.service.ListEmployees(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, respondList(toUserResponses(users), len(users)))
}

// Online handles GET /api/users/online. Manager only.
//
// @Summary      List ids of users with an open realtime connection
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  successResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/users/online [get]
func (h *UserHandler) Online(c echo.Context) error {
	ids, err := h.presence.Online(c.Request().Context())
	if err != nil {
		return err
	}
	if ids == nil {
		ids = []string{}
	}
	return c.JSON(http.StatusOK, respondList(ids, len(ids)))
}

// Get handles GET /api/users/:id. Managers may read anyone, employees only
// themselves.
//
// @Summary      Get a user by id
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  successResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	user, err := h.service.Get(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, respond(toUserResponse(user)))
}
