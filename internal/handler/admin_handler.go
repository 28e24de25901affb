package handler

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"ideahub/internal/errors"
	"ideahub/internal/model"
	"ideahub/internal/service"
)

// AdminHandler handles the admin surface: review decisions, the moderation
// queue and user management.
type AdminHandler struct {
	ideaService   service.IdeaService
	reviewService service.ReviewService
	userService   service.UserService
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(ideaService service.IdeaService, reviewService service.ReviewService, userService service.UserService) *AdminHandler {
	return &AdminHandler{
		ideaService:   ideaService,
		reviewService: reviewService,
		userService:   userService,
	}
}

// ReviewRequest represents a moderation decision body.
type ReviewRequest struct {
	Comment string `json:"comment" validate:"required,min=1"`
}

// UpdateUserRequest represents an admin-side user patch.
type UpdateUserRequest struct {
	Name  *string `json:"name" validate:"omitempty,min=2"`
	Email *string `json:"email" validate:"omitempty,email"`
	Role  *string `json:"role" validate:"omitempty,oneof=founder admin"`
}

// ListIdeas godoc
// @Summary List all ideas, filtered and paginated
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param status query string false "Status filter, single value or comma-separated"
// @Param tech query string false "Tech stack tag substring filter"
// @Param search query string false "Title substring filter"
// @Param page query int false "Page number (default 1)"
// @Param limit query int false "Page size (default 10)"
// @Success 200 {object} repository.IdeaPage
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/ideas [get]
func (h *AdminHandler) ListIdeas(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.ideaService.ListAll(c.Request().Context(), listOptions(c), page, limit)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, result)
}

// Approve godoc
// @Summary Approve a pending idea
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Idea ID"
// @Param request body ReviewRequest true "Decision comment"
// @Success 200 {object} model.Idea
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /admin/ideas/{id}/approve [put]
func (h *AdminHandler) Approve(c echo.Context) error {
	return h.decide(c, model.ReviewActionApproved)
}

// Reject godoc
// @Summary Reject a pending idea
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Idea ID"
// @Param request body ReviewRequest true "Decision comment"
// @Success 200 {object} model.Idea
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /admin/ideas/{id}/reject [put]
func (h *AdminHandler) Reject(c echo.Context) error {
	return h.decide(c, model.ReviewActionRejected)
}

func (h *AdminHandler) decide(c echo.Context, action model.ReviewAction) error {
	caller, err := currentCaller(c)
	if err != nil {
		return err
	}
	id, err := parseIdeaID(c)
	if err != nil {
		return err
	}

	var req ReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	idea, err := h.reviewService.Decide(c.Request().Context(), id, caller.ID, action, req.Comment)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, idea)
}

// Reviews godoc
// @Summary List the moderation decision history
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.ReviewLog
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/reviews [get]
func (h *AdminHandler) Reviews(c echo.Context) error {
	logs, err := h.reviewService.History(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, logs)
}

// ListUsers godoc
// @Summary List all users
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.User
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.userService.List(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, users)
}

// UpdateUser godoc
// @Summary Update a user's name, email or role
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param request body UpdateUserRequest true "User patch"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /admin/users/{id} [put]
func (h *AdminHandler) UpdateUser(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid user ID",
			Code:  "INVALID_UUID",
		})
	}

	var req UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	patch := service.UserPatch{Name: req.Name, Email: req.Email}
	if req.Role != nil {
		role := model.UserRole(*req.Role)
		patch.Role = &role
	}

	user, err := h.userService.UpdateUser(c.Request().Context(), id, patch)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, user)
}

// DeleteUser godoc
// @Summary Delete a user and their ideas
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid user ID",
			Code:  "INVALID_UUID",
		})
	}

	if err := h.userService.Delete(c.Request().Context(), id); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "user deleted successfully",
	})
}
