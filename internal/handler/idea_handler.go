package handler

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"ideahub/internal/errors"
	"ideahub/internal/model"
	"ideahub/internal/service"
)

// IdeaHandler handles idea submission and the founder-facing query surface.
type IdeaHandler struct {
	ideaService service.IdeaService
}

// NewIdeaHandler creates a new idea handler.
func NewIdeaHandler(ideaService service.IdeaService) *IdeaHandler {
	return &IdeaHandler{ideaService: ideaService}
}

// CreateIdeaRequest represents an idea submission.
type CreateIdeaRequest struct {
	Title            string   `json:"title" validate:"required,min=5"`
	ProblemStatement string   `json:"problem_statement" validate:"required,min=20"`
	Solution         string   `json:"solution" validate:"required,min=20"`
	TargetMarket     string   `json:"target_market" validate:"required,min=5"`
	TechStack        []string `json:"tech_stack" validate:"required,min=1,dive,required"`
}

// UpdateIdeaRequest represents a partial idea update. Omitted fields stay
// unchanged.
type UpdateIdeaRequest struct {
	Title            *string  `json:"title" validate:"omitempty,min=5"`
	ProblemStatement *string  `json:"problem_statement" validate:"omitempty,min=20"`
	Solution         *string  `json:"solution" validate:"omitempty,min=20"`
	TargetMarket     *string  `json:"target_market" validate:"omitempty,min=5"`
	TechStack        []string `json:"tech_stack" validate:"omitempty,min=1,dive,required"`
}

// listOptions parses the shared listing query parameters.
func listOptions(c echo.Context) service.ListOptions {
	opts := service.ListOptions{
		Search: c.QueryParam("search"),
		Tech:   c.QueryParam("tech"),
		SortBy: c.QueryParam("sortBy"),
		Order:  c.QueryParam("order"),
	}
	if status := c.QueryParam("status"); status != "" {
		for _, s := range strings.Split(status, ",") {
			if s = strings.TrimSpace(s); s != "" {
				opts.Statuses = append(opts.Statuses, model.IdeaStatus(s))
			}
		}
	}
	return opts
}

func parseIdeaID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid idea ID",
			Code:  "INVALID_UUID",
		})
	}
	return id, nil
}

// Create godoc
// @Summary Submit a new idea
// @Tags ideas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateIdeaRequest true "Idea fields"
// @Success 201 {object} model.Idea
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /ideas [post]
func (h *IdeaHandler) Create(c echo.Context) error {
	caller, err := currentCaller(c)
	if err != nil {
		return err
	}

	var req CreateIdeaRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	idea, err := h.ideaService.Submit(c.Request().Context(), caller.ID, service.SubmitIdeaInput{
		Title:            req.Title,
		ProblemStatement: req.ProblemStatement,
		Solution:         req.Solution,
		TargetMarket:     req.TargetMarket,
		TechStack:        req.TechStack,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, idea)
}

// List godoc
// @Summary List own ideas (admins see all)
// @Tags ideas
// @Produce json
// @Security BearerAuth
// @Param status query string false "Status filter, single value or comma-separated"
// @Param search query string false "Title substring filter"
// @Param sortBy query string false "Sort column"
// @Param order query string false "asc or desc"
// @Success 200 {array} model.Idea
// @Failure 401 {object} errors.ErrorResponse
// @Router /ideas [get]
func (h *IdeaHandler) List(c echo.Context) error {
	caller, err := currentCaller(c)
	if err != nil {
		return err
	}

	ideas, err := h.ideaService.ListFor(c.Request().Context(), caller.ID, caller.Role, listOptions(c))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, ideas)
}

// Stats godoc
// @Summary Get the caller's idea counts by status
// @Tags ideas
// @Produce json
// @Security BearerAuth
// @Success 200 {object} repository.StatusCounts
// @Failure 401 {object} errors.ErrorResponse
// @Router /ideas/stats [get]
func (h *IdeaHandler) Stats(c echo.Context) error {
	caller, err := currentCaller(c)
	if err != nil {
		return err
	}

	stats, err := h.ideaService.StatsFor(c.Request().Context(), caller.ID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, stats)
}

// Get godoc
// @Summary Get one idea by id
// @Tags ideas
// @Produce json
// @Security BearerAuth
// @Param id path string true "Idea ID"
// @Success 200 {object} model.Idea
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /ideas/{id} [get]
func (h *IdeaHandler) Get(c echo.Context) error {
	caller, err := currentCaller(c)
	if err != nil {
		return err
	}
	id, err := parseIdeaID(c)
	if err != nil {
		return err
	}

	idea, err := h.ideaService.GetByID(c.Request().Context(), id, caller.ID, caller.Role)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, idea)
}

// Update godoc
// @Summary Update an own pending idea
// @Tags ideas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Idea ID"
// @Param request body UpdateIdeaRequest true "Fields to change"
// @Success 200 {object} model.Idea
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /ideas/{id} [put]
func (h *IdeaHandler) Update(c echo.Context) error {
	caller, err := currentCaller(c)
	if err != nil {
		return err
	}
	id, err := parseIdeaID(c)
	if err != nil {
		return err
	}

	var req UpdateIdeaRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	idea, err := h.ideaService.UpdateOwned(c.Request().Context(), id, caller.ID, service.IdeaPatch{
		Title:            req.Title,
		ProblemStatement: req.ProblemStatement,
		Solution:         req.Solution,
		TargetMarket:     req.TargetMarket,
		TechStack:        req.TechStack,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, idea)
}

// Delete godoc
// @Summary Delete an own pending idea
// @Tags ideas
// @Produce json
// @Security BearerAuth
// @Param id path string true "Idea ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /ideas/{id} [delete]
func (h *IdeaHandler) Delete(c echo.Context) error {
	caller, err := currentCaller(c)
	if err != nil {
		return err
	}
	id, err := parseIdeaID(c)
	if err != nil {
		return err
	}

	if err := h.ideaService.DeleteOwned(c.Request().Context(), id, caller.ID); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "idea deleted successfully",
	})
}
