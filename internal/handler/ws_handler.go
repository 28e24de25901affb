package handler

import (
	"net/http"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"ideahub/internal/auth"
	"ideahub/internal/notify"
)

// WSHandler upgrades clients onto the notification hub.
type WSHandler struct {
	hub        *notify.Hub
	jwtService *auth.JWTService
	upgrader   websocket.Upgrader
}

// NewWSHandler creates a new websocket handler.
func NewWSHandler(hub *notify.Hub, jwtService *auth.JWTService) *WSHandler {
	return &WSHandler{
		hub:        hub,
		jwtService: jwtService,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Browser clients connect from the SPA origin.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Connect godoc
// @Summary Subscribe to live idea events over websocket
// @Tags notifications
// @Param token query string false "Access token (alternative to the Authorization header)"
// @Success 101
// @Failure 401 {object} errors.ErrorResponse
// @Router /ws [get]
func (h *WSHandler) Connect(c echo.Context) error {
	// Browsers cannot set headers on websocket dials, so the token may come
	// in as a query parameter instead.
	token := c.QueryParam("token")
	if token == "" {
		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		token = strings.TrimPrefix(authHeader, "Bearer ")
	}
	if _, err := h.jwtService.ValidateToken(token); err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	// Serve blocks until the client disconnects.
	h.hub.Serve(conn)
	return nil
}
