package handler

import (
	"net/http"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"ideahub/internal/auth"
	"ideahub/internal/model"
)

// caller is the authenticated identity extracted from the request's JWT.
type caller struct {
	ID    uuid.UUID
	Email string
	Role  model.UserRole
}

// currentCaller extracts the authenticated caller from the echo context. The
// JWT middleware has already verified the signature at this point.
func currentCaller(c echo.Context) (*caller, error) {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	claims, ok := token.Claims.(*auth.Claims)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid token claims")
	}
	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid user id in token")
	}
	return &caller{ID: id, Email: claims.Email, Role: claims.Role}, nil
}
