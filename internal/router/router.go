package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v4"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"ideahub/internal/auth"
	"ideahub/internal/config"
	"ideahub/internal/errors"
	"ideahub/internal/handler"
	"ideahub/internal/model"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	profileHandler *handler.ProfileHandler,
	ideaHandler *handler.IdeaHandler,
	adminHandler *handler.AdminHandler,
	analyticsHandler *handler.AnalyticsHandler,
	wsHandler *handler.WSHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.POST("/auth/logout", authHandler.Logout)

	// Websocket subscription checks its own token because browsers cannot
	// set headers on websocket dials.
	api.GET("/ws", wsHandler.Connect)

	// Secured routes (require JWT authentication)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
	}))

	// Profile routes
	secured.GET("/me", profileHandler.Me)
	secured.PUT("/me", profileHandler.UpdateProfile)
	secured.PUT("/me/password", profileHandler.ChangePassword)
	secured.DELETE("/me", profileHandler.DeleteAccount)

	// Idea routes (founders and admins)
	ideas := secured.Group("/ideas", RequireRole(model.RoleFounder, model.RoleAdmin))
	ideas.POST("", ideaHandler.Create)
	ideas.GET("", ideaHandler.List)
	ideas.GET("/stats", ideaHandler.Stats)
	ideas.GET("/:id", ideaHandler.Get)
	ideas.PUT("/:id", ideaHandler.Update)
	ideas.DELETE("/:id", ideaHandler.Delete)

	// Admin routes
	admin := secured.Group("/admin", RequireRole(model.RoleAdmin))
	admin.GET("/ideas", adminHandler.ListIdeas)
	admin.PUT("/ideas/:id/approve", adminHandler.Approve)
	admin.PUT("/ideas/:id/reject", adminHandler.Reject)
	admin.GET("/reviews", adminHandler.Reviews)
	admin.GET("/users", adminHandler.ListUsers)
	admin.PUT("/users/:id", adminHandler.UpdateUser)
	admin.DELETE("/users/:id", adminHandler.DeleteUser)
	admin.GET("/analytics/stats", analyticsHandler.SystemStats)
	admin.GET("/analytics/growth", analyticsHandler.Growth)
}

// RequireRole rejects callers whose token role is not in the allowed set.
func RequireRole(roles ...model.UserRole) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			claims, ok := token.Claims.(*auth.Claims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token claims")
			}
			for _, role := range roles {
				if claims.Role == role {
					return next(c)
				}
			}
			return echo.NewHTTPError(http.StatusForbidden, errors.ErrorResponse{
				Error: "forbidden",
				Code:  "FORBIDDEN",
			})
		}
	}
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
