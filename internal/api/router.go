package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/userhub/user-directory/internal/api/handler"
	"github.com/userhub/user-directory/internal/api/middleware"
	"github.com/userhub/user-directory/internal/core/ports"
)

// NewRouter builds and returns the Echo instance with all routes registered.
//
// Every user route sits behind the optional-identity middleware: anonymous
// requests pass through, presented tokens must verify. What an individual
// caller may see of a record is decided by the field gate at serialization.
func NewRouter(
	users ports.UserService,
	issuer ports.TokenIssuer,
	denylist middleware.TokenDenylist,
	db *mongo.Database,
	rdb *redis.Client,
	log zerolog.Logger,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("userdir"))

	identity := middleware.Identity(issuer, denylist)
	userHandler := handler.NewUserHandler(users)

	// --- Auth routes ---
	e.POST("/auth/signin", userHandler.SignIn)
	e.POST("/auth/signup", userHandler.SignUp, identity)

	// --- User routes ---
	e.GET("/users", userHandler.GetUsers, identity)
	e.GET("/users/me", userHandler.GetCurrentUser, identity)
	e.PUT("/users", userHandler.ModifyUser, identity)
	e.PATCH("/users/:id/enabled", userHandler.EnabledUser, identity)
	e.DELETE("/users/:id", userHandler.DeleteUser, identity)

	// --- Operational endpoints ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
