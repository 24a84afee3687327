package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"recipebox/internal/config"
	"recipebox/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	userHandler *handler.UserHandler,
	recipeHandler *handler.RecipeHandler,
	tagHandler *handler.TagHandler,
	ingredientHandler *handler.IngredientHandler,
) {
	// Clients following the documented URLs send trailing slashes.
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)
	e.Static("/media", cfg.MediaRoot)

	api := e.Group("/api")

	api.GET("/health-check", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"healthy": "true"})
	})

	// Public routes
	api.POST("/users/create", userHandler.Register)
	api.POST("/users/token", userHandler.Token)
	api.POST("/users/token/refresh", userHandler.Refresh)
	api.POST("/users/logout", userHandler.Logout)

	// Secured routes (require JWT authentication)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
	}))

	secured.GET("/users/me", userHandler.Me)
	secured.PATCH("/users/me", userHandler.UpdateMe)

	secured.GET("/recipes", recipeHandler.List)
	secured.POST("/recipes", recipeHandler.Create)
	secured.GET("/recipes/:id", recipeHandler.Get)
	secured.PATCH("/recipes/:id", recipeHandler.Patch)
	secured.PUT("/recipes/:id", recipeHandler.Put)
	secured.DELETE("/recipes/:id", recipeHandler.Delete)
	secured.POST("/recipes/:id/upload-image", recipeHandler.UploadImage)

	secured.GET("/tags", tagHandler.List)
	secured.POST("/tags", tagHandler.Create)
	secured.PATCH("/tags/:id", tagHandler.Patch)
	secured.DELETE("/tags/:id", tagHandler.Delete)

	secured.GET("/ingredients", ingredientHandler.List)
	secured.POST("/ingredients", ingredientHandler.Create)
	secured.PATCH("/ingredients/:id", ingredientHandler.Patch)
	secured.DELETE("/ingredients/:id", ingredientHandler.Delete)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
