package app

import (
	"errors"
	"runtime/debug"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"productsapi/internal/handlers"
	"productsapi/internal/middleware"
	"productsapi/internal/repositories"
	"productsapi/internal/services"
	"productsapi/internal/validation"
)

// Name is reported as the Fiber app name.
const Name = "Products API"

// Options configure New.
type Options struct {
	Repo   repositories.ProductRepository
	Events services.EventPublisher // optional
	Log    zerolog.Logger
}

// New builds the Fiber app with middleware, the health check and the product
// routes.
func New(opts Options) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               Name,
		DisableStartupMessage: true,
		ErrorHandler:          ErrorHandler(opts.Log),
	})

	// Outermost, so recovered panics still get a request line.
	app.Use(middleware.RequestLogger(opts.Log))
	app.Use(recover.New(recover.Config{
		EnableStackTrace:  true,
		StackTraceHandler: func(c *fiber.Ctx, e interface{}) {
			opts.Log.Error().
				Interface("panic", e).
				Str("path", c.Path()).
				Bytes("stack", debug.Stack()).
				Msg("recovered from panic")
		},
	}))
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(cors.New())

	productService := services.NewProductService(opts.Repo, opts.Events, opts.Log)
	productHandler := handlers.NewProductHandler(productService, validation.New())

	app.Get("/", handlers.HandleHealth)
	productHandler.RegisterRoutes(app)

	return app
}

// ErrorHandler renders errors that reached Fiber as {"detail": ...}.
// A *fiber.Error keeps its status. Anything else is logged and becomes a 500.
func ErrorHandler(log zerolog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(fiber.Map{"detail": utils.StatusMessage(fe.Code)})
		}
		log.Error().Err(err).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Msg("unhandled error")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"detail": "Internal Server Error",
		})
	}
}
