package http

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"

	"github.com/jhoicas/gst-invoice-api/internal/application/dto"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ServiceName  string
	InvoiceUC    InvoiceGenerator
	Logger       zerolog.Logger
	BodyLimit    int
	AllowOrigins []string
	RateLimiter  *IPRateLimiter // nil = sin límite
}

// NewApp crea la aplicación Fiber con el middleware común y las rutas registradas.
func NewApp(deps RouterDeps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      deps.ServiceName,
		BodyLimit:    deps.BodyLimit,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: errorHandler,
	})
	app.Use(recover.New())
	app.Use(RequestLogger(deps.Logger))
	app.Use(cors.New(cors.Config{
		AllowOrigins:  joinOrigins(deps.AllowOrigins),
		AllowMethods:  "GET,POST,OPTIONS",
		AllowHeaders:  "Origin,Content-Type,Accept," + HeaderRequestID,
		ExposeHeaders: "Content-Disposition,X-Invoice-Total," + HeaderRequestID,
	}))
	Router(app, deps)
	return app
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", HealthHandler(deps.ServiceName, nil))

	api := app.Group("/api")
	if deps.RateLimiter != nil {
		api.Use(deps.RateLimiter.Middleware())
	}

	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC, deps.Logger)
	api.Post("/generate-invoice", invoiceHandler.Generate)
	api.Post("/invoice-totals", invoiceHandler.Totals)
}

// errorHandler respuestas de error con el formato dto.ErrorResponse.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	body := dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"}
	switch code {
	case fiber.StatusNotFound:
		body = dto.ErrorResponse{Code: "NOT_FOUND", Message: "ruta no encontrada"}
	case fiber.StatusMethodNotAllowed:
		body = dto.ErrorResponse{Code: "METHOD_NOT_ALLOWED", Message: "método no permitido"}
	case fiber.StatusRequestEntityTooLarge:
		body = dto.ErrorResponse{Code: "BODY_TOO_LARGE", Message: "cuerpo demasiado grande"}
	}
	return c.Status(code).JSON(body)
}

func joinOrigins(origins []string) string {
	if len(origins) == 0 {
		return "*"
	}
	return strings.Join(origins, ",")
}
