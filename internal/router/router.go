package router

import (
	"time"

	"eduquiz-web/internal/domain"
	"eduquiz-web/internal/handler"
	"eduquiz-web/internal/middleware"
	"eduquiz-web/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// Deps are the collaborators the router wires into handlers.
type Deps struct {
	Views   fiber.Views
	Store   domain.SessionStore
	Gate    *service.AuthGate
	Auth    service.AuthService
	Flow    *service.QuizFlow
	Handoff *service.HandoffCodec
	Session middleware.SessionConfig

	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	AllowOrigins string
}

// New builds the fiber app: public views, protected quiz views, logout and
// the health check.
func New(d Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		Views:                 d.Views,
		ErrorHandler:          middleware.ErrorHandler(),
		ReadTimeout:           d.ReadTimeout,
		WriteTimeout:          d.WriteTimeout,
		IdleTimeout:           d.IdleTimeout,
		BodyLimit:             1 * 1024 * 1024,
		DisableStartupMessage: true,
	})

	app.Use(middleware.RequestLogger())
	if d.AllowOrigins != "" {
		app.Use(cors.New(cors.Config{
			AllowOrigins: d.AllowOrigins,
			AllowMethods: "GET,POST,HEAD,OPTIONS",
			AllowHeaders: "Origin,Content-Type,Accept",
			MaxAge:       300,
		}))
	}
	app.Use(recover.New())

	pageHandler := handler.NewPageHandler(d.Store)
	authHandler := handler.NewAuthHandler(d.Auth)
	quizHandler := handler.NewQuizHandler(d.Flow, d.Handoff)

	app.Get("/healthz", pageHandler.Healthz)

	web := app.Group("", middleware.Session(d.Gate, d.Session))

	web.Get("/", pageHandler.Landing)
	web.Get("/signup", authHandler.ShowSignUp)
	web.Post("/signup", authHandler.SignUp)
	web.Get("/signin", authHandler.ShowSignIn)
	web.Post("/signin", authHandler.SignIn)
	web.Post("/logout", authHandler.Logout)

	protected := middleware.Protected()
	web.Get("/input", protected, quizHandler.ShowInput)
	web.Post("/input", protected, quizHandler.Generate)
	web.Get("/quiz", protected, quizHandler.Missing)
	web.Post("/quiz", protected, quizHandler.Navigate)
	web.Get("/results", protected, quizHandler.Missing)
	web.Post("/results", protected, quizHandler.Submit)

	// unknown paths still get a session so the header renders correctly
	web.Use(func(c *fiber.Ctx) error {
		return fiber.ErrNotFound
	})

	return app
}
