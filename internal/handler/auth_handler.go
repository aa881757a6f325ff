package handler

import (
	"eduquiz-web/internal/domain"
	"eduquiz-web/internal/logger"
	"eduquiz-web/internal/middleware"
	"eduquiz-web/internal/service"
	"eduquiz-web/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const registeredMessage = "Registration successful! Please sign in to continue."

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// ShowSignUp renders the registration form.
func (h *AuthHandler) ShowSignUp(c *fiber.Ctx) error {
	return render(c, fiber.StatusOK, viewSignUp, fiber.Map{
		"Title": "Sign Up",
		"Form":  validation.SignUpForm{},
	})
}

// SignUp registers the account. A backend that returns a session logs the
// user straight in; otherwise the user is sent to sign in.
func (h *AuthHandler) SignUp(c *fiber.Ctx) error {
	var form validation.SignUpForm
	if err := c.BodyParser(&form); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid form submission")
	}

	res, err := h.authService.SignUp(c.UserContext(), middleware.SessionID(c), form)
	if err != nil {
		logUnexpected(c, "Sign-up failed", err)
		form.Password, form.ConfirmPassword = "", ""
		return render(c, middleware.StatusFor(err), viewSignUp, fiber.Map{
			"Title": "Sign Up",
			"Form":  form,
			"Error": domain.MessageOr(err, service.SignUpFallbackMessage),
		})
	}

	if res.LoggedIn {
		middleware.SetAuthState(c, res.State)
		return c.Redirect("/", fiber.StatusSeeOther)
	}
	return c.Redirect("/signin?registered=1", fiber.StatusSeeOther)
}

// ShowSignIn renders the sign-in form, with a notice after registration.
func (h *AuthHandler) ShowSignIn(c *fiber.Ctx) error {
	data := fiber.Map{
		"Title": "Sign In",
		"Form":  validation.SignInForm{},
	}
	if c.Query("registered") == "1" {
		data["Success"] = registeredMessage
	}
	return render(c, fiber.StatusOK, viewSignIn, data)
}

// SignIn authenticates against the backend and persists the session.
func (h *AuthHandler) SignIn(c *fiber.Ctx) error {
	var form validation.SignInForm
	if err := c.BodyParser(&form); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid form submission")
	}

	state, err := h.authService.SignIn(c.UserContext(), middleware.SessionID(c), form)
	if err != nil {
		logUnexpected(c, "Sign-in failed", err)
		form.Password = ""
		return render(c, middleware.StatusFor(err), viewSignIn, fiber.Map{
			"Title": "Sign In",
			"Form":  form,
			"Error": domain.MessageOr(err, service.SignInFallbackMessage),
		})
	}

	middleware.SetAuthState(c, state)
	return c.Redirect("/input", fiber.StatusSeeOther)
}

// Logout clears the session and returns to the sign-in view.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.authService.Logout(c.UserContext(), middleware.SessionID(c), middleware.AuthState(c)); err != nil {
		return err
	}
	middleware.SetAuthState(c, domain.Anonymous())
	return c.Redirect(middleware.SignInPath, fiber.StatusSeeOther)
}

// logUnexpected records failures the user only sees as a generic message.
func logUnexpected(c *fiber.Ctx, msg string, err error) {
	if domain.CodeOf(err) == domain.CodeInternal {
		logger.Get().Error(msg, zap.String("path", c.Path()), zap.Error(err))
	}
}
