package handler

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"eduquiz-web/internal/domain"
	"eduquiz-web/internal/middleware"
	"eduquiz-web/internal/service"
	"eduquiz-web/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// Form field names shared with the quiz view.
const (
	fieldState  = "state"
	fieldOption = "option"
	fieldAction = "action"
	fieldText   = "text"
)

// QuizHandler handles the Input -> Display -> Results views.
type QuizHandler struct {
	flow    *service.QuizFlow
	handoff *service.HandoffCodec
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(flow *service.QuizFlow, handoff *service.HandoffCodec) *QuizHandler {
	return &QuizHandler{flow: flow, handoff: handoff}
}

// ShowInput renders the text input view.
func (h *QuizHandler) ShowInput(c *fiber.Ctx) error {
	return h.renderInput(c, fiber.StatusOK, "", fiber.Map{})
}

// Generate validates the submitted text, requests a quiz and shows its first
// question.
func (h *QuizHandler) Generate(c *fiber.Ctx) error {
	text := c.FormValue(fieldText)

	attempt, err := h.flow.Generate(c.UserContext(), text)
	if err != nil {
		switch domain.CodeOf(err) {
		case domain.CodeValidation:
			return h.renderInput(c, middleware.StatusFor(err), text, fiber.Map{"ValidationError": err.Error()})
		case domain.CodeNavigationState:
			return err
		default:
			logUnexpected(c, "Quiz generation failed", err)
			return h.renderInput(c, middleware.StatusFor(err), text, fiber.Map{
				"Error": domain.MessageOr(err, service.GenerateFallbackMessage),
			})
		}
	}
	return h.renderQuiz(c, fiber.StatusOK, attempt, "")
}

// Navigate moves between questions of the quiz carried in the form.
func (h *QuizHandler) Navigate(c *fiber.Ctx) error {
	move := service.Move(strings.ToLower(c.FormValue(fieldAction, string(service.MoveNext))))
	if move == service.MoveSubmit {
		return h.Submit(c)
	}
	return h.step(c, move)
}

// Submit scores the attempt and renders the results view.
func (h *QuizHandler) Submit(c *fiber.Ctx) error {
	return h.step(c, service.MoveSubmit)
}

// Missing is used for GET /quiz and GET /results, which carry no state.
func (h *QuizHandler) Missing(c *fiber.Ctx) error {
	return domain.NewNavigationStateError("no quiz in progress", nil)
}

func (h *QuizHandler) step(c *fiber.Ctx, move service.Move) error {
	attempt, err := h.handoff.Decode(middleware.SessionID(c), c.FormValue(fieldState))
	if err != nil {
		return err
	}

	choice, err := parseOption(c.FormValue(fieldOption))
	if err != nil {
		return h.renderQuiz(c, middleware.StatusFor(err), attempt, domain.MessageOr(err, ""))
	}

	score, err := h.flow.Apply(attempt, choice, move)
	if err != nil {
		if domain.IsCode(err, domain.CodeNavigationState) {
			return err
		}
		return h.renderQuiz(c, middleware.StatusFor(err), attempt, domain.MessageOr(err, ""))
	}

	if score != nil {
		return render(c, fiber.StatusOK, viewResults, fiber.Map{
			"Title": "Results",
			"Score": score,
		})
	}
	return h.renderQuiz(c, fiber.StatusOK, attempt, "")
}

func (h *QuizHandler) renderInput(c *fiber.Ctx, status int, text string, extra fiber.Map) error {
	data := fiber.Map{
		"Title":     "Create a Quiz",
		"Text":      text,
		"Length":    utf8.RuneCountInString(text),
		"MinLength": validation.MinQuizTextLength,
		"MaxLength": validation.MaxQuizTextLength,
	}
	for k, v := range extra {
		data[k] = v
	}
	return render(c, status, viewInput, data)
}

func (h *QuizHandler) renderQuiz(c *fiber.Ctx, status int, attempt *domain.Attempt, message string) error {
	state, err := h.handoff.Encode(middleware.SessionID(c), attempt)
	if err != nil {
		return err
	}
	return render(c, status, viewQuiz, fiber.Map{
		"Title":    "Quiz",
		"State":    state,
		"Question": attempt.Question(),
		"Number":   attempt.Number(),
		"Total":    attempt.Total(),
		"Selected": attempt.Selected(),
		"IsFirst":  attempt.IsFirst(),
		"IsLast":   attempt.IsLast(),
		"Error":    message,
	})
}

// parseOption reads the radio value; an absent value means no new selection.
func parseOption(raw string) (*int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	i, err := strconv.Atoi(raw)
	if err != nil {
		return nil, domain.NewError(domain.CodeInvalidOption, "Please choose one of the listed options.", err)
	}
	return &i, nil
}
