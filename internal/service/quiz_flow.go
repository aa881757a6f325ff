package service

import (
	"context"

	"eduquiz-web/internal/domain"
	"eduquiz-web/internal/logger"
	"eduquiz-web/internal/port"
	"eduquiz-web/internal/validation"

	"go.uber.org/zap"
)

// GenerateFallbackMessage is shown when quiz generation fails without a
// backend-provided message.
const GenerateFallbackMessage = "An error occurred while generating the quiz. Please try again."

// Move is a navigation action submitted from the quiz view.
type Move string

const (
	MoveNext   Move = "next"
	MovePrev   Move = "prev"
	MoveSubmit Move = "submit"
)

// QuizFlow drives Input -> Display -> Results.
type QuizFlow struct {
	backend   port.BackendAPI
	validator *validation.Validator
}

// NewQuizFlow creates a new QuizFlow.
func NewQuizFlow(backend port.BackendAPI, validator *validation.Validator) *QuizFlow {
	return &QuizFlow{backend: backend, validator: validator}
}

// Generate validates text locally, then asks the backend for a quiz and
// starts a fresh attempt at its first question.
func (f *QuizFlow) Generate(ctx context.Context, text string) (*domain.Attempt, error) {
	if err := f.validator.ValidateQuizText(text); err != nil {
		return nil, err
	}

	questions, err := f.backend.GenerateQuiz(ctx, text)
	if err != nil {
		logger.Get().Warn("Quiz generation failed", zap.Error(err))
		return nil, err
	}

	attempt, err := domain.NewAttempt(questions)
	if err != nil {
		logger.Get().Warn("Backend returned an unusable quiz", zap.Error(err))
		return nil, err
	}
	logger.Get().Debug("Quiz generated", zap.Int("questions", attempt.Total()))
	return attempt, nil
}

// Apply records choice (when given) on the current question and then performs
// move. A score is returned only for MoveSubmit. On error the attempt keeps
// whatever selection was recorded, so the view can be re-rendered from it.
func (f *QuizFlow) Apply(a *domain.Attempt, choice *int, move Move) (*domain.Score, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	if choice != nil {
		if err := a.Select(*choice); err != nil {
			return nil, err
		}
	}

	switch move {
	case MoveNext:
		return nil, a.Next()
	case MovePrev:
		a.Prev()
		return nil, nil
	case MoveSubmit:
		return a.Submit()
	default:
		return nil, domain.NewNavigationStateError("unknown quiz action", nil).WithContext("action", string(move))
	}
}
