package port

import (
	"context"

	"eduquiz-web/internal/domain"
	"eduquiz-web/internal/dto"
)

// BackendAPI is the quiz-generation backend. Every error is a
// *domain.DomainError with CodeBackend.
type BackendAPI interface {
	SignUp(ctx context.Context, email, password string) (*dto.AuthResponse, error)
	SignIn(ctx context.Context, email, password string) (*dto.AuthResponse, error)
	// SignOut invalidates token on the backend.
	SignOut(ctx context.Context, token string) error
	GenerateQuiz(ctx context.Context, text string) ([]domain.Question, error)
}
