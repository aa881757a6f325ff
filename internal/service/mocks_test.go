package service

import (
	"context"

	"eduquiz-web/internal/domain"
	"eduquiz-web/internal/dto"

	"github.com/stretchr/testify/mock"
)

// --- MockBackendAPI ---
type MockBackendAPI struct {
	mock.Mock
}

func (m *MockBackendAPI) SignUp(ctx context.Context, email, password string) (*dto.AuthResponse, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AuthResponse), args.Error(1)
}

func (m *MockBackendAPI) SignIn(ctx context.Context, email, password string) (*dto.AuthResponse, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AuthResponse), args.Error(1)
}

func (m *MockBackendAPI) SignOut(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockBackendAPI) GenerateQuiz(ctx context.Context, text string) ([]domain.Question, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Question), args.Error(1)
}

// --- MockSessionStore ---
type MockSessionStore struct {
	mock.Mock
}

func (m *MockSessionStore) GetSession(ctx context.Context, sid string) (*domain.SessionRecord, error) {
	args := m.Called(ctx, sid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SessionRecord), args.Error(1)
}

func (m *MockSessionStore) SetSession(ctx context.Context, sid string, record domain.SessionRecord) error {
	args := m.Called(ctx, sid, record)
	return args.Error(0)
}

func (m *MockSessionStore) ClearSession(ctx context.Context, sid string) error {
	args := m.Called(ctx, sid)
	return args.Error(0)
}
