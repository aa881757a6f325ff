package dto

import "eduquiz-web/internal/domain"

// GenerateQuizRequest is the body of POST /generate-quiz.
type GenerateQuizRequest struct {
	Text string `json:"text"`
}

// GenerateQuizResponse is the success body of POST /generate-quiz.
type GenerateQuizResponse struct {
	Quiz []domain.Question `json:"quiz"`
}

// ErrorResponse is the error body shared by every backend endpoint.
type ErrorResponse struct {
	Error string `json:"error"`
}
