package domain

import (
	"eduquiz-web/internal/util"
)

// Question is one multiple-choice question as returned by generate-quiz.
//
// The backend does not label the correct option: by convention it is the last
// one. Answer is honoured if a future backend starts sending it.
type Question struct {
	Text    string   `json:"question"`
	Options []string `json:"options"`
	Answer  *int     `json:"answer,omitempty"`
}

// CorrectIndex returns the index of the correct option.
func (q Question) CorrectIndex() int {
	if q.Answer != nil && *q.Answer >= 0 && *q.Answer < len(q.Options) {
		return *q.Answer
	}
	return len(q.Options) - 1
}

// AnswerSet holds the chosen option index per question; nil means unanswered.
type AnswerSet []*int

// NewAnswerSet returns n unanswered slots.
func NewAnswerSet(n int) AnswerSet {
	return make(AnswerSet, n)
}

// Answered reports whether question i has a selection.
func (a AnswerSet) Answered(i int) bool {
	return i >= 0 && i < len(a) && a[i] != nil
}

// Chosen returns the selected index for question i, or -1.
func (a AnswerSet) Chosen(i int) int {
	if !a.Answered(i) {
		return -1
	}
	return *a[i]
}

// Attempt is the navigation state carried from the Input view through the
// Display view into the Results view. It is never persisted.
type Attempt struct {
	Questions []Question `json:"questions"`
	Answers   AnswerSet  `json:"answers"`
	Current   int        `json:"current"`
}

// NewAttempt starts an attempt at the first question with nothing answered.
func NewAttempt(questions []Question) (*Attempt, error) {
	if len(questions) == 0 {
		return nil, NewNavigationStateError("quiz has no questions", nil)
	}
	for i, q := range questions {
		if len(q.Options) == 0 {
			return nil, NewNavigationStateError("question has no options", nil).WithContext("question", i)
		}
	}
	return &Attempt{
		Questions: questions,
		Answers:   NewAnswerSet(len(questions)),
	}, nil
}

// Validate checks that the attempt is internally consistent. Handoff state
// that fails validation is treated as missing.
func (a *Attempt) Validate() error {
	if a == nil || len(a.Questions) == 0 {
		return NewNavigationStateError("quiz data is missing", nil)
	}
	if len(a.Answers) != len(a.Questions) {
		return NewNavigationStateError("answers do not match the quiz", nil).
			WithContext("questions", len(a.Questions)).
			WithContext("answers", len(a.Answers))
	}
	if a.Current < 0 || a.Current >= len(a.Questions) {
		return NewNavigationStateError("current question out of range", nil).
			WithContext("current", a.Current)
	}
	for i, q := range a.Questions {
		if len(q.Options) == 0 {
			return NewNavigationStateError("question has no options", nil).WithContext("question", i)
		}
		if chosen := a.Answers.Chosen(i); chosen >= len(q.Options) {
			return NewNavigationStateError("answer out of range", nil).WithContext("question", i)
		}
	}
	return nil
}

// Question returns the question currently on screen.
func (a *Attempt) Question() Question {
	return a.Questions[a.Current]
}

// Number is the 1-based position of the current question.
func (a *Attempt) Number() int {
	return a.Current + 1
}

func (a *Attempt) Total() int {
	return len(a.Questions)
}

func (a *Attempt) IsFirst() bool {
	return a.Current == 0
}

func (a *Attempt) IsLast() bool {
	return a.Current == len(a.Questions)-1
}

// Selected returns the option chosen for the current question, or -1.
func (a *Attempt) Selected() int {
	return a.Answers.Chosen(a.Current)
}

// CurrentAnswered reports whether the current question has a selection.
func (a *Attempt) CurrentAnswered() bool {
	return a.Answers.Answered(a.Current)
}

// Select records option for the current question, replacing any earlier choice.
func (a *Attempt) Select(option int) error {
	if option < 0 || option >= len(a.Question().Options) {
		return NewError(CodeInvalidOption, "Please choose one of the listed options.", nil).
			WithContext("option", option)
	}
	a.Answers[a.Current] = &option
	return nil
}

// Next moves forward; only allowed once the current question is answered.
func (a *Attempt) Next() error {
	if !a.CurrentAnswered() {
		return NewError(CodeUnanswered, "Please select an answer before continuing.", nil)
	}
	if a.IsLast() {
		return NewError(CodeInvalidOption, "This is the last question.", nil)
	}
	a.Current++
	return nil
}

// Prev moves back one question. It is always allowed and stops at the first.
func (a *Attempt) Prev() {
	if a.Current > 0 {
		a.Current--
	}
}

// Submit finishes the attempt. The last question must be on screen and answered.
func (a *Attempt) Submit() (*Score, error) {
	if !a.IsLast() {
		return nil, NewError(CodeUnanswered, "Please answer every question before submitting.", nil)
	}
	if !a.CurrentAnswered() {
		return nil, NewError(CodeUnanswered, "Please select an answer before submitting.", nil)
	}
	return ScoreAnswers(a.Questions, a.Answers)
}

// ScoredQuestion is one line of the results review.
type ScoredQuestion struct {
	Question
	Number     int
	Chosen     int
	Correct    int
	IsCorrect  bool
	Unanswered bool
}

// Score is derived from a quiz and its answers; it is never stored.
type Score struct {
	Correct    int
	Total      int
	Percentage int
	Items      []ScoredQuestion
}

// ScoreAnswers counts the questions whose chosen index equals the correct
// index. Mismatched or empty input is a navigation state error.
func ScoreAnswers(questions []Question, answers AnswerSet) (*Score, error) {
	if len(questions) == 0 || len(answers) != len(questions) {
		return nil, NewNavigationStateError("quiz results are unavailable", nil)
	}

	score := &Score{Total: len(questions), Items: make([]ScoredQuestion, 0, len(questions))}
	for i, q := range questions {
		chosen := answers.Chosen(i)
		correct := q.CorrectIndex()
		item := ScoredQuestion{
			Question:   q,
			Number:     i + 1,
			Chosen:     chosen,
			Correct:    correct,
			IsCorrect:  chosen >= 0 && chosen == correct,
			Unanswered: chosen < 0,
		}
		if item.IsCorrect {
			score.Correct++
		}
		score.Items = append(score.Items, item)
	}
	score.Percentage = util.Percentage(score.Correct, score.Total)
	return score, nil
}

// OptionLabel maps an option index to its display letter (A, B, C, D, ...).
func OptionLabel(i int) string {
	if i < 0 || i >= 26 {
		return "?"
	}
	return string(rune('A' + i))
}
