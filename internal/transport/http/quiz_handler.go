package http

import (
	"net/http"
	"strings"

	"kartografi-service/internal/domain"
	"kartografi-service/internal/quiz"
)

// QuizHandler serves the single quiz endpoint: a request without an answer
// issues a question, one with an answer evaluates it against the question key.
type QuizHandler struct {
	service *quiz.Service
}

func NewQuizHandler(service *quiz.Service) *QuizHandler {
	return &QuizHandler{service: service}
}

type quizRequest struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	// "anwser" shipped misspelled in an early client and is kept as a synonym.
	Anwser string `json:"anwser"`
}

type questionResponse struct {
	Mode string `json:"mode"`
	quiz.Question
}

type answerResponse struct {
	Mode string `json:"mode"`
	quiz.Evaluation
}

func (h *QuizHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var req quizRequest
	if !decodeBody(w, r, &req) {
		return
	}

	question := strings.TrimSpace(req.Question)
	if question == "" {
		writeFailure(w, domain.ErrMissingParameter)
		return
	}

	answer := strings.TrimSpace(req.Anwser)
	if answer == "" {
		answer = strings.TrimSpace(req.Answer)
	}

	if answer == "" {
		if !domain.SupportedQuestionType(question) {
			writeFailure(w, domain.ErrUnsupportedType)
			return
		}
		payload, err := h.service.BuildQuestion(r.Context(), question)
		if err != nil {
			writeFailure(w, err)
			return
		}
		writeJSON(w, http.StatusOK, questionResponse{Mode: "question", Question: payload})
		return
	}

	result, err := h.service.EvaluateAnswer(r.Context(), question, answer)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, answerResponse{Mode: "answer", Evaluation: result})
}
