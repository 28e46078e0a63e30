package handlers

import (
	"io"
	"net/http"

	"github.com/SAP-F-2025/quiz-service/internal/models"
	"github.com/SAP-F-2025/quiz-service/internal/repositories"
	"github.com/SAP-F-2025/quiz-service/internal/services"
	"github.com/SAP-F-2025/quiz-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type QuizHandler struct {
	BaseHandler
	quizService services.QuizService
	auth        *TokenAuth
}

func NewQuizHandler(quizService services.QuizService, auth *TokenAuth, logger utils.Logger) *QuizHandler {
	return &QuizHandler{
		BaseHandler: NewBaseHandler(logger),
		quizService: quizService,
		auth:        auth,
	}
}

// ListQuizzes returns quiz summaries, optionally narrowed by class level
// and category.
// @Router /quizzes [get]
func (h *QuizHandler) ListQuizzes(c *gin.Context) {
	var filters repositories.QuizFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid query parameters", err, err.Error())
		return
	}

	quizzes, err := h.quizService.List(requestContext(c), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, summaries(quizzes))
}

// @Router /quizzes/search [get]
func (h *QuizHandler) SearchQuizzes(c *gin.Context) {
	quizzes, err := h.quizService.Search(requestContext(c), c.Query("q"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, summaries(quizzes))
}

// GetQuiz returns the full quiz. The access code is only included for
// callers holding the API token.
// @Router /quizzes/{id} [get]
func (h *QuizHandler) GetQuiz(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	quiz, err := h.quizService.Get(requestContext(c), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	if !h.auth.Authorized(c) {
		quiz = withoutAccessCode(quiz)
	}
	c.JSON(http.StatusOK, quiz)
}

// @Router /quizzes/{id}/questions [get]
func (h *QuizHandler) GetQuestions(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	questions, err := h.quizService.Questions(requestContext(c), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, questions)
}

// CreateQuiz checks the raw document against the quiz schema before saving
// @Router /quizzes [post]
func (h *QuizHandler) CreateQuiz(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil || len(body) == 0 {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err, "request body is empty")
		return
	}

	actor := currentActor(c)
	h.LogRequest(c, "Creating quiz", "actor", actor)

	quiz, err := h.quizService.CreateFromJSON(requestContext(c), body, actor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, quiz)
}

// @Router /quizzes/{id} [put]
func (h *QuizHandler) UpdateQuiz(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var quiz models.Quiz
	if err := c.ShouldBindJSON(&quiz); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err, err.Error())
		return
	}
	quiz.ID = id

	actor := currentActor(c)
	h.LogRequest(c, "Updating quiz", "quiz_id", id, "actor", actor)

	updated, err := h.quizService.Update(requestContext(c), &quiz, actor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// @Router /quizzes/{id} [delete]
func (h *QuizHandler) DeleteQuiz(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	actor := currentActor(c)
	h.LogRequest(c, "Deleting quiz", "quiz_id", id, "actor", actor)

	if err := h.quizService.Delete(requestContext(c), id, actor); err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "Quiz deleted successfully", gin.H{"id": id})
}

func summaries(quizzes []*models.Quiz) []models.QuizSummary {
	out := make([]models.QuizSummary, 0, len(quizzes))
	for _, q := range quizzes {
		out = append(out, q.Summary())
	}
	return out
}

func withoutAccessCode(quiz *models.Quiz) *models.Quiz {
	public := *quiz
	public.AccessCode = ""
	return &public
}
