package handlers

import (
	"io"
	"net/http"

	"github.com/SAP-F-2025/quiz-service/internal/services"
	"github.com/SAP-F-2025/quiz-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type StartSessionRequest struct {
	QuizID string `json:"quizId"`
	services.StudentInfo
}

type AccessCodeRequest struct {
	AccessCode string `json:"accessCode"`
}

// SessionHandler drives the student quiz-taking flow
type SessionHandler struct {
	BaseHandler
	sessions *services.SessionManager
}

func NewSessionHandler(sessions *services.SessionManager, logger utils.Logger) *SessionHandler {
	return &SessionHandler{
		BaseHandler: NewBaseHandler(logger),
		sessions:    sessions,
	}
}

// @Router /sessions [post]
func (h *SessionHandler) StartSession(c *gin.Context) {
	var req StartSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err, err.Error())
		return
	}

	session, err := h.sessions.Start(requestContext(c), req.QuizID, req.StudentInfo)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, session.View())
}

// @Router /sessions/{id} [get]
func (h *SessionHandler) GetSession(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, session.View())
}

// @Router /sessions/{id}/access-code [post]
func (h *SessionHandler) EnterAccessCode(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	var req AccessCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err, err.Error())
		return
	}

	if err := session.EnterAccessCode(req.AccessCode); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, session.View())
}

// SaveAnswer stores the raw answer body for one question
// @Router /sessions/{id}/answers/{questionId} [put]
func (h *SessionHandler) SaveAnswer(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	questionID, ok := h.parseIDParam(c, "questionId")
	if !ok {
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil || len(body) == 0 {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err, "answer is empty")
		return
	}

	if err := session.Answer(questionID, body); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, session.View())
}

// @Router /sessions/{id}/suspend [post]
func (h *SessionHandler) Suspend(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	if err := session.Suspend(); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, session.View())
}

// @Router /sessions/{id}/submit [post]
func (h *SessionHandler) Submit(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	h.LogRequest(c, "Submitting quiz session", "session_id", session.ID())

	result, err := session.Submit(requestContext(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *SessionHandler) session(c *gin.Context) (*services.QuizSession, bool) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return nil, false
	}
	session, err := h.sessions.Get(id)
	if err != nil {
		h.handleServiceError(c, err)
		return nil, false
	}
	return session, true
}
