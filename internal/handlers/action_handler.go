package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/SAP-F-2025/quiz-service/internal/models"
	"github.com/SAP-F-2025/quiz-service/internal/repositories"
	"github.com/SAP-F-2025/quiz-service/internal/services"
	"github.com/SAP-F-2025/quiz-service/internal/utils"
	"github.com/gin-gonic/gin"
)

// Actions understood by the exec endpoint
const (
	ActionGetTeachers  = "get_teachers"
	ActionGetQuizzes   = "get_quizzes"
	ActionGetQuestions = "get_questions"
	ActionGetResults   = "get_results"
	ActionSubmitResult = "submit_result"
	ActionCreateQuiz   = "create_quiz"
	ActionUpdateQuiz   = "update_quiz"
	ActionDeleteQuiz   = "delete_quiz"
)

// ActionRequest is the exec envelope. GET requests carry the same fields as
// query parameters. Submission fields sit at the top level next to action.
type ActionRequest struct {
	Action   string          `json:"action" form:"action"`
	Token    string          `json:"token" form:"token"`
	Username string          `json:"username,omitempty" form:"username"`
	QuizID   string          `json:"quizId,omitempty" form:"quizId"`
	Class    string          `json:"class,omitempty" form:"class"`
	Quiz     json.RawMessage `json:"quiz,omitempty" form:"-"`

	StudentName  string                     `json:"studentName,omitempty" form:"-"`
	StudentClass string                     `json:"studentClass,omitempty" form:"-"`
	ClassName    string                     `json:"className,omitempty" form:"-"`
	AccessCode   string                     `json:"accessCode,omitempty" form:"-"`
	Answers      map[string]json.RawMessage `json:"answers,omitempty" form:"-"`
	StartedAt    *time.Time                 `json:"startedAt,omitempty" form:"-"`
	TimeTaken    *int                       `json:"timeTaken,omitempty" form:"-"`
}

// ActionStatus is the write acknowledgement of the exec endpoint
type ActionStatus struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// ActionHandler serves the single-endpoint API used by the quiz web client.
// Requests are handled one at a time.
type ActionHandler struct {
	BaseHandler
	services services.ServiceManager
	auth     *TokenAuth
	mu       sync.Mutex
}

func NewActionHandler(serviceManager services.ServiceManager, auth *TokenAuth, logger utils.Logger) *ActionHandler {
	return &ActionHandler{
		BaseHandler: NewBaseHandler(logger),
		services:    serviceManager,
		auth:        auth,
	}
}

// Exec dispatches on the action field
// @Router /exec [post]
func (h *ActionHandler) Exec(c *gin.Context) {
	var req ActionRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid query parameters", err, err.Error())
		return
	}
	if c.Request.Body != nil {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err)
			return
		}
		if len(strings.TrimSpace(string(body))) > 0 {
			if err := json.Unmarshal(body, &req); err != nil {
				h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err, err.Error())
				return
			}
		}
	}

	if !h.auth.Check(requestContext(c), req.Token, c.ClientIP()) {
		c.JSON(http.StatusUnauthorized, ActionStatus{Status: "error", Message: "Unauthorized: Invalid Token"})
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.LogRequest(c, "Executing action", "action", req.Action)

	ctx := requestContext(c)
	actor := actorFrom(req.Username)

	switch req.Action {
	case ActionGetTeachers:
		teachers, err := h.services.Auth().ListTeachers(ctx)
		h.respond(c, teachers, err)

	case ActionGetQuizzes:
		quizzes, err := h.services.Quiz().List(ctx, repositories.QuizFilters{})
		h.respond(c, quizzes, err)

	case ActionGetQuestions:
		if req.QuizID == "" {
			h.handleServiceError(c, services.NewValidationError("quizId", "is required", nil))
			return
		}
		questions, err := h.services.Quiz().Questions(ctx, req.QuizID)
		h.respond(c, questions, err)

	case ActionGetResults:
		results, err := h.services.Result().List(ctx, services.ResultQuery{QuizID: req.QuizID, Class: req.Class})
		h.respond(c, results, err)

	case ActionSubmitResult:
		studentClass := req.StudentClass
		if studentClass == "" {
			studentClass = req.ClassName
		}
		result, err := h.services.Result().Submit(ctx, &services.SubmitRequest{
			QuizID:       req.QuizID,
			StudentName:  req.StudentName,
			StudentClass: studentClass,
			AccessCode:   req.AccessCode,
			Answers:      req.Answers,
			StartedAt:    req.StartedAt,
			TimeTaken:    req.TimeTaken,
		})
		h.acknowledge(c, result, err)

	case ActionCreateQuiz:
		if len(req.Quiz) == 0 {
			h.handleServiceError(c, services.NewValidationError("quiz", "is required", nil))
			return
		}
		quiz, err := h.services.Quiz().CreateFromJSON(ctx, req.Quiz, actor)
		h.acknowledge(c, quiz, err)

	case ActionUpdateQuiz:
		var quiz models.Quiz
		if len(req.Quiz) == 0 {
			h.handleServiceError(c, services.NewValidationError("quiz", "is required", nil))
			return
		}
		if err := json.Unmarshal(req.Quiz, &quiz); err != nil {
			h.RespondWithError(c, http.StatusBadRequest, "Invalid quiz payload", err, err.Error())
			return
		}
		updated, err := h.services.Quiz().Update(ctx, &quiz, actor)
		h.acknowledge(c, updated, err)

	case ActionDeleteQuiz:
		if req.QuizID == "" {
			h.handleServiceError(c, services.NewValidationError("quizId", "is required", nil))
			return
		}
		err := h.services.Quiz().Delete(ctx, req.QuizID, actor)
		h.acknowledge(c, gin.H{"id": req.QuizID}, err)

	default:
		c.JSON(http.StatusBadRequest, ActionStatus{Status: "error", Message: "Unknown action: " + req.Action})
	}
}

// respond writes a read result as a bare JSON array
func (h *ActionHandler) respond(c *gin.Context, data interface{}, err error) {
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, data)
}

func (h *ActionHandler) acknowledge(c *gin.Context, data interface{}, err error) {
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ActionStatus{Status: "success", Data: data})
}
