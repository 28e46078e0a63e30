package handlers

import (
	"github.com/SAP-F-2025/quiz-service/internal/services"
	"github.com/SAP-F-2025/quiz-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type HandlerManager struct {
	auth           *TokenAuth
	quizHandler    *QuizHandler
	resultHandler  *ResultHandler
	authHandler    *AuthHandler
	sessionHandler *SessionHandler
	actionHandler  *ActionHandler
}

// NewHandlerManager builds every handler. apiToken guards the teacher routes
// and the exec endpoint.
func NewHandlerManager(
	serviceManager services.ServiceManager,
	apiToken string,
	logger utils.Logger,
) *HandlerManager {
	security := services.NewServiceLogger(logger.Slog(), services.LogConfig{
		Service:   "quiz-service",
		Component: "api",
	})
	auth := NewTokenAuth(apiToken, security)

	return &HandlerManager{
		auth:           auth,
		quizHandler:    NewQuizHandler(serviceManager.Quiz(), auth, logger),
		resultHandler:  NewResultHandler(serviceManager.Result(), serviceManager.Export(), logger),
		authHandler:    NewAuthHandler(serviceManager.Auth(), logger),
		sessionHandler: NewSessionHandler(serviceManager.Sessions(), logger),
		actionHandler:  NewActionHandler(serviceManager, auth, logger),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", HealthCheck)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/exec", hm.actionHandler.Exec)
		v1.POST("/exec", hm.actionHandler.Exec)

		teacher := hm.auth.Require()

		quizzes := v1.Group("/quizzes")
		{
			quizzes.GET("", hm.quizHandler.ListQuizzes)
			quizzes.GET("/search", hm.quizHandler.SearchQuizzes)
			quizzes.GET("/:id", hm.quizHandler.GetQuiz)
			quizzes.GET("/:id/questions", hm.quizHandler.GetQuestions)

			quizzes.POST("", teacher, hm.quizHandler.CreateQuiz)
			quizzes.PUT("/:id", teacher, hm.quizHandler.UpdateQuiz)
			quizzes.DELETE("/:id", teacher, hm.quizHandler.DeleteQuiz)
		}

		results := v1.Group("/results")
		{
			results.POST("", hm.resultHandler.SubmitResult)
			results.GET("/:id", hm.resultHandler.GetResult)

			results.GET("", teacher, hm.resultHandler.ListResults)
			results.GET("/overview", teacher, hm.resultHandler.GetOverview)
			results.GET("/export", teacher, hm.resultHandler.ExportResults)
		}

		sessions := v1.Group("/sessions")
		{
			sessions.POST("", hm.sessionHandler.StartSession)
			sessions.GET("/:id", hm.sessionHandler.GetSession)
			sessions.POST("/:id/access-code", hm.sessionHandler.EnterAccessCode)
			sessions.PUT("/:id/answers/:questionId", hm.sessionHandler.SaveAnswer)
			sessions.POST("/:id/suspend", hm.sessionHandler.Suspend)
			sessions.POST("/:id/submit", hm.sessionHandler.Submit)
		}

		v1.POST("/auth/login", hm.authHandler.Login)

		teachers := v1.Group("/teachers", teacher)
		{
			teachers.GET("", hm.authHandler.ListTeachers)
			teachers.PUT("", hm.authHandler.SaveTeacher)
		}
	}
}

// NewRouter returns a gin engine with recovery, request logging and every
// route installed.
func NewRouter(hm *HandlerManager, logger utils.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), utils.RequestLogger(logger))
	hm.SetupRoutes(router)
	return router
}
