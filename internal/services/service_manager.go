package services

import (
	"log/slog"

	"github.com/SAP-F-2025/quiz-service/internal/cache"
	"github.com/SAP-F-2025/quiz-service/internal/events"
	"github.com/SAP-F-2025/quiz-service/internal/repositories"
	"github.com/SAP-F-2025/quiz-service/internal/validator"
)

// ServiceManager wires every service over one repository backend.
type ServiceManager interface {
	Quiz() QuizService
	Result() ResultService
	Auth() AuthService
	Export() ExportService
	Sessions() *SessionManager
}

type serviceManager struct {
	quiz     QuizService
	result   ResultService
	auth     AuthService
	export   ExportService
	sessions *SessionManager
}

// NewServiceManager builds the services. cacheService and publisher may be
// nil to run without a cache or events.
func NewServiceManager(
	repo repositories.Repository,
	cacheService cache.CacheService,
	publisher events.EventPublisher,
	validator *validator.Validator,
	logger *slog.Logger,
) ServiceManager {
	newLogger := func(component string) *ServiceLogger {
		return NewServiceLogger(logger, LogConfig{Service: "quiz-service", Component: component})
	}

	notifier := NewEventNotifier(publisher, logger)
	quiz := NewQuizService(repo, cacheService, notifier, validator, newLogger("quiz"))
	result := NewResultService(repo, quiz, cacheService, notifier, newLogger("result"))

	return &serviceManager{
		quiz:     quiz,
		result:   result,
		auth:     NewAuthService(repo, cacheService, validator, newLogger("auth")),
		export:   NewExportService(result, newLogger("export")),
		sessions: NewSessionManager(quiz, result, newLogger("session")),
	}
}

func (m *serviceManager) Quiz() QuizService         { return m.quiz }
func (m *serviceManager) Result() ResultService     { return m.result }
func (m *serviceManager) Auth() AuthService         { return m.auth }
func (m *serviceManager) Export() ExportService     { return m.export }
func (m *serviceManager) Sessions() *SessionManager { return m.sessions }
