package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/SAP-F-2025/quiz-service/internal/grading"
	"github.com/SAP-F-2025/quiz-service/internal/models"
	"github.com/SAP-F-2025/quiz-service/internal/validator"
	"github.com/google/uuid"
)

type SessionState string

const (
	SessionNotStarted         SessionState = "NOT_STARTED"
	SessionAccessCodeRequired SessionState = "ACCESS_CODE_REQUIRED"
	SessionInProgress         SessionState = "IN_PROGRESS"
	SessionSubmitted          SessionState = "SUBMITTED"
	SessionGraded             SessionState = "GRADED"
)

// ResultRecorder grades and stores a finished session.
type ResultRecorder interface {
	Record(ctx context.Context, quiz *models.Quiz, answers models.Answers, meta grading.StudentMeta) (*models.StudentResult, error)
}

// StudentInfo identifies the student taking a quiz.
type StudentInfo struct {
	Name  string `json:"studentName"`
	Class string `json:"studentClass"`
}

// QuizSession is one student's attempt at one quiz:
//
//	NotStarted -> InProgress -> (AccessCodeRequired <-> InProgress) -> Submitted -> Graded
//
// A quiz that requires a code enters AccessCodeRequired from NotStarted.
// Graded is terminal. A session is safe for concurrent use.
type QuizSession struct {
	mu sync.Mutex

	id       string
	quiz     *models.Quiz
	student  StudentInfo
	recorder ResultRecorder
	now      func() time.Time

	state     SessionState
	answers   models.Answers
	startedAt time.Time
	deadline  time.Time
	updatedAt time.Time
	result    *models.StudentResult
}

func NewQuizSession(id string, quiz *models.Quiz, student StudentInfo, recorder ResultRecorder, now func() time.Time) *QuizSession {
	if now == nil {
		now = time.Now
	}
	return &QuizSession{
		id:        id,
		quiz:      quiz,
		student:   student,
		recorder:  recorder,
		now:       now,
		state:     SessionNotStarted,
		answers:   models.Answers{},
		updatedAt: now(),
	}
}

func (s *QuizSession) ID() string { return s.id }

func (s *QuizSession) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Start begins the attempt, or asks for the access code first.
func (s *QuizSession) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != SessionNotStarted {
		return s.stateError("start")
	}
	if s.quiz.RequireCode {
		s.setState(SessionAccessCodeRequired)
		return nil
	}
	s.begin()
	return nil
}

// EnterAccessCode unlocks the quiz. A wrong code leaves the session waiting
// for another try.
func (s *QuizSession) EnterAccessCode(code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != SessionAccessCodeRequired {
		return s.stateError("enter access code")
	}
	if err := CheckAccessCode(s.quiz, code); err != nil {
		return err
	}
	if s.startedAt.IsZero() {
		s.begin()
	} else {
		s.setState(SessionInProgress)
	}
	return nil
}

// Suspend locks a gated quiz in progress until the code is entered again.
// The clock keeps running.
func (s *QuizSession) Suspend() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != SessionInProgress || !s.quiz.RequireCode {
		return s.stateError("suspend")
	}
	s.setState(SessionAccessCodeRequired)
	return nil
}

// Answer records or replaces the answer to one question. raw uses the plain
// shape a client sends for the question's type.
func (s *QuizSession) Answer(questionID string, raw json.RawMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != SessionInProgress {
		return s.stateError("answer")
	}
	if s.expired() {
		return fmt.Errorf("%w: time limit reached", ErrSessionState)
	}

	q := s.quiz.QuestionByID(questionID)
	if q == nil {
		return NewValidationError("questionId", "is not part of this quiz", questionID)
	}
	answer, err := models.DecodeAnswer(q.Type, raw)
	if err != nil {
		return NewValidationError("answer", err.Error(), questionID)
	}

	s.answers[questionID] = answer
	s.updatedAt = s.now()
	return nil
}

// Submit grades the collected answers. If storing the result fails the
// session goes back to InProgress so the student can retry.
func (s *QuizSession) Submit(ctx context.Context) (*models.StudentResult, error) {
	s.mu.Lock()
	if s.state == SessionSubmitted || s.state == SessionGraded {
		s.mu.Unlock()
		return nil, ErrAlreadySubmitted
	}
	if s.state != SessionInProgress {
		err := s.stateError("submit")
		s.mu.Unlock()
		return nil, err
	}
	return s.submitLocked(ctx, SessionInProgress)
}

// SubmitIfExpired submits a started session whose time is up, including one
// waiting for its access code. It reports whether a submission happened.
func (s *QuizSession) SubmitIfExpired(ctx context.Context) (bool, error) {
	s.mu.Lock()
	started := s.state == SessionInProgress || (s.state == SessionAccessCodeRequired && !s.startedAt.IsZero())
	if !started || !s.expired() {
		s.mu.Unlock()
		return false, nil
	}
	_, err := s.submitLocked(ctx, s.state)
	return err == nil, err
}

// submitLocked is entered with mu held and releases it while the result is
// stored.
func (s *QuizSession) submitLocked(ctx context.Context, previous SessionState) (*models.StudentResult, error) {
	s.setState(SessionSubmitted)
	answers := make(models.Answers, len(s.answers))
	for id, a := range s.answers {
		answers[id] = a
	}
	meta := grading.StudentMeta{
		StudentName:  s.student.Name,
		StudentClass: s.student.Class,
		TimeTaken:    grading.MinutesBetween(s.startedAt, s.now()),
	}
	s.mu.Unlock()

	result, err := s.recorder.Record(ctx, s.quiz, answers, meta)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.setState(previous)
		return nil, err
	}
	s.result = result
	s.setState(SessionGraded)
	return result, nil
}

// TimeRemaining is zero before the attempt starts and after it ends.
func (s *QuizSession) TimeRemaining() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.remaining()
}

func (s *QuizSession) Result() *models.StudentResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

// SessionView is the client-facing snapshot of a session.
type SessionView struct {
	ID               string                `json:"id"`
	QuizID           string                `json:"quizId"`
	QuizTitle        string                `json:"quizTitle"`
	State            SessionState          `json:"state"`
	StudentName      string                `json:"studentName"`
	StudentClass     string                `json:"studentClass"`
	StartedAt        *time.Time            `json:"startedAt,omitempty"`
	Deadline         *time.Time            `json:"deadline,omitempty"`
	RemainingSeconds int                   `json:"remainingSeconds"`
	AnsweredCount    int                   `json:"answeredCount"`
	TotalQuestions   int                   `json:"totalQuestions"`
	Result           *models.StudentResult `json:"result,omitempty"`
}

func (s *QuizSession) View() SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()

	view := SessionView{
		ID:               s.id,
		QuizID:           s.quiz.ID,
		QuizTitle:        s.quiz.Title,
		State:            s.state,
		StudentName:      s.student.Name,
		StudentClass:     s.student.Class,
		RemainingSeconds: int(s.remaining() / time.Second),
		AnsweredCount:    len(s.answers),
		TotalQuestions:   len(s.quiz.Questions),
		Result:           s.result,
	}
	if !s.startedAt.IsZero() {
		startedAt, deadline := s.startedAt, s.deadline
		view.StartedAt = &startedAt
		view.Deadline = &deadline
	}
	return view
}

func (s *QuizSession) begin() {
	s.startedAt = s.now()
	s.deadline = s.startedAt.Add(time.Duration(s.quiz.TimeLimit) * time.Minute)
	s.setState(SessionInProgress)
}

func (s *QuizSession) setState(state SessionState) {
	s.state = state
	s.updatedAt = s.now()
}

func (s *QuizSession) expired() bool {
	return !s.deadline.IsZero() && !s.now().Before(s.deadline)
}

func (s *QuizSession) remaining() time.Duration {
	if s.startedAt.IsZero() || s.state == SessionSubmitted || s.state == SessionGraded {
		return 0
	}
	if d := s.deadline.Sub(s.now()); d > 0 {
		return d
	}
	return 0
}

func (s *QuizSession) stateError(action string) error {
	return fmt.Errorf("%w: cannot %s while %s", ErrSessionState, action, s.state)
}

// ===== SESSION MANAGER =====

// SessionManager keeps live sessions in memory and auto-submits the ones
// whose time runs out.
type SessionManager struct {
	mu       sync.RWMutex
	sessions map[string]*QuizSession

	quizzes   QuizService
	recorder  ResultRecorder
	log       *ServiceLogger
	now       func() time.Time
	newID     func() string
	retention time.Duration
}

// DefaultSessionRetention is how long a graded or never-started session stays
// readable.
const DefaultSessionRetention = time.Hour

func NewSessionManager(quizzes QuizService, recorder ResultRecorder, logger *ServiceLogger) *SessionManager {
	return &SessionManager{
		sessions:  make(map[string]*QuizSession),
		quizzes:   quizzes,
		recorder:  recorder,
		log:       logger,
		now:       time.Now,
		newID:     newSessionID,
		retention: DefaultSessionRetention,
	}
}

// Start validates the student and opens a session on the quiz.
func (m *SessionManager) Start(ctx context.Context, quizID string, student StudentInfo) (*QuizSession, error) {
	if errs := ValidateStudent(student.Name, student.Class); len(errs) > 0 {
		return nil, errs
	}

	quiz, err := m.quizzes.Get(ctx, quizID)
	if err != nil {
		return nil, err
	}

	student.Name = validator.SanitizeInput(student.Name)
	student.Class = validator.SanitizeInput(student.Class)

	session := NewQuizSession(m.newID(), quiz, student, m.recorder, m.now)
	if err := session.Start(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.sessions[session.ID()] = session
	m.mu.Unlock()

	m.log.Logger().Info("Quiz session started",
		"session_id", session.ID(),
		"quiz_id", quiz.ID,
		"state", session.State())
	return session, nil
}

func (m *SessionManager) Get(id string) (*QuizSession, error) {
	m.mu.RLock()
	session, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// Sweep auto-submits expired sessions. Graded sessions and sessions that were
// never started, such as ones stuck at the access code, are forgotten once
// untouched for the retention period. It returns the number of sessions
// submitted.
func (m *SessionManager) Sweep(ctx context.Context) int {
	m.mu.RLock()
	sessions := make([]*QuizSession, 0, len(m.sessions))
	for _, session := range m.sessions {
		sessions = append(sessions, session)
	}
	m.mu.RUnlock()

	submitted := 0
	for _, session := range sessions {
		ok, err := session.SubmitIfExpired(ctx)
		if err != nil {
			m.log.Logger().Error("Auto-submit failed", "session_id", session.ID(), "error", err)
			continue
		}
		if ok {
			submitted++
			m.log.Logger().Info("Quiz session auto-submitted", "session_id", session.ID())
		}
	}

	cutoff := m.now().Add(-m.retention)
	m.mu.Lock()
	for id, session := range m.sessions {
		session.mu.Lock()
		idle := session.state == SessionGraded || session.startedAt.IsZero()
		stale := idle && session.updatedAt.Before(cutoff)
		session.mu.Unlock()
		if stale {
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	return submitted
}

// Run sweeps every interval until ctx is cancelled.
func (m *SessionManager) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Sweep(ctx)
		}
	}
}

func newSessionID() string {
	return uuid.NewString()
}

func (m *SessionManager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
