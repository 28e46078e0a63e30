package validator

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Result is the outcome of checking one free-text input. Input validators
// never return errors: a bad value is an expected outcome.
type Result struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

func valid() Result {
	return Result{Valid: true}
}

func invalid(message string) Result {
	return Result{Valid: false, Error: message}
}

const (
	StudentNameMinLength = 2
	StudentNameMaxLength = 50
	UsernameMinLength    = 3
	UsernameMaxLength    = 30
	PasswordMinLength    = 4
	QuizTitleMinLength   = 5
	QuizTitleMaxLength   = 200
	MinTimeLimit         = 1
	MaxTimeLimit         = 180
	MinQuestionCount     = 1
	MaxQuestionCount     = 50
)

var (
	classNamePattern  = regexp.MustCompile(`^[1-5][A-Za-z][0-9]?$`)
	classLevelPattern = regexp.MustCompile(`^[1-5]$`)
	usernamePattern   = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	accessCodePattern = regexp.MustCompile(`^[A-Z0-9]+$`)
	emailPattern      = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// ValidateStudentName accepts 2 to 50 characters of Latin letters (including
// Vietnamese letters, precomposed or with combining marks), spaces, hyphens,
// apostrophes and periods.
func ValidateStudentName(name string) Result {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return invalid("Please enter your full name")
	}

	length := utf8.RuneCountInString(trimmed)
	if length < StudentNameMinLength {
		return invalid("Full name must be at least 2 characters")
	}
	if length > StudentNameMaxLength {
		return invalid("Full name must not exceed 50 characters")
	}

	for _, r := range trimmed {
		if !isNameRune(r) {
			return invalid("Full name contains invalid characters")
		}
	}
	return valid()
}

func isNameRune(r rune) bool {
	switch {
	case r == '-' || r == '\'' || r == '.':
		return true
	case unicode.IsSpace(r):
		return true
	case r >= 0x0300 && r <= 0x036F:
		return true
	case unicode.IsLetter(r) && unicode.Is(unicode.Latin, r):
		return true
	}
	return false
}

// ValidateClassName accepts a grade 1-5, one letter and an optional digit,
// e.g. "3A1" or "4B".
func ValidateClassName(className string) Result {
	trimmed := strings.TrimSpace(className)
	if trimmed == "" {
		return invalid("Please choose a class")
	}
	if !classNamePattern.MatchString(trimmed) {
		return invalid("Invalid class name (e.g. 3A1, 4B)")
	}
	return valid()
}

// ValidateClassLevel accepts "1" through "5".
func ValidateClassLevel(level string) Result {
	if !classLevelPattern.MatchString(strings.TrimSpace(level)) {
		return invalid("Class level must be 1-5")
	}
	return valid()
}

func ValidateUsername(username string) Result {
	trimmed := strings.TrimSpace(username)
	if trimmed == "" {
		return invalid("Please enter a username")
	}

	length := utf8.RuneCountInString(trimmed)
	if length < UsernameMinLength {
		return invalid("Username must be at least 3 characters")
	}
	if length > UsernameMaxLength {
		return invalid("Username must not exceed 30 characters")
	}
	if !usernamePattern.MatchString(trimmed) {
		return invalid("Username may only contain letters, digits and underscores")
	}
	return valid()
}

// ValidatePassword only checks presence and a minimum length of 4. There is
// no complexity rule.
func ValidatePassword(password string) Result {
	if password == "" {
		return invalid("Please enter a password")
	}
	if utf8.RuneCountInString(password) < PasswordMinLength {
		return invalid("Password must be at least 4 characters")
	}
	return valid()
}

// NormalizeAccessCode trims and upper-cases a code the way it is compared.
func NormalizeAccessCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func ValidateAccessCode(code string) Result {
	normalized := NormalizeAccessCode(code)
	if normalized == "" {
		return invalid("Please enter the access code")
	}
	if utf8.RuneCountInString(normalized) != 6 {
		return invalid("Access code must be exactly 6 characters")
	}
	if !accessCodePattern.MatchString(normalized) {
		return invalid("Access code may only contain letters and digits")
	}
	return valid()
}

func ValidateQuizTitle(title string) Result {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return invalid("Please enter a quiz title")
	}

	length := utf8.RuneCountInString(trimmed)
	if length < QuizTitleMinLength {
		return invalid("Title must be at least 5 characters")
	}
	if length > QuizTitleMaxLength {
		return invalid("Title must not exceed 200 characters")
	}
	return valid()
}

// ValidateEmail treats an empty address as valid since the field is optional.
// No stored record carries an email yet; it is exported for clients that
// collect one.
func ValidateEmail(email string) Result {
	trimmed := strings.TrimSpace(email)
	if trimmed == "" {
		return valid()
	}
	if !emailPattern.MatchString(trimmed) {
		return invalid("Invalid email address")
	}
	return valid()
}

func ValidateTimeLimit(minutes int) Result {
	if minutes < MinTimeLimit || minutes > MaxTimeLimit {
		return invalid("Time limit must be between 1 and 180 minutes")
	}
	return valid()
}

func ValidateQuestionCount(count int) Result {
	if count < MinQuestionCount || count > MaxQuestionCount {
		return invalid("Question count must be between 1 and 50")
	}
	return valid()
}
