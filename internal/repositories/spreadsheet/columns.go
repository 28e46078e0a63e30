package spreadsheet

// Header names. Result columns keep the display labels of a hand-kept results sheet.
const (
	colID          = "id"
	colTitle       = "title"
	colClassLevel  = "classLevel"
	colCategory    = "category"
	colTimeLimit   = "timeLimit"
	colCreatedAt   = "createdAt"
	colAccessCode  = "accessCode"
	colRequireCode = "requireCode"

	colQuizID        = "quizId"
	colType          = "type"
	colQuestion      = "question"
	colOptions       = "options"
	colCorrectAnswer = "correctAnswer"
	colItems         = "items"
	colText          = "text"
	colBlanks        = "blanks"
	colDistractors   = "distractors"
	colData          = "data"

	colStudentName    = "Student Name"
	colClass          = "Class"
	colQuizTitle      = "Quiz Title"
	colScore          = "Score"
	colCorrectCount   = "correctCount"
	colTotalQuestions = "Total Questions"
	colTimeTaken      = "timeTaken"
	colSubmittedAt    = "Submitted At"
	colAnswers        = "answers"
	colVerdicts       = "verdicts"

	colUsername     = "username"
	colPassword     = "password"
	colFullName     = "fullName"
	colRole         = "role"
	colTeacherClass = "class"
)

const (
	sheetTrue  = "TRUE"
	sheetFalse = "FALSE"

	optionSeparator = "|"
)
