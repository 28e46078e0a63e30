package validator

import (
	"fmt"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

// quizDocumentSchema describes the JSON document accepted for a quiz before
// it is decoded. The per-type rules live in QuestionValidator.
const quizDocumentSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["id", "title", "classLevel", "timeLimit", "questions"],
  "properties": {
    "id": {"type": "string", "minLength": 1},
    "title": {"type": "string", "minLength": 1, "maxLength": 200},
    "classLevel": {"type": "string", "pattern": "^[1-5]$"},
    "category": {"type": "string"},
    "timeLimit": {"type": "integer", "minimum": 1, "maximum": 180},
    "createdAt": {"type": "string", "format": "date-time"},
    "accessCode": {"type": "string", "pattern": "^$|^[A-Za-z0-9]{6}$"},
    "requireCode": {"type": "boolean"},
    "questions": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["id", "type"],
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "type": {
            "enum": ["MCQ", "MULTIPLE_SELECT", "TRUE_FALSE", "SHORT_ANSWER", "MATCHING",
                     "DRAG_DROP", "ORDERING", "IMAGE_QUESTION", "DROPDOWN", "UNDERLINE"]
          },
          "image": {"type": "string", "format": "uri"},
          "explanation": {"type": "string"}
        }
      }
    }
  }
}`

var (
	quizSchemaOnce sync.Once
	quizSchema     *gojsonschema.Schema
	quizSchemaErr  error
)

func loadQuizSchema() (*gojsonschema.Schema, error) {
	quizSchemaOnce.Do(func() {
		quizSchema, quizSchemaErr = gojsonschema.NewSchema(gojsonschema.NewStringLoader(quizDocumentSchema))
	})
	return quizSchema, quizSchemaErr
}

// ValidateQuizDocument checks a raw quiz JSON document against the quiz
// schema. A document that is not JSON is reported as a single error on
// "(root)".
func ValidateQuizDocument(data []byte) ValidationErrors {
	var errs ValidationErrors

	schema, err := loadQuizSchema()
	if err != nil {
		errs.Add("(root)", fmt.Sprintf("schema unavailable: %v", err), nil)
		return errs
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		errs.Add("(root)", "must be a JSON object", nil)
		return errs
	}
	if result.Valid() {
		return nil
	}

	for _, re := range result.Errors() {
		errs = append(errs, ValidationError{
			Field:   re.Field(),
			Message: re.Description(),
			Value:   re.Value(),
			Rule:    re.Type(),
		})
	}
	return errs
}
