package errors

import (
	"errors"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
)

type BadRequestError struct {
	msg string
}

func (e *BadRequestError) Error() string {
	return e.msg
}

func NewBadRequestError(text string) error {
	return &BadRequestError{text}
}

// TranslateValidatorError takes an error from the go-playground validator
// (internally a map of field errors) and flattens it into one
// user-facing error. Validator errors are otherwise not in a
// human-readable format.
func TranslateValidatorError(err error, trans ut.Translator) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	translated := validationErrors.Translate(trans)
	messages := make([]string, 0, len(translated))
	for _, message := range translated {
		messages = append(messages, message)
	}
	return NewBadRequestError(strings.Join(messages, " "))
}
