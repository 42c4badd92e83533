package entity

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// validate checks struct tags that mirror column constraints (not null, length, enumerations).
var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidationError wraps validator failures with the table they were raised for.
type ValidationError struct {
	Table  string
	Fields []string
	err    error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: invalid fields %s: %v", e.Table, strings.Join(e.Fields, ", "), e.err)
}

func (e *ValidationError) Unwrap() error {
	return e.err
}

func validateRecord(table string, record interface{}) error {
	err := validate.Struct(record)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%s: %w", table, err)
	}
	fields := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields = append(fields, fe.Field())
	}
	return &ValidationError{Table: table, Fields: fields, err: err}
}

// Truncate cuts value to at most limit characters.
func Truncate(value string, limit int) string {
	if limit <= 0 {
		return ""
	}
	if utf8.RuneCountInString(value) <= limit {
		return value
	}
	runes := []rune(value)
	return string(runes[:limit])
}
