package dsl

import (
	"fmt"
	"strings"
)

// MalformedConditionError signals a condition whose operand count or
// shape does not fit its operator. It is a caller bug, not retryable.
type MalformedConditionError struct {
	msg string
}

func (e *MalformedConditionError) Error() string {
	return e.msg
}

func NewMalformedConditionError(format string, args ...interface{}) error {
	return &MalformedConditionError{msg: fmt.Sprintf(format, args...)}
}

// UnsupportedOperatorError signals an operator tag that is unknown or
// that Elasticsearch cannot express.
type UnsupportedOperatorError struct {
	Operator string
}

func (e *UnsupportedOperatorError) Error() string {
	return fmt.Sprintf("operator %q is not supported by elasticsearch", e.Operator)
}

func NewUnsupportedOperatorError(operator Operator) error {
	return &UnsupportedOperatorError{Operator: string(operator)}
}

// CompositeKeyUnsupportedError signals a multi-column IN condition.
// Elasticsearch has no composite-key membership test, and callers may
// want to detect this case programmatically rather than as a generic
// unsupported operator.
type CompositeKeyUnsupportedError struct {
	Operator string
	Columns  []string
}

func (e *CompositeKeyUnsupportedError) Error() string {
	return fmt.Sprintf("%s condition over multiple columns (%s) is not supported by elasticsearch",
		e.Operator, strings.Join(e.Columns, ", "))
}

func NewCompositeKeyUnsupportedError(operator Operator, columns []string) error {
	return &CompositeKeyUnsupportedError{Operator: string(operator), Columns: columns}
}
