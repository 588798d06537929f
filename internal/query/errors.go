package query

import (
	"errors"
	"fmt"
)

var (
	// ErrNoSession is returned by terminal calls on a builder created
	// without a session.
	ErrNoSession = errors.New("query: builder has no session")

	// ErrEmptyBulk is returned by InsertBulk for an empty record set.
	ErrEmptyBulk = errors.New("query: bulk insert needs at least one record")

	// ErrNotSequence is returned by InsertBulk when records is not a slice
	// or array.
	ErrNotSequence = errors.New("query: bulk records must be a slice or array")
)

// ValidationErrorCode categorizes builder misuse found by Validate.
type ValidationErrorCode string

const (
	// ErrCodeInvalidTarget indicates an empty keyspace or table name.
	ErrCodeInvalidTarget ValidationErrorCode = "INVALID_TARGET"

	// ErrCodeOrderOnWrite indicates ORDER BY on a non-SELECT statement.
	ErrCodeOrderOnWrite ValidationErrorCode = "ORDER_ON_WRITE"

	// ErrCodeOptionsOnSelect indicates USING options on a SELECT.
	ErrCodeOptionsOnSelect ValidationErrorCode = "OPTIONS_ON_SELECT"

	// ErrCodeTTLOnDelete indicates USING TTL on a DELETE.
	ErrCodeTTLOnDelete ValidationErrorCode = "TTL_ON_DELETE"

	// ErrCodeEmptyAssignments indicates an UPDATE with nothing to SET.
	ErrCodeEmptyAssignments ValidationErrorCode = "EMPTY_ASSIGNMENTS"

	// ErrCodeMissingWhere indicates an UPDATE or DELETE without conditions.
	ErrCodeMissingWhere ValidationErrorCode = "MISSING_WHERE"

	// ErrCodeJSONOnNonInsert indicates a JSON payload on a non-INSERT;
	// such a builder renders without its clauses.
	ErrCodeJSONOnNonInsert ValidationErrorCode = "JSON_ON_NON_INSERT"

	// ErrCodeInsertWithoutValues indicates an INSERT with no JSON payload.
	ErrCodeInsertWithoutValues ValidationErrorCode = "INSERT_WITHOUT_VALUES"
)

// ValidationError describes one piece of builder misuse.
type ValidationError struct {
	Code      ValidationErrorCode
	Message   string
	Operation Operation
	Target    string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (%s %s)", e.Code, e.Message, e.Operation, e.Target)
}

// IsValidationError returns true if err is or wraps a ValidationError.
// Works across errors.Join.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// HasValidationCode returns true if err contains a ValidationError with the
// given code.
func HasValidationCode(err error, code ValidationErrorCode) bool {
	if err == nil {
		return false
	}
	if ve, ok := err.(*ValidationError); ok {
		return ve.Code == code
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			if HasValidationCode(e, code) {
				return true
			}
		}
		return false
	}
	return HasValidationCode(errors.Unwrap(err), code)
}

// Validate reports operation-inappropriate builder state. It is opt-in:
// Build renders such state literally regardless. All problems are returned
// joined.
func (b Builder) Validate() error {
	var errs []error
	fail := func(code ValidationErrorCode, msg string) {
		errs = append(errs, &ValidationError{Code: code, Message: msg, Operation: b.op, Target: b.Target()})
	}

	if b.keyspace == "" || b.table == "" {
		fail(ErrCodeInvalidTarget, "keyspace and table must be non-empty")
	}
	if b.order != nil && b.op != Select {
		fail(ErrCodeOrderOnWrite, "ORDER BY is only valid on SELECT")
	}
	if len(b.options) > 0 && b.op == Select {
		fail(ErrCodeOptionsOnSelect, "USING options are not valid on SELECT")
	}
	if b.op == Delete {
		for _, opt := range b.options {
			if _, ok := opt.(UsingTTL); ok {
				fail(ErrCodeTTLOnDelete, "USING TTL is not valid on DELETE")
				break
			}
		}
	}
	if b.op == Update && len(b.assignments) == 0 {
		fail(ErrCodeEmptyAssignments, "UPDATE needs at least one assignment")
	}
	if (b.op == Update || b.op == Delete) && len(b.conditions) == 0 {
		fail(ErrCodeMissingWhere, "UPDATE and DELETE need a WHERE condition")
	}
	if b.jsonLead() && !b.op.isInsert() {
		fail(ErrCodeJSONOnNonInsert, "JSON payload is only rendered for INSERT")
	}
	if b.op.isInsert() && !b.jsonLead() {
		fail(ErrCodeInsertWithoutValues, "INSERT needs a JSON payload")
	}

	return errors.Join(errs...)
}
