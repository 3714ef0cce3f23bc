package errors

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Field returns an error instance that wraps the original error with
// additional information. It returns `nil` if provided error is `nil`.
// Use this function to create an error instance describing a field/attribute
// error.
// This function might attach a stack trace information.
//
// Use Go naming for the field name. For example, SrcToken or FeePercent.
func Field(fieldName string, err error, description string, args ...interface{}) error {
	if isNilErr(err) {
		return nil
	}

	// If this error does not carry the stacktrace information yet, attach
	// one. This should be done only once per error at the lowest frame
	// possible (most inner wrap).
	if stackTrace(err) == nil {
		err = errors.WithStack(err)
	}

	if len(args) > 0 {
		description = fmt.Sprintf(description, args...)
	}

	return &fieldError{
		parent: err,
		field:  fieldName,
		desc:   description,
	}
}

// AppendField is a shortcut function to club together error(s) with a given
// field error.
func AppendField(errorsOrNil error, fieldName string, fieldErrOrNil error) error {
	return Append(errorsOrNil, Field(fieldName, fieldErrOrNil, ""))
}

type fieldError struct {
	parent error
	field  string
	desc   string
}

func (err *fieldError) Error() string {
	if err.desc == "" {
		return fmt.Sprintf("field %q: %s", err.field, err.parent)
	}
	return fmt.Sprintf("field %q: %s: %s", err.field, err.desc, err.parent)
}

// Cause implements the causer interface.
func (err *fieldError) Cause() error {
	return err.parent
}

// Unwrap allows the standard library errors package to walk the chain.
func (err *fieldError) Unwrap() error {
	return err.parent
}

// Field returns the name of the field this error was created for.
func (err *fieldError) Field() string {
	return err.field
}

// Append clubs together all provided errors. Nil values are ignored. If
// only one error remains it is returned unchanged.
//
// The combined error is the first error in the list for Is and Code
// purposes, so the most important validation should be appended first.
func Append(errs ...error) error {
	var all []error
	for _, e := range errs {
		if isNilErr(e) {
			continue
		}
		if m, ok := e.(*multiErr); ok {
			all = append(all, m.errs...)
			continue
		}
		all = append(all, e)
	}
	switch len(all) {
	case 0:
		return nil
	case 1:
		return all[0]
	default:
		return &multiErr{errs: all}
	}
}

type multiErr struct {
	errs []error
}

func (m *multiErr) Error() string {
	points := make([]string, len(m.errs))
	for i, err := range m.errs {
		points[i] = err.Error()
	}
	return fmt.Sprintf("%d errors occurred: %s", len(m.errs), strings.Join(points, "; "))
}

// Cause implements the causer interface.
func (m *multiErr) Cause() error {
	return m.errs[0]
}

// Unpack returns all errors clubbed together.
func (m *multiErr) Unpack() []error {
	return m.errs
}
