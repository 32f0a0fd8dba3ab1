package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/roach88/scalediv/internal/calendar"
	"github.com/roach88/scalediv/internal/engine"
	"github.com/roach88/scalediv/internal/scale"
)

// Validation error codes (E200-E299)
const (
	ErrSyntax        = "E201" // file is not valid YAML or CUE
	ErrSchema        = "E202" // schema violation
	ErrEmptyName     = "E203" // axis name is empty
	ErrDuplicateName = "E204" // axis name used twice
	ErrInvalidBound  = "E205" // bound is not a number or date
	ErrUnknownZone   = "E206" // time zone not found
	ErrInvalidOption = "E207" // unknown engine, attribute or week numbering
	ErrNoAxes        = "E208" // file defines no axes
)

// ValidationError represents one problem in an axes file.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
	Line    int    `json:"line,omitempty"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("[%s] line %d: %s: %s", e.Code, e.Line, e.Field, e.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// ValidationErrors collects all problems found in a file.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (errs ValidationErrors) Error() string {
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "\n")
}

// Validate runs the semantic checks on a decoded file. It returns all
// errors found, in axis order.
func Validate(f *File) []ValidationError {
	var errs []ValidationError

	if len(f.Axes) == 0 {
		return []ValidationError{{
			Field:   "axes",
			Message: "at least one axis is required",
			Code:    ErrNoAxes,
		}}
	}

	seen := make(map[string]int)
	for i := range f.Axes {
		errs = append(errs, validateAxis(&f.Axes[i], i, seen)...)
	}
	return errs
}

func validateAxis(a *Axis, i int, seen map[string]int) []ValidationError {
	var errs []ValidationError
	field := func(name string) string {
		return fmt.Sprintf("axes[%d].%s", i, name)
	}

	if a.Name == "" {
		errs = append(errs, ValidationError{
			Field:   field("name"),
			Message: "name is required",
			Code:    ErrEmptyName,
		})
	} else if first, ok := seen[a.Name]; ok {
		errs = append(errs, ValidationError{
			Field:   field("name"),
			Message: fmt.Sprintf("duplicate axis name %q (first used by axes[%d])", a.Name, first),
			Code:    ErrDuplicateName,
		})
	} else {
		seen[a.Name] = i
	}

	kind, err := engine.ParseKind(a.Engine)
	if err != nil {
		errs = append(errs, ValidationError{
			Field:   field("engine"),
			Message: err.Error(),
			Code:    ErrInvalidOption,
		})
	}

	if _, err := scale.ParseAttributes(a.Attributes); err != nil {
		errs = append(errs, ValidationError{
			Field:   field("attributes"),
			Message: err.Error(),
			Code:    ErrInvalidOption,
		})
	}

	if _, err := calendar.ParseWeek0(a.Week0); err != nil {
		errs = append(errs, ValidationError{
			Field:   field("week0"),
			Message: err.Error(),
			Code:    ErrInvalidOption,
		})
	}

	loc := time.UTC
	if a.Timezone != "" {
		l, err := time.LoadLocation(a.Timezone)
		if err != nil {
			errs = append(errs, ValidationError{
				Field:   field("timezone"),
				Message: fmt.Sprintf("unknown time zone %q", a.Timezone),
				Code:    ErrUnknownZone,
			})
		} else {
			loc = l
		}
	}

	for _, b := range []struct {
		name  string
		bound Bound
	}{{"min", a.Min}, {"max", a.Max}} {
		if _, err := b.bound.Resolve(kind, loc); err != nil {
			errs = append(errs, ValidationError{
				Field:   field(b.name),
				Message: err.Error(),
				Code:    ErrInvalidBound,
			})
		}
	}

	return errs
}
