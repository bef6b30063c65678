package calculation

import (
	"errors"
	"fmt"

	xdec "github.com/rpgo/fund-projection/pkg/decimal"
)

var (
	// ErrInvalidParameter marks input rejected before any arithmetic runs.
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrComputationFailed marks arithmetic that left the representable range.
	ErrComputationFailed = errors.New("computation failed")
	// ErrDivisionByZero is re-exported from the arithmetic helper.
	ErrDivisionByZero = xdec.ErrDivisionByZero
)

// ProjectionError describes a failed projection. Kind is one of the sentinel
// errors above and is what errors.Is matches against.
type ProjectionError struct {
	Kind    error
	Field   string
	Message string
}

func (e *ProjectionError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *ProjectionError) Unwrap() error { return e.Kind }

func invalid(field, format string, args ...any) error {
	return &ProjectionError{Kind: ErrInvalidParameter, Field: field, Message: fmt.Sprintf(format, args...)}
}

func failed(field, format string, args ...any) error {
	return &ProjectionError{Kind: ErrComputationFailed, Field: field, Message: fmt.Sprintf(format, args...)}
}

// wrapArith converts helper errors into ProjectionErrors at the point they surface.
func wrapArith(field string, err error) error {
	if err == nil {
		return nil
	}
	var pe *ProjectionError
	if errors.As(err, &pe) {
		return err
	}
	if errors.Is(err, xdec.ErrDivisionByZero) {
		return &ProjectionError{Kind: ErrDivisionByZero, Field: field, Message: "divisor is zero"}
	}
	return &ProjectionError{Kind: ErrComputationFailed, Field: field, Message: err.Error()}
}

// ErrorKind returns a short label for metrics and logs.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidParameter):
		return "invalid_parameter"
	case errors.Is(err, ErrDivisionByZero):
		return "division_by_zero"
	case errors.Is(err, ErrComputationFailed):
		return "computation_failed"
	default:
		return "unknown"
	}
}
