package cart

import (
	"fmt"

	"github.com/go-faster/errors"
)

// Kind classifies a validation failure.
type Kind int

const (
	InvalidPrice Kind = iota + 1
	InvalidStock
	InvalidQuantity
	InvalidImageReference
	InvalidName
)

func (k Kind) String() string {
	switch k {
	case InvalidPrice:
		return "InvalidPrice"
	case InvalidStock:
		return "InvalidStock"
	case InvalidQuantity:
		return "InvalidQuantity"
	case InvalidImageReference:
		return "InvalidImageReference"
	case InvalidName:
		return "InvalidName"
	default:
		return "Unknown"
	}
}

// Sentinels matched by errors.Is against any *ValidationError of that kind.
var (
	ErrInvalidPrice          = errors.New("invalid price")
	ErrInvalidStock          = errors.New("invalid stock")
	ErrInvalidQuantity       = errors.New("invalid quantity")
	ErrInvalidImageReference = errors.New("invalid image reference")
	ErrInvalidName           = errors.New("invalid name")
)

func (k Kind) sentinel() error {
	switch k {
	case InvalidPrice:
		return ErrInvalidPrice
	case InvalidStock:
		return ErrInvalidStock
	case InvalidQuantity:
		return ErrInvalidQuantity
	case InvalidImageReference:
		return ErrInvalidImageReference
	case InvalidName:
		return ErrInvalidName
	default:
		return nil
	}
}

// ValidationError reports why a record could not become a LineItem.
type ValidationError struct {
	Kind   Kind
	Field  string
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("%s: %s %s", e.Kind, e.Field, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Is lets errors.Is(err, ErrInvalidPrice) match without unwrapping to the
// sentinel explicitly.
func (e *ValidationError) Is(target error) bool {
	return target == e.Kind.sentinel()
}

func (e *ValidationError) Unwrap() error { return e.Err }

func newValidationError(kind Kind, field, reason string) *ValidationError {
	return &ValidationError{Kind: kind, Field: field, Reason: reason}
}

// KindOf extracts the validation kind from err, or 0 if err is not a
// validation failure.
func KindOf(err error) Kind {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Kind
	}
	return 0
}
