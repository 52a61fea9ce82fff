package prediction

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/wonny/matchday/internal/contracts"
)

// toValidationError converts the first validator failure into a contracts.ValidationError
func toValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &contracts.ValidationError{Field: "request", Message: err.Error()}
	}

	fe := verrs[0]
	field := fieldPath(fe.Namespace())

	switch fe.Tag() {
	case "notblank":
		return &contracts.ValidationError{Field: field, Message: "must not be empty"}
	case "finite":
		return &contracts.ValidationError{Field: field, Message: "must be a finite number"}
	case "oneof":
		return &contracts.ValidationError{Field: field, Message: fmt.Sprintf("must be 0 or 1, got %v", fe.Value())}
	default:
		return &contracts.ValidationError{Field: field, Message: fmt.Sprintf("failed %s validation", fe.Tag())}
	}
}

// fieldPath drops the struct name prefix: "MatchRequest.squad_a[Saka]" -> "squad_a[Saka]"
func fieldPath(ns string) string {
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}
