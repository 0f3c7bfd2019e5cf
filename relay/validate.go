package relay

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/truemediaorg/reelrelay/model"
)

func NewValidator() *validator.Validate {
	validate := validator.New()
	// notblank ships with the library but isn't registered by default
	if err := validate.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	return validate
}

// ValidateRequest returns the reference with surrounding whitespace removed.
// Nothing else about it is touched: the provider takes codes, ids and URLs
// interchangeably.
func (r *Relay) ValidateRequest(req model.ResolutionRequest) (string, error) {
	if err := r.validate.Struct(req); err != nil {
		return "", r.InvalidRequest(err)
	}
	return strings.TrimSpace(req.Reference), nil
}

// InvalidRequest is for payloads rejected before they reach ValidateRequest,
// e.g. bodies that don't decode.
func (r *Relay) InvalidRequest(err error) *Error {
	r.metrics.RecordFailure(KindInvalidRequest)
	return newError(KindInvalidRequest, err)
}
