package http

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// Reusable error payload
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
type ErrorResponse struct {
	Error   string       `json:"error"`
	Details []FieldError `json:"details,omitempty"`
}

var (
	reHex32   = regexp.MustCompile(`^[a-f0-9]{32}$`)
	reNIC     = regexp.MustCompile(`^(?:\d{9}[VvXx]|\d{12})$`)
	reSLPhone = regexp.MustCompile(`^(?:\+94|0)\d{9}$`)
)

type CustomValidator struct{ v *validator.Validate }

func NewValidator() *CustomValidator {
	v := validator.New()

	// entity id = 32-char lowercase hex
	_ = v.RegisterValidation("hex32", func(fl validator.FieldLevel) bool {
		return reHex32.MatchString(fl.Field().String())
	})
	// Sri Lankan NIC: 9 digits + V/X (old) or 12 digits (new)
	_ = v.RegisterValidation("nic", func(fl validator.FieldLevel) bool {
		return reNIC.MatchString(fl.Field().String())
	})
	// local phone: 0XXXXXXXXX or +94XXXXXXXXX
	_ = v.RegisterValidation("slphone", func(fl validator.FieldLevel) bool {
		return reSLPhone.MatchString(fl.Field().String())
	})

	return &CustomValidator{v: v}
}

func (cv *CustomValidator) Validate(i any) error { return cv.v.Struct(i) }

// Map validator.ValidationErrors → []FieldError with readable messages.
func ToFieldErrors(err error) []FieldError {
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Field: "_", Message: err.Error()}}
	}
	out := make([]FieldError, 0, len(ve))
	for _, e := range ve {
		field := e.Field()
		switch e.Tag() {
		case "required":
			out = append(out, FieldError{Field: field, Message: "is required"})
		case "hex32":
			out = append(out, FieldError{Field: field, Message: "must be 32-char lowercase hex"})
		case "nic":
			out = append(out, FieldError{Field: field, Message: "must be a valid NIC number"})
		case "slphone":
			out = append(out, FieldError{Field: field, Message: "must be a valid phone number"})
		case "oneof":
			out = append(out, FieldError{Field: field, Message: "must be one of: " + e.Param()})
		case "gte":
			out = append(out, FieldError{Field: field, Message: "must be greater than or equal to " + e.Param()})
		case "lte":
			out = append(out, FieldError{Field: field, Message: "must be less than or equal to " + e.Param()})
		case "url":
			out = append(out, FieldError{Field: field, Message: "must be a valid URL"})
		default:
			out = append(out, FieldError{Field: field, Message: e.Tag() + " validation failed"})
		}
	}
	return out
}
