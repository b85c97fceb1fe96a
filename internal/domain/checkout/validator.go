// internal/domain/checkout/validator.go
package checkout

import (
	"reflect"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/nyaruka/phonenumbers"
)

// DefaultPhoneRegion is assumed for phone numbers entered without a country code
const DefaultPhoneRegion = "RU"

// FieldErrors maps a form field to the message shown next to it
type FieldErrors map[string]string

// Empty reports whether validation passed
func (f FieldErrors) Empty() bool {
	return len(f) == 0
}

var messages = map[string]string{
	"name.trimmedmin":                "Name is required",
	"email.required":                 "E-mail is required",
	"email.email":                    "Invalid e-mail format",
	"phoneNumber.required":           "Phone number is required",
	"phoneNumber.phone":              "Check the phone number",
	"paymentMethod.required":         "Choose a payment method",
	"paymentMethod.payment_method":   "Choose a payment method",
	"deliveryMethod.required":        "Choose a delivery method",
	"deliveryMethod.delivery_method": "Choose a delivery method",
}

// Validator checks an OrderForm field by field
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a validator with the checkout rules registered
func NewValidator() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})

	// Registration only fails for empty tags or nil funcs.
	_ = v.RegisterValidation("trimmedmin", trimmedMin)
	_ = v.RegisterValidation("phone", possiblePhone)
	_ = v.RegisterValidation("payment_method", func(fl validator.FieldLevel) bool {
		return PaymentMethod(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("delivery_method", func(fl validator.FieldLevel) bool {
		return DeliveryMethod(fl.Field().String()).Valid()
	})

	return &Validator{validate: v}
}

// Validate returns one message per invalid field. An empty result means the
// form may be submitted.
func (v *Validator) Validate(form OrderForm) FieldErrors {
	errs := FieldErrors{}

	err := v.validate.Struct(form)
	if err == nil {
		return errs
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		errs["form"] = err.Error()
		return errs
	}

	for _, fe := range validationErrors {
		if _, seen := errs[fe.Field()]; seen {
			continue
		}
		errs[fe.Field()] = validationMessage(fe)
	}
	return errs
}

func validationMessage(fe validator.FieldError) string {
	if msg, ok := messages[fe.Field()+"."+fe.Tag()]; ok {
		return msg
	}
	return "is invalid"
}

func trimmedMin(fl validator.FieldLevel) bool {
	n, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return utf8.RuneCountInString(strings.TrimSpace(fl.Field().String())) >= n
}

func possiblePhone(fl validator.FieldLevel) bool {
	num, err := phonenumbers.Parse(fl.Field().String(), DefaultPhoneRegion)
	if err != nil {
		return false
	}
	return phonenumbers.IsPossibleNumber(num)
}
