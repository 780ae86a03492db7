package web

import (
	"errors"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// MaxAccountIDLength matches the accounts.id column size.
const MaxAccountIDLength = 64

// ValidAccountID checks the "account" tag: 1 to 64 characters, no spaces.
var ValidAccountID validator.Func = func(fl validator.FieldLevel) bool {
	id, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}

	if id == "" || len(id) > MaxAccountIDLength {
		return false
	}

	return strings.IndexFunc(id, unicode.IsSpace) < 0
}

// RegisterValidators adds the custom tags to the gin binding validator.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("unexpected binding validator engine")
	}

	return v.RegisterValidation("account", ValidAccountID)
}
