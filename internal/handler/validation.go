package handler

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// daterange accepts the human-entered reservation date range: exactly two
// " - "-separated components. Parsing the timestamps themselves is left to the
// reservation service, which knows the layout.
func daterange(fl validator.FieldLevel) bool {
	return len(strings.Split(fl.Field().String(), " - ")) == 2
}

// RegisterValidation installs custom validations on Gin's binding engine.
func RegisterValidation() error {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		return v.RegisterValidation("daterange", daterange)
	}
	return fmt.Errorf("error getting validation engine")
}
