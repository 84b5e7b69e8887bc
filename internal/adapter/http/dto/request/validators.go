package request

import (
	"workorder_invoicing/internal/domain/entities"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators adds the custom binding rules to gin's validator engine.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("customer_class", validCustomerClass)
}

func validCustomerClass(fl validator.FieldLevel) bool {
	_, ok := entities.ParseCustomerClass(fl.Field().String())
	return ok
}
