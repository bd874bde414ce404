package utils

import (
	"main/model"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var Validate *validator.Validate

func InitValidator() {
	Validate = validator.New()
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("priority", ValidatePriorityRule)
	}
}

func ValidatePriorityRule(fl validator.FieldLevel) bool {
	return ValidatePriority(model.Priority(fl.Field().String()))
}

// ValidatePriority accepts the three known levels plus empty (callers
// default empty to medium).
func ValidatePriority(p model.Priority) bool {
	switch p {
	case model.PriorityLow, model.PriorityMedium, model.PriorityHigh, "":
		return true
	default:
		return false
	}
}
