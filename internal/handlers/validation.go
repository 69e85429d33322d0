package handlers

import (
	"errors"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/yukikurage/project-tracker-api/internal/models"
	"github.com/yukikurage/project-tracker-api/internal/utils"
)

var errValidatorEngine = errors.New("binding validator is not go-playground/validator")

// RegisterValidators adds the custom binding tags used by request DTOs.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errValidatorEngine
	}

	if err := v.RegisterValidation("priority", validatePriority); err != nil {
		return err
	}
	return v.RegisterValidation("timestamp19", validateTimestamp)
}

func validatePriority(fl validator.FieldLevel) bool {
	return models.TaskPriority(fl.Field().String()).Valid()
}

// validateTimestamp accepts "YYYY-MM-DD hh:mm:ss".
func validateTimestamp(fl validator.FieldLevel) bool {
	_, err := utils.ParseTimestamp(fl.Field().String())
	return err == nil
}
