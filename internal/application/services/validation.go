package services

import (
	"github.com/DanielPopoola/groupgate/internal/application"
	"github.com/go-playground/validator"
)

var validate = validator.New()

func validateCommand(cmd any) error {
	if err := validate.Struct(cmd); err != nil {
		return application.NewInvalidInputError(err)
	}
	return nil
}
