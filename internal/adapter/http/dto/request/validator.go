package request

import (
	"reflect"
	"strings"

	"monitoring_tunggakan/internal/domain/entities"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	// Field names in messages follow the form field names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	validate.RegisterValidation("galang", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case entities.GalangUnset, entities.GalangYes, entities.GalangNo:
			return true
		}
		return false
	})
}

// Validate returns field -> message for every failed rule, or nil.
func Validate(s interface{}) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string]string{"": err.Error()}
	}

	errs := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			errs[fe.Field()] = "This field is required"
		case "galang":
			errs[fe.Field()] = "Galang must be Yes, No or empty"
		default:
			errs[fe.Field()] = "Invalid value"
		}
	}
	return errs
}
