package validator

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// BusinessValidator handles rule checks that go beyond struct tags
type BusinessValidator struct {
	validate *validator.Validate
}

func NewBusinessValidator(validate *validator.Validate) *BusinessValidator {
	return &BusinessValidator{validate: validate}
}

// Validate validates business rules for any struct
func (bv *BusinessValidator) Validate(s interface{}) ValidationErrors {
	if err := bv.validate.Struct(s); err != nil {
		return ToValidationErrors(err)
	}
	return nil
}

// ValidateUserCreate validates user registration business rules
func (bv *BusinessValidator) ValidateUserCreate(req *UserCreateRequest) ValidationErrors {
	errors := bv.Validate(req)
	errors = append(errors, validateNotBlank("first_name", req.FirstName)...)
	errors = append(errors, validateNotBlank("last_name", req.LastName)...)
	return errors
}

// ValidateCourseCreate validates course creation business rules
func (bv *BusinessValidator) ValidateCourseCreate(req *CourseCreateRequest) ValidationErrors {
	errors := bv.Validate(req)
	errors = append(errors, validateNotBlank("title", req.Title)...)
	errors = append(errors, validateNotBlank("description", req.Description)...)
	return errors
}

// ValidateLessonCreate validates lesson creation business rules
func (bv *BusinessValidator) ValidateLessonCreate(req *LessonCreateRequest) ValidationErrors {
	errors := bv.Validate(req)
	errors = append(errors, validateNotBlank("title", req.Title)...)
	errors = append(errors, validateNotBlank("content", req.Content)...)
	return errors
}

// validateNotBlank rejects values that pass required but are only whitespace
func validateNotBlank(field, value string) ValidationErrors {
	if value != "" && strings.TrimSpace(value) == "" {
		return ValidationErrors{{
			Field:   field,
			Message: "cannot be blank",
			Rule:    "not_blank",
		}}
	}
	return nil
}
