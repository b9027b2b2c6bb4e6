package domain

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// validationMessages overrides the generated message for a json field and tag pair.
var validationMessages = map[string]string{
	"email.required":           "Invalid email format",
	"email.email":              "Invalid email format",
	"password.required":        "Password is required",
	"password.min":             "Password must be at least 6 characters",
	"first_name.required":      "First name is required",
	"last_name.required":       "Last name is required",
	"title.required":           "Title is required",
	"description.required":     "Description is required",
	"requirements.required":    "At least one requirement is needed",
	"requirements.min":         "At least one requirement is needed",
	"location.required":        "Location is required",
	"department.required":      "Department is required",
	"min.gte":                  "Minimum salary cannot be negative",
	"max.gte":                  "Maximum salary cannot be negative",
	"currency.len":             "Currency must be 3 characters",
	"max.salary_range":         "Maximum salary must be greater than or equal to minimum",
	"vacancy_id.required":      "Vacancy ID is required",
	"resume.required":          "Resume URL is required",
	"application_id.required":  "Application ID is required",
	"scheduled_at.required":    "Invalid date format",
	"scheduled_at.datetime":    "Invalid date format",
	"duration.gte":             "Duration must be at least 15 minutes",
	"interviewer_ids.required": "At least one interviewer is required",
	"interviewer_ids.min":      "At least one interviewer is required",
	"interview_id.required":    "Interview ID is required",
	"comments.required":        "Comments must be at least 10 characters",
	"comments.min":             "Comments must be at least 10 characters",
	"rating.gte":               "Rating must be at least 1",
	"rating.lte":               "Rating cannot exceed 5",
}

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New()
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "" || name == "-" {
				return field.Name
			}
			return name
		})
		_ = v.RegisterValidation("url_or_empty", validateURLOrEmpty)
		v.RegisterStructValidation(validateSalaryRange, Salary{})
		validate = v
	})
	return validate
}

// Validate checks input against its validate tags and folds every violation
// into a single ValidationError whose message lists them separated by ", ".
func Validate(input any) error {
	err := validatorInstance().Struct(input)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("failed to validate input: %w", err)
	}

	messages := make([]string, 0, len(fieldErrs))
	seen := make(map[string]bool, len(fieldErrs))
	for _, fe := range fieldErrs {
		msg := fieldMessage(fe)
		if seen[msg] {
			continue
		}
		seen[msg] = true
		messages = append(messages, msg)
	}

	return NewValidationError(strings.Join(messages, ", "))
}

func fieldMessage(fe validator.FieldError) string {
	if msg, ok := validationMessages[fe.Field()+"."+fe.Tag()]; ok {
		return msg
	}

	field := humanize(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min", "gte":
		switch fe.Kind() {
		case reflect.String:
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		case reflect.Slice, reflect.Array:
			return fmt.Sprintf("%s must contain at least %s items", field, fe.Param())
		default:
			return fmt.Sprintf("%s must be at least %s", field, fe.Param())
		}
	case "max", "lte":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s cannot exceed %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s cannot exceed %s", field, fe.Param())
	case "len":
		return fmt.Sprintf("%s must be %s characters", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "email":
		return "Invalid email format"
	case "url_or_empty":
		return fmt.Sprintf("%s must be a valid URL", field)
	case "datetime":
		return "Invalid date format"
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

func humanize(field string) string {
	s := strings.ReplaceAll(field, "_", " ")
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func validateURLOrEmpty(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	u, err := url.ParseRequestURI(value)
	return err == nil && u.Scheme != "" && u.Host != ""
}

func validateSalaryRange(sl validator.StructLevel) {
	salary, ok := sl.Current().Interface().(Salary)
	if !ok {
		return
	}
	if salary.Max < salary.Min {
		sl.ReportError(salary.Max, "max", "Max", "salary_range", "")
	}
}
