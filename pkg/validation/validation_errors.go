package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldLabels maps struct field names to user-friendly labels
var FieldLabels = map[string]string{
	// Profile fields
	"Industry":   "Industry",
	"Experience": "Years of experience",
	"Skills":     "Skills",
	"Bio":        "Professional bio",

	// Resume fields
	"Content": "Resume content",
	"Current": "Current text",
	"Type":    "Section type",

	// Assessment fields
	"Questions": "Questions",
	"Answers":   "Answers",
	"Score":     "Score",
}

// FormatValidationErrors converts validator.ValidationErrors to user-friendly messages
func FormatValidationErrors(err error) []string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		// Not a validation error, return generic message
		return []string{err.Error()}
	}

	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		messages = append(messages, formatSingleError(e))
	}
	return messages
}

// formatSingleError formats a single validation error to a user-friendly message
func formatSingleError(e validator.FieldError) string {
	label := getFieldLabel(e.Field())
	param := e.Param()

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s: is required", label)

	case "min", "gte":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s: must be at least %s characters", label, param)
		}
		return fmt.Sprintf("%s: must be at least %s", label, param)

	case "max", "lte":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s: must be at most %s characters", label, param)
		}
		return fmt.Sprintf("%s: must be at most %s", label, param)

	case "oneof":
		return fmt.Sprintf("%s: must be one of: %s", label, strings.ReplaceAll(param, " ", ", "))

	case "industry_label":
		return fmt.Sprintf("%s: must be a non-empty label of at most 100 characters", label)

	case "section_type":
		return fmt.Sprintf("%s: must be one of: %s", label, strings.Join(SectionTypes, ", "))

	case "no_emoji":
		return fmt.Sprintf("%s: must not contain emoji or special symbols", label)

	default:
		return fmt.Sprintf("%s: failed validation (%s)", label, e.Tag())
	}
}

// getFieldLabel returns the user-friendly label for a field
func getFieldLabel(fieldName string) string {
	if label, ok := FieldLabels[fieldName]; ok {
		return label
	}
	return formatCamelCase(fieldName)
}

// formatCamelCase converts CamelCase to spaced words
func formatCamelCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result.WriteRune(' ')
		}
		result.WriteRune(r)
	}
	return result.String()
}
