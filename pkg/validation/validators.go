package validation

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// Regex patterns
var (
	// Industry labels are short names such as "tech-software-development" or "Finance & Banking"
	industryRegex = regexp.MustCompile(`^[\p{L}0-9 .'/&(),+-]+$`)
)

// SectionTypes lists the resume sections the AI assist accepts
var SectionTypes = []string{"summary", "experience", "education", "project", "skills"}

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("industry_label", IndustryLabel)
	_ = v.RegisterValidation("section_type", SectionType)
	_ = v.RegisterValidation("no_emoji", NoEmoji)
}

// New returns a validator with the custom tags already registered
func New() *validator.Validate {
	v := validator.New()
	RegisterValidators(v)
	return v
}

// IndustryLabel validates a non-blank industry label of at most 100 characters
func IndustryLabel(fl validator.FieldLevel) bool {
	val := strings.TrimSpace(fl.Field().String())
	if val == "" || len([]rune(val)) > 100 {
		return false
	}
	return industryRegex.MatchString(val)
}

// SectionType validates the resume section type sent to the AI assist
func SectionType(fl validator.FieldLevel) bool {
	val := strings.ToLower(strings.TrimSpace(fl.Field().String()))
	for _, t := range SectionTypes {
		if val == t {
			return true
		}
	}
	return false
}

// NoEmoji validates that a string does not contain emoji characters
func NoEmoji(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	for _, r := range val {
		// Supplementary characters (mostly emoji/symbols)
		if r > 0x1F000 {
			return false
		}
		if unicode.In(r, unicode.So, unicode.Sk) { // Symbol, other / Symbol, modifier
			return false
		}
	}
	return true
}
