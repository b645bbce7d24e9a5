package validation_test

import (
	"testing"

	"career-coach-backend/internal/domain"
	"career-coach-backend/pkg/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileBioRejectsEmoji(t *testing.T) {
	v := validation.New()

	tests := []struct {
		name  string
		bio   string
		valid bool
	}{
		{"empty bio", "", true},
		{"plain text", "Backend engineer, 5 years in fintech (Go/SQL).", true},
		{"accented letters", "Ingénieure logicielle à Montréal", true},
		{"emoji", "Shipping code 🚀", false},
		{"pictograph symbol", "Coffee ☕ lover", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := &domain.ProfileUpdateRequest{Industry: "Tech", Experience: 1, Bio: tt.bio}
			err := v.Struct(req)
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, validation.FormatValidationErrors(err), "Professional bio: must not contain emoji or special symbols")
		})
	}
}

func TestIndustryLabel(t *testing.T) {
	v := validation.New()

	assert.NoError(t, v.Var("Finance & Banking", "industry_label"))
	assert.NoError(t, v.Var("tech-software-development", "industry_label"))
	assert.Error(t, v.Var("   ", "industry_label"))
	assert.Error(t, v.Var("Tech;DROP", "industry_label"))
}

func TestSectionType(t *testing.T) {
	v := validation.New()

	assert.NoError(t, v.Var("Experience", "section_type"))
	assert.Error(t, v.Var("hobbies", "section_type"))
}
