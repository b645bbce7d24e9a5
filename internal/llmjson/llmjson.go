// Package llmjson turns raw generative-text responses into validated domain values.
// Anything that does not match the expected shape exactly is rejected.
package llmjson

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"career-coach-backend/internal/domain"

	"github.com/go-playground/validator/v10"
)

// ErrMalformed wraps every parse or validation failure.
var ErrMalformed = errors.New("malformed provider output")

var (
	fenceRe  = regexp.MustCompile("```(?:json|JSON)?\\s*\\n?")
	validate = validator.New()
)

// StripCodeFences removes markdown code fences the model may wrap JSON in.
func StripCodeFences(raw string) string {
	return strings.TrimSpace(fenceRe.ReplaceAllString(raw, ""))
}

func decodeStrict(raw string, out any) error {
	cleaned := StripCodeFences(raw)
	if cleaned == "" {
		return fmt.Errorf("%w: empty response", ErrMalformed)
	}

	dec := json.NewDecoder(bytes.NewReader([]byte(cleaned)))
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	// Trailing content after the object means the model added prose.
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return fmt.Errorf("%w: unexpected trailing content", ErrMalformed)
	}
	if err := validate.Struct(out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return nil
}

type salaryRangeWire struct {
	Role     string   `json:"role" validate:"required"`
	Min      *float64 `json:"min" validate:"required,gte=0"`
	Max      *float64 `json:"max" validate:"required,gte=0"`
	Median   *float64 `json:"median" validate:"required,gte=0"`
	Location string   `json:"location"`
}

type insightWire struct {
	SalaryRanges      []salaryRangeWire `json:"salaryRanges" validate:"required,dive"`
	GrowthRate        *float64          `json:"growthRate" validate:"required"`
	DemandLevel       string            `json:"demandLevel" validate:"required"`
	TopSkills         []string          `json:"topSkills" validate:"required,dive,required"`
	MarketOutlook     string            `json:"marketOutlook" validate:"required"`
	KeyTrends         []string          `json:"keyTrends" validate:"required,dive,required"`
	RecommendedSkills []string          `json:"recommendedSkills" validate:"required,dive,required"`
}

// ParseInsight validates an industry insight response and normalizes the
// enumerated fields to the store vocabulary.
func ParseInsight(raw string) (*domain.InsightPayload, error) {
	var w insightWire
	if err := decodeStrict(raw, &w); err != nil {
		return nil, err
	}

	demand, ok := domain.ParseDemandLevel(w.DemandLevel)
	if !ok {
		return nil, fmt.Errorf("%w: unknown demandLevel %q", ErrMalformed, w.DemandLevel)
	}
	outlook, ok := domain.ParseMarketOutlook(w.MarketOutlook)
	if !ok {
		return nil, fmt.Errorf("%w: unknown marketOutlook %q", ErrMalformed, w.MarketOutlook)
	}

	ranges := make([]domain.SalaryRange, 0, len(w.SalaryRanges))
	for _, r := range w.SalaryRanges {
		if *r.Min > *r.Max || *r.Median < *r.Min || *r.Median > *r.Max {
			return nil, fmt.Errorf("%w: salary range for %q is not ordered min<=median<=max", ErrMalformed, r.Role)
		}
		ranges = append(ranges, domain.SalaryRange{
			Role:     r.Role,
			Min:      *r.Min,
			Max:      *r.Max,
			Median:   *r.Median,
			Location: r.Location,
		})
	}

	return &domain.InsightPayload{
		SalaryRanges:      ranges,
		GrowthRate:        *w.GrowthRate,
		DemandLevel:       demand,
		TopSkills:         w.TopSkills,
		MarketOutlook:     outlook,
		KeyTrends:         w.KeyTrends,
		RecommendedSkills: w.RecommendedSkills,
	}, nil
}

type quizQuestionWire struct {
	Question      string   `json:"question" validate:"required"`
	Options       []string `json:"options" validate:"required,min=2,dive,required"`
	CorrectAnswer string   `json:"correctAnswer" validate:"required"`
	Explanation   string   `json:"explanation"`
}

type quizWire struct {
	Questions []quizQuestionWire `json:"questions" validate:"required,min=1,dive"`
}

// ParseQuiz validates a generated interview quiz. The correct answer must be one
// of the offered options.
func ParseQuiz(raw string) ([]domain.QuizQuestion, error) {
	var w quizWire
	if err := decodeStrict(raw, &w); err != nil {
		return nil, err
	}

	out := make([]domain.QuizQuestion, 0, len(w.Questions))
	for i, q := range w.Questions {
		if !contains(q.Options, q.CorrectAnswer) {
			return nil, fmt.Errorf("%w: question %d correct answer is not an option", ErrMalformed, i+1)
		}
		out = append(out, domain.QuizQuestion{
			Question:      q.Question,
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswer,
			Explanation:   q.Explanation,
		})
	}
	return out, nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
