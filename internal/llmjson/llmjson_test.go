package llmjson

import (
	"testing"

	"career-coach-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validInsight = `{
  "salaryRanges": [
    {"role": "Software Engineer", "min": 80000, "max": 160000, "median": 120000, "location": "US"}
  ],
  "growthRate": 12.5,
  "demandLevel": "High",
  "topSkills": ["Go", "Kubernetes"],
  "marketOutlook": "Positive",
  "keyTrends": ["AI adoption"],
  "recommendedSkills": ["LLM integration"]
}`

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}```", `{"a":1}`},
		{"surrounding whitespace", "  \n```json {\"a\":1} ```\n", `{"a":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripCodeFences(tt.in))
		})
	}
}

func TestParseInsight(t *testing.T) {
	t.Run("valid payload is normalized", func(t *testing.T) {
		p, err := ParseInsight("```json\n" + validInsight + "\n```")
		require.NoError(t, err)
		assert.Equal(t, domain.DemandHigh, p.DemandLevel)
		assert.Equal(t, domain.OutlookPositive, p.MarketOutlook)
		assert.Equal(t, 12.5, p.GrowthRate)
		require.Len(t, p.SalaryRanges, 1)
		assert.Equal(t, 120000.0, p.SalaryRanges[0].Median)
		assert.Equal(t, []string{"Go", "Kubernetes"}, p.TopSkills)
	})

	bad := map[string]string{
		"not json":          "Here are your insights: none",
		"empty":             "```json\n```",
		"unknown field":     `{"salaryRanges":[],"growthRate":1,"demandLevel":"Low","topSkills":[],"marketOutlook":"Neutral","keyTrends":[],"recommendedSkills":[],"extra":true}`,
		"missing growth":    `{"salaryRanges":[],"demandLevel":"Low","topSkills":[],"marketOutlook":"Neutral","keyTrends":[],"recommendedSkills":[]}`,
		"bad demand":        `{"salaryRanges":[],"growthRate":1,"demandLevel":"Very High","topSkills":[],"marketOutlook":"Neutral","keyTrends":[],"recommendedSkills":[]}`,
		"bad outlook":       `{"salaryRanges":[],"growthRate":1,"demandLevel":"Low","topSkills":[],"marketOutlook":"Bullish","keyTrends":[],"recommendedSkills":[]}`,
		"wrong type":        `{"salaryRanges":[],"growthRate":"ten","demandLevel":"Low","topSkills":[],"marketOutlook":"Neutral","keyTrends":[],"recommendedSkills":[]}`,
		"unordered salary":  `{"salaryRanges":[{"role":"x","min":10,"max":5,"median":7,"location":"US"}],"growthRate":1,"demandLevel":"Low","topSkills":[],"marketOutlook":"Neutral","keyTrends":[],"recommendedSkills":[]}`,
		"trailing prose":    validInsight + "\nHope this helps!",
		"missing skill list": `{"salaryRanges":[],"growthRate":1,"demandLevel":"Low","marketOutlook":"Neutral","keyTrends":[],"recommendedSkills":[]}`,
	}
	for name, raw := range bad {
		t.Run(name, func(t *testing.T) {
			_, err := ParseInsight(raw)
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestParseQuiz(t *testing.T) {
	t.Run("valid quiz", func(t *testing.T) {
		raw := "```json\n" + `{"questions":[{"question":"2+2?","options":["3","4","5","6"],"correctAnswer":"4","explanation":"math"}]}` + "\n```"
		qs, err := ParseQuiz(raw)
		require.NoError(t, err)
		require.Len(t, qs, 1)
		assert.Equal(t, "4", qs[0].CorrectAnswer)
	})

	t.Run("answer not among options", func(t *testing.T) {
		_, err := ParseQuiz(`{"questions":[{"question":"2+2?","options":["3","5"],"correctAnswer":"4","explanation":""}]}`)
		assert.ErrorIs(t, err, ErrMalformed)
	})

	t.Run("no questions", func(t *testing.T) {
		_, err := ParseQuiz(`{"questions":[]}`)
		assert.ErrorIs(t, err, ErrMalformed)
	})
}
