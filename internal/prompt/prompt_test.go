package prompt

import (
	"testing"

	"career-coach-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImproveResume(t *testing.T) {
	out, err := ImproveResume("tech-software-development", "experience", "Built APIs")
	require.NoError(t, err)
	assert.Contains(t, out, "improve the following experience description for a tech-software-development professional")
	assert.Contains(t, out, `Current content: "Built APIs"`)
	assert.Contains(t, out, "single paragraph")
}

func TestIndustryInsight(t *testing.T) {
	out, err := IndustryInsight("Finance")
	require.NoError(t, err)
	assert.Contains(t, out, "Analyze the current state of the Finance industry")
	assert.Contains(t, out, `"salaryRanges"`)
	assert.Contains(t, out, "Return ONLY the JSON")
}

func TestInterviewQuiz(t *testing.T) {
	t.Run("with skills", func(t *testing.T) {
		out, err := InterviewQuiz("Tech", []string{"Go", "SQL"})
		require.NoError(t, err)
		assert.Contains(t, out, "Generate 10 technical interview questions for a Tech professional with expertise in Go, SQL.")
	})

	t.Run("without skills", func(t *testing.T) {
		out, err := InterviewQuiz("Tech", nil)
		require.NoError(t, err)
		assert.Contains(t, out, "for a Tech professional.")
		assert.NotContains(t, out, "expertise")
	})
}

func TestImprovementTip(t *testing.T) {
	out, err := ImprovementTip("Tech", []domain.QuestionResult{
		{Question: "What is a goroutine?", Answer: "A lightweight thread", UserAnswer: "A process"},
	})
	require.NoError(t, err)
	assert.Contains(t, out, `Question: "What is a goroutine?"`)
	assert.Contains(t, out, `User Answer: "A process"`)
}
