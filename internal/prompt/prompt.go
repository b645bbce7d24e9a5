// Package prompt renders the instructions sent to the generative-text provider.
package prompt

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"

	"career-coach-backend/internal/domain"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Templates are parsed once at package init.
var templates = template.Must(template.ParseFS(templateFS, "templates/*.tmpl"))

// QuizQuestionCount is the number of questions requested per mock interview.
const QuizQuestionCount = 10

func render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return strings.TrimSpace(buf.String()), nil
}

// ImproveResume asks for a rewrite of one resume section.
func ImproveResume(industry, sectionType, current string) (string, error) {
	return render("improve_resume.tmpl", struct {
		Industry, Type, Current string
	}{industry, sectionType, current})
}

// IndustryInsight asks for the strict JSON insight report of an industry.
func IndustryInsight(industry string) (string, error) {
	return render("industry_insight.tmpl", struct{ Industry string }{industry})
}

// InterviewQuiz asks for multiple-choice questions tailored to the user.
func InterviewQuiz(industry string, skills []string) (string, error) {
	return render("interview_quiz.tmpl", struct {
		Count    int
		Industry string
		Skills   string
	}{QuizQuestionCount, industry, strings.Join(skills, ", ")})
}

// ImprovementTip asks for advice based on the questions answered wrong.
func ImprovementTip(industry string, wrong []domain.QuestionResult) (string, error) {
	return render("improvement_tip.tmpl", struct {
		Industry string
		Wrong    []domain.QuestionResult
	}{industry, wrong})
}
