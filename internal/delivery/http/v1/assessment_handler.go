package v1

import (
	"net/http"

	"career-coach-backend/internal/delivery/http/response"
	"career-coach-backend/internal/domain"
	"career-coach-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type AssessmentHandler struct {
	assessmentUC domain.AssessmentUsecase
}

func NewAssessmentHandler(r *gin.RouterGroup, assessmentUC domain.AssessmentUsecase, aiLimit gin.HandlerFunc) {
	handler := &AssessmentHandler{assessmentUC: assessmentUC}

	interview := r.Group("/interview")
	{
		interview.POST("/quiz", aiLimit, handler.GenerateQuiz)
		interview.GET("/assessments", handler.List)
		interview.POST("/assessments", handler.Save)
	}
}

// GenerateQuiz godoc
// @Summary      Generate a mock interview quiz
// @Tags         interview
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.QuizQuestion}
// @Failure      400  {object}  response.Response
// @Failure      502  {object}  response.Response
// @Router       /interview/quiz [post]
// @Security     BearerAuth
func (h *AssessmentHandler) GenerateQuiz(c *gin.Context) {
	questions, err := h.assessmentUC.GenerateQuiz(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Quiz generated", questions)
}

// Save godoc
// @Summary      Save quiz answers
// @Description  Grades the answers and stores the assessment
// @Tags         interview
// @Accept       json
// @Produce      json
// @Param        request  body      domain.SaveAssessmentRequest  true  "Questions and answers"
// @Success      201      {object}  response.Response{data=domain.Assessment}
// @Failure      400      {object}  response.Response
// @Router       /interview/assessments [post]
// @Security     BearerAuth
func (h *AssessmentHandler) Save(c *gin.Context) {
	var req domain.SaveAssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	assessment, err := h.assessmentUC.SaveQuizResult(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Quiz result saved", assessment)
}

// List godoc
// @Summary      List assessments
// @Tags         interview
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.Assessment}
// @Router       /interview/assessments [get]
// @Security     BearerAuth
func (h *AssessmentHandler) List(c *gin.Context) {
	list, err := h.assessmentUC.ListAssessments(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Assessments retrieved", list)
}
