package v1

import (
	"net/http"

	"career-coach-backend/internal/delivery/http/response"
	"career-coach-backend/internal/domain"
	"career-coach-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type ResumeHandler struct {
	resumeUC domain.ResumeUsecase
}

func NewResumeHandler(r *gin.RouterGroup, resumeUC domain.ResumeUsecase, aiLimit gin.HandlerFunc) {
	handler := &ResumeHandler{resumeUC: resumeUC}

	resume := r.Group("/resume")
	{
		resume.GET("", handler.GetResume)
		resume.PUT("", handler.SaveResume)
		resume.POST("/improve", aiLimit, handler.Improve)
	}
}

// GetResume godoc
// @Summary      Get resume
// @Description  Returns the saved resume, or null data when none exists yet
// @Tags         resume
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.Resume}
// @Failure      401  {object}  response.Response
// @Router       /resume [get]
// @Security     BearerAuth
func (h *ResumeHandler) GetResume(c *gin.Context) {
	resume, err := h.resumeUC.GetResume(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	if resume == nil {
		response.Success(c, http.StatusOK, "No resume yet", nil)
		return
	}
	response.Success(c, http.StatusOK, "Resume retrieved", resume)
}

// SaveResume godoc
// @Summary      Save resume
// @Description  Replaces the resume content, creating it on first save
// @Tags         resume
// @Accept       json
// @Produce      json
// @Param        request  body      domain.SaveResumeRequest  true  "Resume content"
// @Success      200      {object}  response.Response{data=domain.Resume}
// @Failure      400      {object}  response.Response
// @Failure      500      {object}  response.Response
// @Router       /resume [put]
// @Security     BearerAuth
func (h *ResumeHandler) SaveResume(c *gin.Context) {
	var req domain.SaveResumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	resume, err := h.resumeUC.SaveResume(c.Request.Context(), req.Content)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Resume saved successfully", resume)
}

// Improve godoc
// @Summary      Improve a resume section with AI
// @Tags         resume
// @Accept       json
// @Produce      json
// @Param        request  body      domain.ImproveRequest  true  "Section to improve"
// @Success      200      {object}  response.Response{data=domain.ImproveResult}
// @Failure      400      {object}  response.Response
// @Failure      429      {object}  response.Response
// @Failure      502      {object}  response.Response
// @Router       /resume/improve [post]
// @Security     BearerAuth
func (h *ResumeHandler) Improve(c *gin.Context) {
	var req domain.ImproveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	content, err := h.resumeUC.ImproveWithAI(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Content improved", domain.ImproveResult{Content: content})
}
