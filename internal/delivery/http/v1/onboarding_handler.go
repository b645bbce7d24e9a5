package v1

import (
	"net/http"

	"career-coach-backend/internal/delivery/http/response"
	"career-coach-backend/internal/domain"
	"career-coach-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type OnboardingHandler struct {
	onboardingUC domain.OnboardingUsecase
}

func NewOnboardingHandler(r *gin.RouterGroup, onboardingUC domain.OnboardingUsecase) {
	handler := &OnboardingHandler{onboardingUC: onboardingUC}

	onboarding := r.Group("/onboarding")
	{
		onboarding.GET("/status", handler.GetStatus)
	}

	profile := r.Group("/profile")
	{
		profile.GET("", handler.GetProfile)
		profile.PUT("", handler.UpdateProfile)
	}
}

// GetStatus godoc
// @Summary      Get onboarding status
// @Description  Check if the current user has picked an industry
// @Tags         onboarding
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.OnboardingStatus}
// @Failure      401  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /onboarding/status [get]
// @Security     BearerAuth
func (h *OnboardingHandler) GetStatus(c *gin.Context) {
	status, err := h.onboardingUC.GetOnboardingStatus(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Onboarding status retrieved", status)
}

// GetProfile godoc
// @Summary      Get profile
// @Tags         onboarding
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.User}
// @Failure      401  {object}  response.Response
// @Router       /profile [get]
// @Security     BearerAuth
func (h *OnboardingHandler) GetProfile(c *gin.Context) {
	user, err := h.onboardingUC.GetProfile(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Profile retrieved", user)
}

// UpdateProfile godoc
// @Summary      Update profile
// @Description  Onboarding form and later edits. Creates the industry insight on first use of an industry.
// @Tags         onboarding
// @Accept       json
// @Produce      json
// @Param        request  body      domain.ProfileUpdateRequest  true  "Profile data"
// @Success      200      {object}  response.Response{data=domain.ProfileUpdateResult}
// @Failure      400      {object}  response.Response
// @Failure      401      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Failure      504      {object}  response.Response
// @Router       /profile [put]
// @Security     BearerAuth
func (h *OnboardingHandler) UpdateProfile(c *gin.Context) {
	var req domain.ProfileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	result, err := h.onboardingUC.UpdateProfile(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Profile updated successfully", result)
}
