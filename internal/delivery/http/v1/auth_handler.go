package v1

import (
	"net/http"

	"career-coach-backend/internal/delivery/http/response"
	"career-coach-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authUC domain.AuthUsecase
}

// Sign-in and sign-up are handled by the identity provider; the API only
// exposes the resolved local user.
func NewAuthHandler(protected *gin.RouterGroup, authUC domain.AuthUsecase) {
	handler := &AuthHandler{authUC: authUC}

	protectedAuth := protected.Group("/auth")
	{
		protectedAuth.GET("/me", handler.Me)
	}
}

// Me godoc
// @Summary      Get current user
// @Description  Returns the local user record of the authenticated caller
// @Tags         auth
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.User}
// @Failure      401  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /auth/me [get]
// @Security     BearerAuth
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.authUC.CurrentUser(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "User retrieved", user)
}
