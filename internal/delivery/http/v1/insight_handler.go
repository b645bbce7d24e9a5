package v1

import (
	"context"
	"errors"
	"net/http"

	"career-coach-backend/internal/delivery/http/response"
	"career-coach-backend/internal/domain"
	"career-coach-backend/internal/scheduler"
	"career-coach-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

// InsightRefresher runs one refresh sweep, rejecting overlapping runs.
type InsightRefresher interface {
	RunNow(ctx context.Context) ([]domain.RefreshResult, error)
}

type InsightHandler struct {
	insightUC domain.InsightUsecase
	refresher InsightRefresher
}

// RefreshSummary is returned by the internal refresh trigger.
type RefreshSummary struct {
	Industries int      `json:"industries"`
	Updated    int      `json:"updated"`
	Failed     []string `json:"failed"`
}

func NewInsightHandler(protected *gin.RouterGroup, internal *gin.RouterGroup, insightUC domain.InsightUsecase, refresher InsightRefresher) {
	handler := &InsightHandler{insightUC: insightUC, refresher: refresher}

	protected.GET("/insights", handler.GetInsight)
	internal.POST("/insights/refresh", handler.Refresh)
}

// GetInsight godoc
// @Summary      Get industry insight
// @Description  Market insight shared by every user of the caller's industry
// @Tags         insights
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.IndustryInsight}
// @Failure      401  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /insights [get]
// @Security     BearerAuth
func (h *InsightHandler) GetInsight(c *gin.Context) {
	insight, err := h.insightUC.GetForUser(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Industry insight retrieved", insight)
}

// Refresh godoc
// @Summary      Refresh all industry insights
// @Description  Regenerates every stored industry. Called by an external scheduler.
// @Tags         internal
// @Produce      json
// @Param        X-Cron-Secret  header    string  true  "Shared cron secret"
// @Success      200            {object}  response.Response{data=RefreshSummary}
// @Failure      401            {object}  response.Response
// @Failure      409            {object}  response.Response
// @Router       /internal/insights/refresh [post]
func (h *InsightHandler) Refresh(c *gin.Context) {
	// The sweep outlives an impatient trigger client.
	results, err := h.refresher.RunNow(context.WithoutCancel(c.Request.Context()))
	if err != nil {
		if errors.Is(err, scheduler.ErrAlreadyRunning) {
			c.Error(apperror.Conflict("Insight refresh already running"))
			return
		}
		c.Error(err)
		return
	}

	failed := scheduler.Failed(results)
	if failed == nil {
		failed = []string{}
	}
	summary := RefreshSummary{
		Industries: len(results),
		Updated:    len(results) - len(failed),
		Failed:     failed,
	}

	msg := "Insight refresh completed"
	if len(failed) > 0 {
		msg = "Insight refresh completed with failures"
	}
	response.Success(c, http.StatusOK, msg, summary)
}
