package v1

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"career-coach-backend/internal/delivery/http/middleware"
	"career-coach-backend/internal/delivery/http/response"
	"career-coach-backend/internal/domain"
	"career-coach-backend/internal/scheduler"
	"career-coach-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubResumeUC struct {
	resume   *domain.Resume
	err      error
	improved string
}

func (s *stubResumeUC) SaveResume(ctx context.Context, content string) (*domain.Resume, error) {
	return &domain.Resume{ID: "r1", Content: content}, s.err
}

func (s *stubResumeUC) GetResume(ctx context.Context) (*domain.Resume, error) {
	return s.resume, s.err
}

func (s *stubResumeUC) ImproveWithAI(ctx context.Context, req *domain.ImproveRequest) (string, error) {
	return s.improved, s.err
}

type stubOnboardingUC struct {
	lastReq *domain.ProfileUpdateRequest
	err     error
}

func (s *stubOnboardingUC) UpdateProfile(ctx context.Context, req *domain.ProfileUpdateRequest) (*domain.ProfileUpdateResult, error) {
	s.lastReq = req
	if s.err != nil {
		return nil, s.err
	}
	industry := req.Industry
	return &domain.ProfileUpdateResult{User: &domain.User{ID: "u1", Industry: &industry}}, nil
}

func (s *stubOnboardingUC) GetOnboardingStatus(ctx context.Context) (*domain.OnboardingStatus, error) {
	return &domain.OnboardingStatus{IsOnboarded: true}, s.err
}

func (s *stubOnboardingUC) GetProfile(ctx context.Context) (*domain.User, error) {
	return &domain.User{ID: "u1"}, s.err
}

type stubRefresher struct {
	results []domain.RefreshResult
	err     error
}

func (s *stubRefresher) RunNow(ctx context.Context) ([]domain.RefreshResult, error) {
	return s.results, s.err
}

func newTestEngine() (*gin.Engine, *gin.RouterGroup) {
	r := gin.New()
	r.Use(middleware.ErrorHandler())
	g := r.Group("/v1")
	g.Use(func(c *gin.Context) {
		ctx := context.WithValue(c.Request.Context(), domain.KeyExternalID, "ext-1")
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})
	return r, g
}

func noLimit(c *gin.Context) { c.Next() }

func do(r http.Handler, method, path, body string) (*httptest.ResponseRecorder, response.Response) {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp response.Response
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return w, resp
}

func TestResumeHandler(t *testing.T) {
	t.Run("Should return null data when no resume exists", func(t *testing.T) {
		r, g := newTestEngine()
		NewResumeHandler(g, &stubResumeUC{}, noLimit)

		w, resp := do(r, http.MethodGet, "/v1/resume", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, resp.Success)
		assert.Equal(t, "No resume yet", resp.Message)
		assert.Nil(t, resp.Data)
	})

	t.Run("Should render save failures", func(t *testing.T) {
		r, g := newTestEngine()
		NewResumeHandler(g, &stubResumeUC{err: apperror.SaveFailed("Failed to save resume", assert.AnError)}, noLimit)

		w, resp := do(r, http.MethodPut, "/v1/resume", `{"content":"# Me"}`)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.False(t, resp.Success)
		assert.Equal(t, "Failed to save resume", resp.Message)
	})

	t.Run("Should return improved content", func(t *testing.T) {
		r, g := newTestEngine()
		NewResumeHandler(g, &stubResumeUC{improved: "Shipped X."}, noLimit)

		w, resp := do(r, http.MethodPost, "/v1/resume/improve", `{"current":"did x","type":"experience"}`)

		require.Equal(t, http.StatusOK, w.Code)
		data := resp.Data.(map[string]interface{})
		assert.Equal(t, "Shipped X.", data["content"])
	})

	t.Run("Should map provider failure to 502", func(t *testing.T) {
		r, g := newTestEngine()
		NewResumeHandler(g, &stubResumeUC{err: apperror.ProviderFailure("Failed to improve content", assert.AnError)}, noLimit)

		w, resp := do(r, http.MethodPost, "/v1/resume/improve", `{"current":"did x","type":"experience"}`)

		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.Equal(t, "Failed to improve content", resp.Message)
	})
}

func TestOnboardingHandler(t *testing.T) {
	t.Run("Should reject malformed JSON", func(t *testing.T) {
		r, g := newTestEngine()
		uc := &stubOnboardingUC{}
		NewOnboardingHandler(g, uc)

		w, _ := do(r, http.MethodPut, "/v1/profile", `{"industry":`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Nil(t, uc.lastReq)
	})

	t.Run("Should pass the payload to the workflow", func(t *testing.T) {
		r, g := newTestEngine()
		uc := &stubOnboardingUC{}
		NewOnboardingHandler(g, uc)

		w, resp := do(r, http.MethodPut, "/v1/profile", `{"industry":"Tech","experience":3,"skills":["Go"],"bio":"hi"}`)

		require.Equal(t, http.StatusOK, w.Code)
		assert.True(t, resp.Success)
		require.NotNil(t, uc.lastReq)
		assert.Equal(t, "Tech", uc.lastReq.Industry)
		assert.Equal(t, []string{"Go"}, uc.lastReq.Skills)
	})

	t.Run("Should render conflict and timeout", func(t *testing.T) {
		for _, tc := range []struct {
			err  error
			code int
		}{
			{apperror.Conflict("Industry was updated concurrently, please try again"), http.StatusConflict},
			{apperror.Timeout("Failed to update profile", context.DeadlineExceeded), http.StatusGatewayTimeout},
		} {
			r, g := newTestEngine()
			NewOnboardingHandler(g, &stubOnboardingUC{err: tc.err})

			w, _ := do(r, http.MethodPut, "/v1/profile", `{"industry":"Tech"}`)
			assert.Equal(t, tc.code, w.Code)
		}
	})

	t.Run("Should return onboarding status", func(t *testing.T) {
		r, g := newTestEngine()
		NewOnboardingHandler(g, &stubOnboardingUC{})

		w, resp := do(r, http.MethodGet, "/v1/onboarding/status", "")

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, true, resp.Data.(map[string]interface{})["is_onboarded"])
	})
}

func TestInsightHandler_Refresh(t *testing.T) {
	newRouter := func(refresher InsightRefresher) *gin.Engine {
		r, g := newTestEngine()
		NewInsightHandler(g, g.Group("/internal"), nil, refresher)
		return r
	}

	t.Run("Should summarize partial failures", func(t *testing.T) {
		r := newRouter(&stubRefresher{results: []domain.RefreshResult{
			{Industry: "Tech"},
			{Industry: "Finance", Err: assert.AnError},
		}})

		w, resp := do(r, http.MethodPost, "/v1/internal/insights/refresh", "")

		require.Equal(t, http.StatusOK, w.Code)
		data := resp.Data.(map[string]interface{})
		assert.EqualValues(t, 2, data["industries"])
		assert.EqualValues(t, 1, data["updated"])
		assert.Equal(t, []interface{}{"Finance"}, data["failed"])
	})

	t.Run("Should report an overlapping run as conflict", func(t *testing.T) {
		r := newRouter(&stubRefresher{err: scheduler.ErrAlreadyRunning})

		w, _ := do(r, http.MethodPost, "/v1/internal/insights/refresh", "")

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}
