package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"career-coach-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeInsightUC struct {
	calls   atomic.Int32
	block   chan struct{}
	results []domain.RefreshResult
	err     error
}

func (f *fakeInsightUC) GetForUser(ctx context.Context) (*domain.IndustryInsight, error) {
	return nil, nil
}

func (f *fakeInsightUC) RefreshAll(ctx context.Context) ([]domain.RefreshResult, error) {
	f.calls.Add(1)
	if f.block != nil {
		<-f.block
	}
	return f.results, f.err
}

func TestRunNow_RejectsOverlap(t *testing.T) {
	uc := &fakeInsightUC{block: make(chan struct{})}
	s := New(uc, "")

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = s.RunNow(context.Background())
	}()

	require.Eventually(t, func() bool { return uc.calls.Load() == 1 }, time.Second, 5*time.Millisecond)

	_, err := s.RunNow(context.Background())
	assert.ErrorIs(t, err, ErrAlreadyRunning)

	close(uc.block)
	<-done

	_, err = s.RunNow(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, int32(2), uc.calls.Load())
}

func TestStart_InvalidSpec(t *testing.T) {
	s := New(&fakeInsightUC{}, "not a cron spec")
	err := s.Start(context.Background(), false)
	assert.Error(t, err)
}

func TestStart_RunOnStart(t *testing.T) {
	uc := &fakeInsightUC{results: []domain.RefreshResult{{Industry: "Tech"}}}
	s := New(uc, "0 0 * * 0")
	require.NoError(t, s.Start(context.Background(), true))
	defer s.Stop(time.Second)

	assert.Eventually(t, func() bool { return uc.calls.Load() == 1 }, time.Second, 5*time.Millisecond)
}

func TestStop_WaitsForInitialRefresh(t *testing.T) {
	uc := &fakeInsightUC{block: make(chan struct{})}
	s := New(uc, "")
	require.NoError(t, s.Start(context.Background(), true))
	require.Eventually(t, func() bool { return uc.calls.Load() == 1 }, time.Second, 5*time.Millisecond)

	var stopped atomic.Bool
	go func() {
		s.Stop(5 * time.Second)
		stopped.Store(true)
	}()

	assert.Never(t, stopped.Load, 100*time.Millisecond, 10*time.Millisecond)

	close(uc.block)
	assert.Eventually(t, stopped.Load, time.Second, 5*time.Millisecond)
}

func TestStop_GivesUpAfterTimeout(t *testing.T) {
	uc := &fakeInsightUC{block: make(chan struct{})}
	defer close(uc.block)
	s := New(uc, "")
	require.NoError(t, s.Start(context.Background(), true))
	require.Eventually(t, func() bool { return uc.calls.Load() == 1 }, time.Second, 5*time.Millisecond)

	start := time.Now()
	s.Stop(50 * time.Millisecond)

	assert.Less(t, time.Since(start), time.Second)
}

func TestFailed(t *testing.T) {
	results := []domain.RefreshResult{
		{Industry: "Tech"},
		{Industry: "Finance", Err: errors.New("malformed")},
	}
	assert.Equal(t, []string{"Finance"}, Failed(results))
	assert.Empty(t, Failed(nil))
}
