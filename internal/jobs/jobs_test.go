package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"appointment-scheduler/internal/store/memory"
)

type purgerMock struct {
	mock.Mock
}

func (m *purgerMock) PurgeRefreshTokens(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

func TestPurgeTokensUsesClock(t *testing.T) {
	now := time.Date(2025, 9, 25, 0, 0, 0, 0, time.UTC)
	m := &purgerMock{}
	m.On("PurgeRefreshTokens", mock.Anything, now).Return(int64(3), nil).Once()

	(&PurgeTokens{Tokens: m, Log: zap.NewNop(), Now: func() time.Time { return now }}).Run()
	m.AssertExpectations(t)
}

func TestPurgeTokensError(t *testing.T) {
	m := &purgerMock{}
	m.On("PurgeRefreshTokens", mock.Anything, mock.Anything).Return(int64(0), errors.New("db down")).Once()

	assert.NotPanics(t, (&PurgeTokens{Tokens: m, Log: zap.NewNop()}).Run)
	m.AssertExpectations(t)
}

func TestPurgeTokensMemoryStore(t *testing.T) {
	ctx := context.Background()
	st := memory.New()

	_, err := st.CreateRefreshToken(ctx, "u", "stale", time.Now().Add(-time.Hour))
	require.NoError(t, err)
	_, err = st.CreateRefreshToken(ctx, "u", "live", time.Now().Add(time.Hour))
	require.NoError(t, err)

	(&PurgeTokens{Tokens: st, Log: zap.NewNop()}).Run()

	_, err = st.GetRefreshTokenByHash(ctx, "stale")
	assert.Error(t, err)
	_, err = st.GetRefreshTokenByHash(ctx, "live")
	assert.NoError(t, err)
}

func TestStart(t *testing.T) {
	c, err := Start("@hourly", &PurgeTokens{Tokens: memory.New(), Log: zap.NewNop()}, zap.NewNop())
	require.NoError(t, err)
	assert.Len(t, c.Entries(), 1)
	<-c.Stop().Done()

	_, err = Start("not a schedule", &PurgeTokens{}, zap.NewNop())
	assert.Error(t, err)
}
