package quiz

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/falynantenaina87-blip/Mandarin-connect/internal/store"
	"github.com/falynantenaina87-blip/Mandarin-connect/models"
)

func newTestTracker(t *testing.T) *Tracker {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err, "open test database")

	st := store.New(db)
	require.NoError(t, st.Migrate())
	return NewTracker(st)
}

func TestSubmit_ReplacesPreviousResult(t *testing.T) {
	tr := newTestTracker(t)
	ctx := context.Background()

	_, err := tr.Submit(ctx, 1, 3, 5)
	require.NoError(t, err)

	res, err := tr.Submit(ctx, 1, 5, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, res.Score)

	got, err := tr.CheckSubmission(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 5, got.Score)
	assert.Equal(t, 5, got.Total)
}

func TestSubmit_RejectsOutOfRangeScores(t *testing.T) {
	tr := newTestTracker(t)
	ctx := context.Background()

	for _, tc := range []struct{ score, total int }{
		{-1, 5},
		{6, 5},
		{0, 0},
		{0, -2},
	} {
		_, err := tr.Submit(ctx, 1, tc.score, tc.total)
		assert.ErrorIs(t, err, models.ErrValidation, "score %d/%d", tc.score, tc.total)
	}

	// Nothing was recorded.
	got, err := tr.CheckSubmission(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCheckSubmission_NoAttempt(t *testing.T) {
	tr := newTestTracker(t)

	got, err := tr.CheckSubmission(context.Background(), 42)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSubmit_PerAccountIsolation(t *testing.T) {
	tr := newTestTracker(t)
	ctx := context.Background()

	_, err := tr.Submit(ctx, 1, 2, 5)
	require.NoError(t, err)
	_, err = tr.Submit(ctx, 2, 4, 5)
	require.NoError(t, err)

	first, err := tr.CheckSubmission(ctx, 1)
	require.NoError(t, err)
	second, err := tr.CheckSubmission(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, first.Score)
	assert.Equal(t, 4, second.Score)
}
