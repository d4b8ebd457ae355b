package services

import (
	"testing"
	"time"

	"brushtrack_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBrushingFixture(t *testing.T) (*brushingService, *models.Child, *fakeBrushingRepo) {
	t.Helper()
	childRepo := newFakeChildRepo()
	brushingRepo := newFakeBrushingRepo(childRepo)

	child := &models.Child{ParentID: "p1", Name: "Mila", Age: 6}
	require.NoError(t, childRepo.CreateChild(nil, child))

	svc := &brushingService{
		brushingRepo: brushingRepo,
		childRepo:    childRepo,
	}
	return svc, child, brushingRepo
}

func TestCreateBrushingRecord(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		svc, child, _ := newBrushingFixture(t)

		record, err := svc.CreateRecord(child.ID, CreateBrushingRequest{})
		require.NoError(t, err)
		assert.Equal(t, DefaultBrushingDuration, record.Duration)
		assert.Equal(t, DefaultQualityScore, record.QualityScore)
		assert.Nil(t, record.Session)
		assert.NotEmpty(t, record.ID)
		assert.False(t, record.BrushedAt.IsZero())
	})

	t.Run("empty notes stored as null", func(t *testing.T) {
		svc, child, _ := newBrushingFixture(t)

		empty := ""
		record, err := svc.CreateRecord(child.ID, CreateBrushingRequest{Notes: &empty})
		require.NoError(t, err)
		assert.Nil(t, record.Notes)
	})

	t.Run("parses explicit brushed_at", func(t *testing.T) {
		svc, child, _ := newBrushingFixture(t)

		at := "2026-03-15T07:30:00Z"
		record, err := svc.CreateRecord(child.ID, CreateBrushingRequest{BrushedAt: &at})
		require.NoError(t, err)
		assert.True(t, record.BrushedAt.Equal(time.Date(2026, 3, 15, 7, 30, 0, 0, time.UTC)))
	})

	t.Run("rejects malformed brushed_at", func(t *testing.T) {
		svc, child, _ := newBrushingFixture(t)

		at := "15/03/2026 07:30"
		_, err := svc.CreateRecord(child.ID, CreateBrushingRequest{BrushedAt: &at})
		assert.ErrorIs(t, err, ErrTimestampFormat)
	})

	t.Run("rejects out-of-range duration and quality", func(t *testing.T) {
		svc, child, _ := newBrushingFixture(t)

		tooLong := MaxBrushingDuration + 1
		_, err := svc.CreateRecord(child.ID, CreateBrushingRequest{Duration: &tooLong})
		assert.ErrorIs(t, err, ErrBrushingValidation)

		tooGood := MaxQualityScore + 1
		_, err = svc.CreateRecord(child.ID, CreateBrushingRequest{QualityScore: &tooGood})
		assert.ErrorIs(t, err, ErrBrushingValidation)
	})

	t.Run("rejects unknown session", func(t *testing.T) {
		svc, child, _ := newBrushingFixture(t)

		session := "noon"
		_, err := svc.CreateRecord(child.ID, CreateBrushingRequest{Session: &session})
		assert.ErrorIs(t, err, ErrBrushingValidation)
	})

	t.Run("unknown child", func(t *testing.T) {
		svc, _, _ := newBrushingFixture(t)

		_, err := svc.CreateRecord("missing", CreateBrushingRequest{})
		assert.ErrorIs(t, err, ErrChildNotFound)
	})
}

func TestCreateBrushingRecord_SessionSlot(t *testing.T) {
	svc, child, _ := newBrushingFixture(t)

	morning := models.SessionMorning
	evening := models.SessionEvening
	at := "2026-03-15T07:30:00Z"
	later := "2026-03-15T20:00:00Z"
	nextDay := "2026-03-16T07:30:00Z"

	_, err := svc.CreateRecord(child.ID, CreateBrushingRequest{BrushedAt: &at, Session: &morning})
	require.NoError(t, err)

	// Same child, same date, same slot.
	_, err = svc.CreateRecord(child.ID, CreateBrushingRequest{BrushedAt: &at, Session: &morning})
	assert.ErrorIs(t, err, ErrSessionTaken)

	// The other slot and the next day are both free.
	_, err = svc.CreateRecord(child.ID, CreateBrushingRequest{BrushedAt: &later, Session: &evening})
	assert.NoError(t, err)
	_, err = svc.CreateRecord(child.ID, CreateBrushingRequest{BrushedAt: &nextDay, Session: &morning})
	assert.NoError(t, err)

	// Slotless records never collide.
	_, err = svc.CreateRecord(child.ID, CreateBrushingRequest{BrushedAt: &at})
	assert.NoError(t, err)
	_, err = svc.CreateRecord(child.ID, CreateBrushingRequest{BrushedAt: &at})
	assert.NoError(t, err)
}

func TestGetRecordsByChild_Filters(t *testing.T) {
	svc, child, brushingRepo := newBrushingFixture(t)

	for _, offset := range []int{0, -5, -10, -20} {
		require.NoError(t, brushingRepo.CreateRecord(nil, &models.BrushingRecord{
			ChildID:      child.ID,
			BrushedAt:    day(offset),
			Duration:     120,
			QualityScore: 5,
		}))
	}

	start := day(-10)
	end := day(-1)
	records, err := svc.GetRecordsByChild(child.ID, BrushingFilters{Start: &start, End: &end})
	require.NoError(t, err)
	require.Len(t, records, 2)
	// Newest first.
	assert.True(t, records[0].BrushedAt.Equal(day(-5)))
	assert.True(t, records[1].BrushedAt.Equal(day(-10)))

	all, err := svc.GetRecordsByChild(child.ID, BrushingFilters{})
	require.NoError(t, err)
	assert.Len(t, all, 4)

	_, err = svc.GetRecordsByChild("missing", BrushingFilters{})
	assert.ErrorIs(t, err, ErrChildNotFound)
}

func TestUpdateBrushingRecord(t *testing.T) {
	svc, child, brushingRepo := newBrushingFixture(t)

	record := &models.BrushingRecord{ChildID: child.ID, BrushedAt: fixedNow(), Duration: 120, QualityScore: 5}
	require.NoError(t, brushingRepo.CreateRecord(nil, record))

	t.Run("partial update keeps other fields", func(t *testing.T) {
		quality := 9
		updated, err := svc.UpdateRecord(record.ID, UpdateBrushingRequest{QualityScore: &quality})
		require.NoError(t, err)
		assert.Equal(t, 120, updated.Duration)
		assert.Equal(t, 9, updated.QualityScore)
	})

	t.Run("bounds still apply", func(t *testing.T) {
		negative := -1
		_, err := svc.UpdateRecord(record.ID, UpdateBrushingRequest{Duration: &negative})
		assert.ErrorIs(t, err, ErrBrushingValidation)
	})

	t.Run("unknown record", func(t *testing.T) {
		_, err := svc.UpdateRecord("missing", UpdateBrushingRequest{})
		assert.ErrorIs(t, err, ErrRecordNotFound)
	})
}

func TestDeleteBrushingRecord(t *testing.T) {
	svc, child, brushingRepo := newBrushingFixture(t)

	record := &models.BrushingRecord{ChildID: child.ID, BrushedAt: fixedNow(), Duration: 120, QualityScore: 5}
	require.NoError(t, brushingRepo.CreateRecord(nil, record))

	require.NoError(t, svc.DeleteRecord(record.ID))
	assert.ErrorIs(t, svc.DeleteRecord(record.ID), ErrRecordNotFound)
}
