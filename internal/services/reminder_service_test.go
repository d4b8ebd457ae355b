package services

import (
	"testing"

	"brushtrack_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReminderFixture(t *testing.T) (*reminderService, *models.Child) {
	t.Helper()
	childRepo := newFakeChildRepo()
	reminderRepo := newFakeReminderRepo(childRepo)

	child := &models.Child{ParentID: "p1", Name: "Mila", Age: 6}
	require.NoError(t, childRepo.CreateChild(nil, child))

	svc := &reminderService{
		reminderRepo: reminderRepo,
		childRepo:    childRepo,
	}
	return svc, child
}

func TestPutReminder(t *testing.T) {
	svc, child := newReminderFixture(t)

	t.Run("creates with enabled defaults", func(t *testing.T) {
		setting, err := svc.PutReminder(child.ID, PutReminderRequest{
			MorningTime: "07:30",
			EveningTime: "19:30",
		})
		require.NoError(t, err)
		assert.Equal(t, "07:30", setting.MorningTime)
		assert.Equal(t, "19:30", setting.EveningTime)
		assert.True(t, setting.MorningEnabled)
		assert.True(t, setting.EveningEnabled)
	})

	t.Run("second put replaces, not duplicates", func(t *testing.T) {
		disabled := false
		setting, err := svc.PutReminder(child.ID, PutReminderRequest{
			MorningTime:    "08:00",
			EveningTime:    "20:00",
			MorningEnabled: &disabled,
		})
		require.NoError(t, err)
		assert.False(t, setting.MorningEnabled)

		stored, err := svc.GetReminder(child.ID)
		require.NoError(t, err)
		assert.Equal(t, setting.ID, stored.ID)
		assert.Equal(t, "08:00", stored.MorningTime)
	})

	t.Run("rejects malformed clock", func(t *testing.T) {
		_, err := svc.PutReminder(child.ID, PutReminderRequest{
			MorningTime: "7:30",
			EveningTime: "19:30",
		})
		assert.ErrorIs(t, err, ErrReminderValidation)

		_, err = svc.PutReminder(child.ID, PutReminderRequest{
			MorningTime: "07:30",
			EveningTime: "25:00",
		})
		assert.ErrorIs(t, err, ErrReminderValidation)
	})

	t.Run("unknown child", func(t *testing.T) {
		_, err := svc.PutReminder("missing", PutReminderRequest{
			MorningTime: "07:30",
			EveningTime: "19:30",
		})
		assert.ErrorIs(t, err, ErrChildNotFound)
	})
}

func TestGetReminder_NoneConfigured(t *testing.T) {
	svc, child := newReminderFixture(t)

	_, err := svc.GetReminder(child.ID)
	assert.ErrorIs(t, err, ErrReminderNotFound)
}

func newAvatarFixture(t *testing.T) (*avatarService, *models.Child) {
	t.Helper()
	childRepo := newFakeChildRepo()
	avatarRepo := newFakeAvatarRepo(childRepo)

	child := &models.Child{ParentID: "p1", Name: "Mila", Age: 6}
	require.NoError(t, childRepo.CreateChild(nil, child))

	svc := &avatarService{
		avatarRepo: avatarRepo,
		childRepo:  childRepo,
	}
	return svc, child
}

func TestPutAvatar(t *testing.T) {
	svc, child := newAvatarFixture(t)

	t.Run("round trip", func(t *testing.T) {
		avatar, err := svc.PutAvatar(child.ID, PutAvatarRequest{Style: "dino", Color: "green"})
		require.NoError(t, err)
		assert.Equal(t, "dino", avatar.Style)
		assert.Nil(t, avatar.Accessory)
	})

	t.Run("second put replaces the single avatar", func(t *testing.T) {
		hat := "hat"
		avatar, err := svc.PutAvatar(child.ID, PutAvatarRequest{Style: "robot", Color: "blue", Accessory: &hat})
		require.NoError(t, err)

		stored, err := svc.GetAvatar(child.ID)
		require.NoError(t, err)
		assert.Equal(t, avatar.ID, stored.ID)
		assert.Equal(t, "robot", stored.Style)
		require.NotNil(t, stored.Accessory)
		assert.Equal(t, "hat", *stored.Accessory)
	})

	t.Run("missing style or color rejected", func(t *testing.T) {
		_, err := svc.PutAvatar(child.ID, PutAvatarRequest{Style: "", Color: "blue"})
		assert.ErrorIs(t, err, ErrAvatarValidation)
	})

	t.Run("unknown child", func(t *testing.T) {
		_, err := svc.PutAvatar("missing", PutAvatarRequest{Style: "dino", Color: "green"})
		assert.ErrorIs(t, err, ErrChildNotFound)
	})
}

func TestGetAvatar_NoneConfigured(t *testing.T) {
	svc, child := newAvatarFixture(t)

	_, err := svc.GetAvatar(child.ID)
	assert.ErrorIs(t, err, ErrAvatarNotFound)
}
