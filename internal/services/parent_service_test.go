package services

import (
	"testing"

	"brushtrack_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type serviceFixture struct {
	parentRepo   *fakeParentRepo
	childRepo    *fakeChildRepo
	brushingRepo *fakeBrushingRepo
	rewardRepo   *fakeRewardRepo
	reminderRepo *fakeReminderRepo
	avatarRepo   *fakeAvatarRepo
	usageRepo    *fakeUsageRepo
}

func newServiceFixture() *serviceFixture {
	childRepo := newFakeChildRepo()
	return &serviceFixture{
		parentRepo:   newFakeParentRepo(),
		childRepo:    childRepo,
		brushingRepo: newFakeBrushingRepo(childRepo),
		rewardRepo:   newFakeRewardRepo(childRepo),
		reminderRepo: newFakeReminderRepo(childRepo),
		avatarRepo:   newFakeAvatarRepo(childRepo),
		usageRepo:    newFakeUsageRepo(),
	}
}

func (f *serviceFixture) parentService() *parentService {
	return &parentService{
		parentRepo:   f.parentRepo,
		childRepo:    f.childRepo,
		brushingRepo: f.brushingRepo,
		rewardRepo:   f.rewardRepo,
		reminderRepo: f.reminderRepo,
		avatarRepo:   f.avatarRepo,
		usageRepo:    f.usageRepo,
	}
}

// seedFamily creates a parent with one child plus a full set of dependent
// rows, and returns both IDs.
func seedFamily(t *testing.T, f *serviceFixture, email string) (parentID, childID string) {
	t.Helper()

	parent := &models.Parent{Name: "Gamze", Email: email}
	require.NoError(t, f.parentRepo.CreateParent(nil, parent))

	child := &models.Child{ParentID: parent.ID, Name: "Mila", Age: 6}
	require.NoError(t, f.childRepo.CreateChild(nil, child))

	require.NoError(t, f.brushingRepo.CreateRecord(nil, &models.BrushingRecord{
		ChildID: child.ID, BrushedAt: fixedNow(), Duration: 120, QualityScore: 5,
	}))
	require.NoError(t, f.rewardRepo.CreateReward(nil, &models.Reward{
		ChildID: child.ID, Title: "Sticker", PointsRequired: 5,
	}))
	require.NoError(t, f.reminderRepo.UpsertSetting(nil, &models.ReminderSetting{
		ChildID: child.ID, MorningTime: "07:30", EveningTime: "19:30",
	}))
	require.NoError(t, f.avatarRepo.UpsertAvatar(nil, &models.Avatar{
		ChildID: child.ID, Style: "dino", Color: "green",
	}))
	require.NoError(t, f.usageRepo.CreateUsage(nil, &models.AppUsage{
		ParentID: parent.ID,
	}))
	return parent.ID, child.ID
}

func TestCreateParent(t *testing.T) {
	f := newServiceFixture()
	svc := f.parentService()

	t.Run("normalizes email and trims name", func(t *testing.T) {
		parent, err := svc.CreateParent(CreateParentRequest{Name: "  Gamze ", Email: "Gamze@Example.com"})
		require.NoError(t, err)
		assert.Equal(t, "Gamze", parent.Name)
		assert.Equal(t, "gamze@example.com", parent.Email)
		assert.NotEmpty(t, parent.ID)
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, err := svc.CreateParent(CreateParentRequest{Name: "Other", Email: "gamze@example.com"})
		assert.ErrorIs(t, err, ErrEmailExists)
	})

	t.Run("invalid email", func(t *testing.T) {
		_, err := svc.CreateParent(CreateParentRequest{Name: "Gamze", Email: "not-an-email"})
		assert.ErrorIs(t, err, ErrParentValidation)
	})

	t.Run("empty name", func(t *testing.T) {
		_, err := svc.CreateParent(CreateParentRequest{Name: "  ", Email: "someone@example.com"})
		assert.ErrorIs(t, err, ErrParentValidation)
	})
}

func TestGetParentByID_NotFound(t *testing.T) {
	f := newServiceFixture()
	svc := f.parentService()

	_, err := svc.GetParentByID("missing")
	assert.ErrorIs(t, err, ErrParentNotFound)
}

func TestDeleteParent_CascadesDependents(t *testing.T) {
	f := newServiceFixture()
	svc := f.parentService()

	parentID, childID := seedFamily(t, f, "gamze@example.com")
	otherParentID, otherChildID := seedFamily(t, f, "other@example.com")

	require.NoError(t, svc.deleteParentWithin(nil, parentID))

	_, err := f.parentRepo.GetParentByID(parentID)
	assert.Error(t, err)
	_, err = f.childRepo.GetChildByID(childID)
	assert.Error(t, err)

	records, err := f.brushingRepo.GetRecordsByChild(childID, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, records)

	rewards, err := f.rewardRepo.GetRewardsByChild(childID)
	require.NoError(t, err)
	assert.Empty(t, rewards)

	_, err = f.reminderRepo.GetByChild(childID)
	assert.Error(t, err)
	_, err = f.avatarRepo.GetByChild(childID)
	assert.Error(t, err)

	usage, err := f.usageRepo.GetByParent(parentID)
	require.NoError(t, err)
	assert.Empty(t, usage)

	// The other family must be untouched.
	_, err = f.parentRepo.GetParentByID(otherParentID)
	assert.NoError(t, err)
	_, err = f.childRepo.GetChildByID(otherChildID)
	assert.NoError(t, err)
	otherRecords, err := f.brushingRepo.GetRecordsByChild(otherChildID, nil, nil)
	require.NoError(t, err)
	assert.Len(t, otherRecords, 1)
	_, err = f.reminderRepo.GetByChild(otherChildID)
	assert.NoError(t, err)
}

func TestDeleteParent_NotFound(t *testing.T) {
	f := newServiceFixture()
	svc := f.parentService()

	err := svc.DeleteParent("missing")
	assert.ErrorIs(t, err, ErrParentNotFound)
}
