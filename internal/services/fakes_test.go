package services

import (
	"fmt"
	"sort"
	"time"

	"brushtrack_backend/internal/models"
	"brushtrack_backend/internal/repositories"
	"brushtrack_backend/pkg/utils"

	"github.com/google/uuid"
)

// In-memory repository fakes. They ignore the SQLExecutor argument, which the
// real implementations only use to choose between a connection and a
// transaction.

type fakeParentRepo struct {
	parents map[string]models.Parent
}

func newFakeParentRepo() *fakeParentRepo {
	return &fakeParentRepo{parents: map[string]models.Parent{}}
}

func (f *fakeParentRepo) CreateParent(_ repositories.SQLExecutor, parent *models.Parent) error {
	for _, existing := range f.parents {
		if existing.Email == parent.Email {
			return fmt.Errorf("%w: parents_email_key", repositories.ErrDuplicateKey)
		}
	}
	if parent.ID == "" {
		parent.ID = uuid.NewString()
	}
	if parent.CreatedAt.IsZero() {
		parent.CreatedAt = time.Now().UTC()
	}
	f.parents[parent.ID] = *parent
	return nil
}

func (f *fakeParentRepo) GetParentByID(id string) (*models.Parent, error) {
	parent, ok := f.parents[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &parent, nil
}

func (f *fakeParentRepo) GetParentByEmail(email string) (*models.Parent, error) {
	for _, parent := range f.parents {
		if parent.Email == email {
			p := parent
			return &p, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeParentRepo) GetParents() ([]models.Parent, error) {
	out := []models.Parent{}
	for _, parent := range f.parents {
		out = append(out, parent)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeParentRepo) CountParents() (int, error) {
	return len(f.parents), nil
}

func (f *fakeParentRepo) DeleteParent(_ repositories.SQLExecutor, id string) error {
	if _, ok := f.parents[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.parents, id)
	return nil
}

type fakeChildRepo struct {
	children map[string]models.Child
}

func newFakeChildRepo() *fakeChildRepo {
	return &fakeChildRepo{children: map[string]models.Child{}}
}

func (f *fakeChildRepo) CreateChild(_ repositories.SQLExecutor, child *models.Child) error {
	if child.ID == "" {
		child.ID = uuid.NewString()
	}
	if child.CreatedAt.IsZero() {
		child.CreatedAt = time.Now().UTC()
	}
	f.children[child.ID] = *child
	return nil
}

func (f *fakeChildRepo) GetChildByID(id string) (*models.Child, error) {
	child, ok := f.children[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &child, nil
}

func (f *fakeChildRepo) GetChildrenByParent(parentID string) ([]models.Child, error) {
	out := []models.Child{}
	for _, child := range f.children {
		if child.ParentID == parentID {
			out = append(out, child)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeChildRepo) ListChildIDsByParent(_ repositories.SQLExecutor, parentID string) ([]string, error) {
	ids := []string{}
	for _, child := range f.children {
		if child.ParentID == parentID {
			ids = append(ids, child.ID)
		}
	}
	return ids, nil
}

func (f *fakeChildRepo) UpdateChild(_ repositories.SQLExecutor, child *models.Child) error {
	if _, ok := f.children[child.ID]; !ok {
		return repositories.ErrNotFound
	}
	f.children[child.ID] = *child
	return nil
}

func (f *fakeChildRepo) DeleteChild(_ repositories.SQLExecutor, id string) error {
	if _, ok := f.children[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.children, id)
	return nil
}

func (f *fakeChildRepo) DeleteChildrenByParent(_ repositories.SQLExecutor, parentID string) error {
	for id, child := range f.children {
		if child.ParentID == parentID {
			delete(f.children, id)
		}
	}
	return nil
}

type fakeBrushingRepo struct {
	records  map[string]models.BrushingRecord
	children *fakeChildRepo // for DeleteByParent resolution
}

func newFakeBrushingRepo(children *fakeChildRepo) *fakeBrushingRepo {
	return &fakeBrushingRepo{records: map[string]models.BrushingRecord{}, children: children}
}

func (f *fakeBrushingRepo) CreateRecord(_ repositories.SQLExecutor, record *models.BrushingRecord) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.BrushedAt.IsZero() {
		record.BrushedAt = time.Now().UTC()
	}
	if record.Session != nil {
		for _, existing := range f.records {
			if existing.ChildID == record.ChildID && existing.Session != nil &&
				*existing.Session == *record.Session &&
				utils.DateOf(existing.BrushedAt).Equal(utils.DateOf(record.BrushedAt)) {
				return fmt.Errorf("%w: uq_brushing_child_date_session", repositories.ErrDuplicateKey)
			}
		}
	}
	f.records[record.ID] = *record
	return nil
}

func (f *fakeBrushingRepo) GetRecordByID(id string) (*models.BrushingRecord, error) {
	record, ok := f.records[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &record, nil
}

func (f *fakeBrushingRepo) GetRecordsByChild(childID string, start, end *time.Time) ([]models.BrushingRecord, error) {
	out := []models.BrushingRecord{}
	for _, record := range f.records {
		if record.ChildID != childID {
			continue
		}
		if start != nil && record.BrushedAt.Before(*start) {
			continue
		}
		if end != nil && record.BrushedAt.After(*end) {
			continue
		}
		out = append(out, record)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].BrushedAt.After(out[j].BrushedAt) })
	return out, nil
}

func (f *fakeBrushingRepo) GetRecordsSince(childID string, since time.Time) ([]models.BrushingRecord, error) {
	return f.GetRecordsByChild(childID, &since, nil)
}

func (f *fakeBrushingRepo) GetDistinctBrushedDates(childID string) ([]time.Time, error) {
	seen := map[time.Time]struct{}{}
	for _, record := range f.records {
		if record.ChildID == childID {
			seen[utils.DateOf(record.BrushedAt)] = struct{}{}
		}
	}
	out := []time.Time{}
	for d := range seen {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].After(out[j]) })
	return out, nil
}

func (f *fakeBrushingRepo) CountByChild(_ repositories.SQLExecutor, childID string) (int, error) {
	count := 0
	for _, record := range f.records {
		if record.ChildID == childID {
			count++
		}
	}
	return count, nil
}

func (f *fakeBrushingRepo) UpdateRecord(_ repositories.SQLExecutor, record *models.BrushingRecord) error {
	if _, ok := f.records[record.ID]; !ok {
		return repositories.ErrNotFound
	}
	f.records[record.ID] = *record
	return nil
}

func (f *fakeBrushingRepo) DeleteRecord(_ repositories.SQLExecutor, id string) error {
	if _, ok := f.records[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.records, id)
	return nil
}

func (f *fakeBrushingRepo) DeleteByChild(_ repositories.SQLExecutor, childID string) error {
	for id, record := range f.records {
		if record.ChildID == childID {
			delete(f.records, id)
		}
	}
	return nil
}

func (f *fakeBrushingRepo) DeleteByParent(_ repositories.SQLExecutor, parentID string) error {
	for id, record := range f.records {
		if child, ok := f.children.children[record.ChildID]; ok && child.ParentID == parentID {
			delete(f.records, id)
		}
	}
	return nil
}

type fakeRewardRepo struct {
	rewards  map[string]models.Reward
	children *fakeChildRepo
}

func newFakeRewardRepo(children *fakeChildRepo) *fakeRewardRepo {
	return &fakeRewardRepo{rewards: map[string]models.Reward{}, children: children}
}

func (f *fakeRewardRepo) CreateReward(_ repositories.SQLExecutor, reward *models.Reward) error {
	if reward.ID == "" {
		reward.ID = uuid.NewString()
	}
	if reward.CreatedAt.IsZero() {
		reward.CreatedAt = time.Now().UTC()
	}
	f.rewards[reward.ID] = *reward
	return nil
}

func (f *fakeRewardRepo) GetRewardByID(id string) (*models.Reward, error) {
	reward, ok := f.rewards[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &reward, nil
}

func (f *fakeRewardRepo) GetRewardForUpdate(_ repositories.SQLExecutor, id string) (*models.Reward, error) {
	return f.GetRewardByID(id)
}

func (f *fakeRewardRepo) GetRewardsByChild(childID string) ([]models.Reward, error) {
	out := []models.Reward{}
	for _, reward := range f.rewards {
		if reward.ChildID == childID {
			out = append(out, reward)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeRewardRepo) UpdateReward(_ repositories.SQLExecutor, reward *models.Reward) error {
	if _, ok := f.rewards[reward.ID]; !ok {
		return repositories.ErrNotFound
	}
	f.rewards[reward.ID] = *reward
	return nil
}

func (f *fakeRewardRepo) MarkEarned(_ repositories.SQLExecutor, id string, earnedAt time.Time) error {
	reward, ok := f.rewards[id]
	if !ok || reward.IsEarned {
		return repositories.ErrNotFound
	}
	reward.IsEarned = true
	reward.EarnedAt = &earnedAt
	f.rewards[id] = reward
	return nil
}

func (f *fakeRewardRepo) DeleteByChild(_ repositories.SQLExecutor, childID string) error {
	for id, reward := range f.rewards {
		if reward.ChildID == childID {
			delete(f.rewards, id)
		}
	}
	return nil
}

func (f *fakeRewardRepo) DeleteByParent(_ repositories.SQLExecutor, parentID string) error {
	for id, reward := range f.rewards {
		if child, ok := f.children.children[reward.ChildID]; ok && child.ParentID == parentID {
			delete(f.rewards, id)
		}
	}
	return nil
}

type fakeReminderRepo struct {
	settings map[string]models.ReminderSetting // keyed by child ID
	children *fakeChildRepo
}

func newFakeReminderRepo(children *fakeChildRepo) *fakeReminderRepo {
	return &fakeReminderRepo{settings: map[string]models.ReminderSetting{}, children: children}
}

func (f *fakeReminderRepo) UpsertSetting(_ repositories.SQLExecutor, setting *models.ReminderSetting) error {
	now := time.Now().UTC()
	if existing, ok := f.settings[setting.ChildID]; ok {
		setting.ID = existing.ID
		setting.CreatedAt = existing.CreatedAt
	} else {
		if setting.ID == "" {
			setting.ID = uuid.NewString()
		}
		setting.CreatedAt = now
	}
	setting.UpdatedAt = now
	f.settings[setting.ChildID] = *setting
	return nil
}

func (f *fakeReminderRepo) GetByChild(childID string) (*models.ReminderSetting, error) {
	setting, ok := f.settings[childID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &setting, nil
}

func (f *fakeReminderRepo) DeleteByChild(_ repositories.SQLExecutor, childID string) error {
	delete(f.settings, childID)
	return nil
}

func (f *fakeReminderRepo) DeleteByParent(_ repositories.SQLExecutor, parentID string) error {
	for childID := range f.settings {
		if child, ok := f.children.children[childID]; ok && child.ParentID == parentID {
			delete(f.settings, childID)
		}
	}
	return nil
}

type fakeAvatarRepo struct {
	avatars  map[string]models.Avatar // keyed by child ID
	children *fakeChildRepo
}

func newFakeAvatarRepo(children *fakeChildRepo) *fakeAvatarRepo {
	return &fakeAvatarRepo{avatars: map[string]models.Avatar{}, children: children}
}

func (f *fakeAvatarRepo) UpsertAvatar(_ repositories.SQLExecutor, avatar *models.Avatar) error {
	if existing, ok := f.avatars[avatar.ChildID]; ok {
		avatar.ID = existing.ID
	} else if avatar.ID == "" {
		avatar.ID = uuid.NewString()
	}
	avatar.UpdatedAt = time.Now().UTC()
	f.avatars[avatar.ChildID] = *avatar
	return nil
}

func (f *fakeAvatarRepo) GetByChild(childID string) (*models.Avatar, error) {
	avatar, ok := f.avatars[childID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &avatar, nil
}

func (f *fakeAvatarRepo) DeleteByChild(_ repositories.SQLExecutor, childID string) error {
	delete(f.avatars, childID)
	return nil
}

func (f *fakeAvatarRepo) DeleteByParent(_ repositories.SQLExecutor, parentID string) error {
	for childID := range f.avatars {
		if child, ok := f.children.children[childID]; ok && child.ParentID == parentID {
			delete(f.avatars, childID)
		}
	}
	return nil
}

type fakeUsageRepo struct {
	entries map[string]models.AppUsage
}

func newFakeUsageRepo() *fakeUsageRepo {
	return &fakeUsageRepo{entries: map[string]models.AppUsage{}}
}

func (f *fakeUsageRepo) CreateUsage(_ repositories.SQLExecutor, usage *models.AppUsage) error {
	if usage.ID == "" {
		usage.ID = uuid.NewString()
	}
	if usage.OccurredAt.IsZero() {
		usage.OccurredAt = time.Now().UTC()
	}
	f.entries[usage.ID] = *usage
	return nil
}

func (f *fakeUsageRepo) GetByParent(parentID string) ([]models.AppUsage, error) {
	out := []models.AppUsage{}
	for _, entry := range f.entries {
		if entry.ParentID == parentID {
			out = append(out, entry)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OccurredAt.After(out[j].OccurredAt) })
	return out, nil
}

func (f *fakeUsageRepo) DeleteByParent(_ repositories.SQLExecutor, parentID string) error {
	for id, entry := range f.entries {
		if entry.ParentID == parentID {
			delete(f.entries, id)
		}
	}
	return nil
}
