package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/dokterku/klinik-backend-go/internal/config"
	"github.com/dokterku/klinik-backend-go/internal/domain/notification"
	"github.com/dokterku/klinik-backend-go/internal/domain/schedule"
	"github.com/dokterku/klinik-backend-go/internal/domain/user"
	"github.com/dokterku/klinik-backend-go/internal/pkg/validator"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTemplateRepo struct {
	templates map[string]schedule.ShiftTemplate
}

func newFakeTemplateRepo() *fakeTemplateRepo {
	return &fakeTemplateRepo{templates: make(map[string]schedule.ShiftTemplate)}
}

func (f *fakeTemplateRepo) Create(_ context.Context, template schedule.ShiftTemplate) (schedule.ShiftTemplate, error) {
	template.ID = uuid.NewString()
	f.templates[template.ID] = template
	return template, nil
}

func (f *fakeTemplateRepo) GetByID(_ context.Context, id string) (schedule.ShiftTemplate, error) {
	template, ok := f.templates[id]
	if !ok {
		return schedule.ShiftTemplate{}, schedule.ErrShiftTemplateNotFound
	}
	return template, nil
}

func (f *fakeTemplateRepo) List(_ context.Context) ([]schedule.ShiftTemplate, error) {
	out := make([]schedule.ShiftTemplate, 0, len(f.templates))
	for _, t := range f.templates {
		out = append(out, t)
	}
	return out, nil
}

func (f *fakeTemplateRepo) Update(_ context.Context, template schedule.ShiftTemplate) error {
	if _, ok := f.templates[template.ID]; !ok {
		return schedule.ErrShiftTemplateNotFound
	}
	f.templates[template.ID] = template
	return nil
}

func (f *fakeTemplateRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.templates[id]; !ok {
		return schedule.ErrShiftTemplateNotFound
	}
	delete(f.templates, id)
	return nil
}

type fakeEntryRepo struct {
	entries []schedule.ScheduleEntry
}

func (f *fakeEntryRepo) Create(_ context.Context, entry schedule.ScheduleEntry) (schedule.ScheduleEntry, error) {
	for _, existing := range f.entries {
		if existing.UserID == entry.UserID &&
			existing.Date.Equal(entry.Date) &&
			existing.ShiftTemplateID == entry.ShiftTemplateID {
			return schedule.ScheduleEntry{}, schedule.ErrDuplicateEntry
		}
	}
	entry.ID = uuid.NewString()
	f.entries = append(f.entries, entry)
	return entry, nil
}

func (f *fakeEntryRepo) ListByUserAndDate(_ context.Context, userID string, date time.Time) ([]schedule.ScheduleEntry, error) {
	var out []schedule.ScheduleEntry
	for _, entry := range f.entries {
		if entry.UserID == userID && entry.Date.Equal(date) && entry.Status != schedule.EntryStatusCancelled {
			out = append(out, entry)
		}
	}
	return out, nil
}

func (f *fakeEntryRepo) ListByDateRange(_ context.Context, userID string, start, end time.Time) ([]schedule.ScheduleEntry, error) {
	var out []schedule.ScheduleEntry
	for _, entry := range f.entries {
		if entry.UserID == userID && !entry.Date.Before(start) && !entry.Date.After(end) {
			out = append(out, entry)
		}
	}
	return out, nil
}

func (f *fakeEntryRepo) Delete(_ context.Context, id string) error {
	for i, entry := range f.entries {
		if entry.ID == id {
			f.entries = append(f.entries[:i], f.entries[i+1:]...)
			return nil
		}
	}
	return schedule.ErrScheduleEntryNotFound
}

type fakeNotificationRepo struct {
	created []notification.Notification
}

func (f *fakeNotificationRepo) Create(_ context.Context, n notification.Notification) error {
	f.created = append(f.created, n)
	return nil
}

func (f *fakeNotificationRepo) ListByUser(_ context.Context, userID string, _ int) ([]notification.Notification, error) {
	var out []notification.Notification
	for _, n := range f.created {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeNotificationRepo) MarkRead(context.Context, string, string) error { return nil }

type fakeUserRepo struct {
	activeByRole map[user.Role][]string
}

func (f *fakeUserRepo) GetByID(context.Context, string) (user.User, error) {
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) GetByEmail(context.Context, string) (user.User, error) {
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) ListActiveIDsByRole(_ context.Context, role user.Role) ([]string, error) {
	return f.activeByRole[role], nil
}

func clock(hour, minute int) *time.Time {
	t := time.Date(0, 1, 1, hour, minute, 0, 0, time.UTC)
	return &t
}

func entryWithShift(userID string, date time.Time, name string, start, end *time.Time) schedule.ScheduleEntry {
	return schedule.ScheduleEntry{
		ID:             uuid.NewString(),
		UserID:         userID,
		Date:           date,
		Status:         schedule.EntryStatusScheduled,
		ShiftName:      &name,
		ShiftStartTime: start,
		ShiftEndTime:   end,
	}
}

type resolverFixture struct {
	service   *ScheduleServiceImpl
	entryRepo *fakeEntryRepo
	userRepo  *fakeUserRepo
	clinicTZ  *time.Location
}

func newResolverFixture(t *testing.T) *resolverFixture {
	t.Helper()

	clinicTZ, err := time.LoadLocation("Asia/Jakarta")
	require.NoError(t, err)

	entryRepo := &fakeEntryRepo{}
	userRepo := &fakeUserRepo{activeByRole: make(map[user.Role][]string)}
	return &resolverFixture{
		service: &ScheduleServiceImpl{
			templateRepo:     newFakeTemplateRepo(),
			entryRepo:        entryRepo,
			notificationRepo: &fakeNotificationRepo{},
			userRepo:         userRepo,
			cfg: config.AttendanceConfig{
				GracePeriodMinutes: 15,
				Timezone:           "Asia/Jakarta",
			},
			location: clinicTZ,
			runInTx: func(ctx context.Context, fn func(ctx context.Context) error) error {
				return fn(ctx)
			},
		},
		entryRepo: entryRepo,
		userRepo:  userRepo,
		clinicTZ:  clinicTZ,
	}
}

func TestResolveForCheckIn_OnTime(t *testing.T) {
	fixture := newResolverFixture(t)
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	fixture.entryRepo.entries = []schedule.ScheduleEntry{
		entryWithShift("user-1", date, "Shift Pagi", clock(8, 0), clock(16, 0)),
	}

	at := time.Date(2026, 3, 2, 8, 5, 0, 0, fixture.clinicTZ)
	resolution, err := fixture.service.ResolveForCheckIn(context.Background(), "user-1", at)
	require.NoError(t, err)

	assert.False(t, resolution.IsLate)
	assert.Equal(t, 0, resolution.LateMinutes)
	assert.Equal(t, "Shift Pagi", *resolution.Entry.ShiftName)
	assert.Equal(t, 8, resolution.ShiftStart.Hour())
	assert.Equal(t, 16, resolution.ShiftEnd.Hour())
}

func TestResolveForCheckIn_WithinGrace(t *testing.T) {
	fixture := newResolverFixture(t)
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	fixture.entryRepo.entries = []schedule.ScheduleEntry{
		entryWithShift("user-1", date, "Shift Pagi", clock(8, 0), clock(16, 0)),
	}

	// 08:15 with a 15 minute grace: the limit itself is still on time.
	at := time.Date(2026, 3, 2, 8, 15, 0, 0, fixture.clinicTZ)
	resolution, err := fixture.service.ResolveForCheckIn(context.Background(), "user-1", at)
	require.NoError(t, err)

	assert.False(t, resolution.IsLate)
}

func TestResolveForCheckIn_Late(t *testing.T) {
	fixture := newResolverFixture(t)
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	fixture.entryRepo.entries = []schedule.ScheduleEntry{
		entryWithShift("user-1", date, "Shift Pagi", clock(8, 0), clock(16, 0)),
	}

	at := time.Date(2026, 3, 2, 8, 20, 0, 0, fixture.clinicTZ)
	resolution, err := fixture.service.ResolveForCheckIn(context.Background(), "user-1", at)
	require.NoError(t, err)

	assert.True(t, resolution.IsLate)
	// Measured from the 08:00 start, not the 08:15 grace limit.
	assert.Equal(t, 20, resolution.LateMinutes)
}

func TestResolveForCheckIn_EarlyArrival(t *testing.T) {
	fixture := newResolverFixture(t)
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	fixture.entryRepo.entries = []schedule.ScheduleEntry{
		entryWithShift("user-1", date, "Shift Pagi", clock(8, 0), clock(16, 0)),
	}

	at := time.Date(2026, 3, 2, 7, 30, 0, 0, fixture.clinicTZ)
	resolution, err := fixture.service.ResolveForCheckIn(context.Background(), "user-1", at)
	require.NoError(t, err)

	assert.False(t, resolution.IsLate)
}

func TestResolveForCheckIn_NoSchedule(t *testing.T) {
	fixture := newResolverFixture(t)

	at := time.Date(2026, 3, 2, 8, 0, 0, 0, fixture.clinicTZ)
	_, err := fixture.service.ResolveForCheckIn(context.Background(), "user-1", at)
	assert.ErrorIs(t, err, schedule.ErrNoScheduleFound)
}

func TestResolveForCheckIn_NearestStartWins(t *testing.T) {
	fixture := newResolverFixture(t)
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	fixture.entryRepo.entries = []schedule.ScheduleEntry{
		entryWithShift("user-1", date, "Shift Pagi", clock(8, 0), clock(14, 0)),
		entryWithShift("user-1", date, "Shift Sore", clock(14, 0), clock(20, 0)),
	}

	// 13:30 is 5.5h from the morning start and 0.5h from the evening start.
	at := time.Date(2026, 3, 2, 13, 30, 0, 0, fixture.clinicTZ)
	resolution, err := fixture.service.ResolveForCheckIn(context.Background(), "user-1", at)
	require.NoError(t, err)

	assert.Equal(t, "Shift Sore", *resolution.Entry.ShiftName)
	// Half an hour before the evening start is not late.
	assert.False(t, resolution.IsLate)
}

func TestResolveForCheckIn_NightShiftWrapsMidnight(t *testing.T) {
	fixture := newResolverFixture(t)
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	fixture.entryRepo.entries = []schedule.ScheduleEntry{
		entryWithShift("user-1", date, "Shift Malam", clock(22, 0), clock(6, 0)),
	}

	at := time.Date(2026, 3, 2, 22, 10, 0, 0, fixture.clinicTZ)
	resolution, err := fixture.service.ResolveForCheckIn(context.Background(), "user-1", at)
	require.NoError(t, err)

	assert.Equal(t, "Shift Malam", *resolution.Entry.ShiftName)
	assert.Equal(t, 3, resolution.ShiftEnd.Day(), "shift end must fall on the next day")
	assert.True(t, resolution.ShiftEnd.After(resolution.ShiftStart))
}

func TestCreateShiftTemplate(t *testing.T) {
	fixture := newResolverFixture(t)

	resp, err := fixture.service.CreateShiftTemplate(context.Background(), schedule.CreateShiftTemplateRequest{
		Name:      "Shift Pagi",
		StartTime: "08:00",
		EndTime:   "16:00",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "08:00:00", resp.StartTime)
	assert.Equal(t, "16:00:00", resp.EndTime)
	assert.False(t, resp.WrapsMidnight)
}

func TestCreateShiftTemplate_NightShift(t *testing.T) {
	fixture := newResolverFixture(t)

	resp, err := fixture.service.CreateShiftTemplate(context.Background(), schedule.CreateShiftTemplateRequest{
		Name:      "Shift Malam",
		StartTime: "22:00:00",
		EndTime:   "06:00:00",
	})
	require.NoError(t, err)
	assert.True(t, resp.WrapsMidnight)
}

func TestUpdateShiftTemplate(t *testing.T) {
	fixture := newResolverFixture(t)

	created, err := fixture.service.CreateShiftTemplate(context.Background(), schedule.CreateShiftTemplateRequest{
		Name:      "Shift Pagi",
		StartTime: "08:00",
		EndTime:   "16:00",
	})
	require.NoError(t, err)

	end := "15:00"
	updated, err := fixture.service.UpdateShiftTemplate(context.Background(), schedule.UpdateShiftTemplateRequest{
		ID:      created.ID,
		EndTime: &end,
	})
	require.NoError(t, err)

	assert.Equal(t, "08:00:00", updated.StartTime)
	assert.Equal(t, "15:00:00", updated.EndTime)
}

func TestUpdateShiftTemplate_NotFound(t *testing.T) {
	fixture := newResolverFixture(t)

	name := "Shift Sore"
	_, err := fixture.service.UpdateShiftTemplate(context.Background(), schedule.UpdateShiftTemplateRequest{
		ID:   uuid.NewString(),
		Name: &name,
	})
	assert.ErrorIs(t, err, schedule.ErrShiftTemplateNotFound)
}

func TestCreateScheduleEntry_TemplateNotFound(t *testing.T) {
	fixture := newResolverFixture(t)

	_, err := fixture.service.CreateScheduleEntry(context.Background(), schedule.CreateScheduleEntryRequest{
		UserID:          uuid.NewString(),
		Date:            "2026-03-02",
		ShiftTemplateID: uuid.NewString(),
	})
	assert.ErrorIs(t, err, schedule.ErrShiftTemplateNotFound)
}

func TestBulkCreateSchedules(t *testing.T) {
	fixture := newResolverFixture(t)
	notifRepo := fixture.service.notificationRepo.(*fakeNotificationRepo)

	template, err := fixture.service.CreateShiftTemplate(context.Background(), schedule.CreateShiftTemplateRequest{
		Name:      "Shift Pagi",
		StartTime: "08:00",
		EndTime:   "16:00",
	})
	require.NoError(t, err)

	userA := uuid.NewString()
	userB := uuid.NewString()

	resp, err := fixture.service.BulkCreateSchedules(context.Background(), schedule.BulkCreateScheduleRequest{
		UserIDs:         []string{userA, userB},
		ShiftTemplateID: template.ID,
		StartDate:       "2026-03-02",
		EndDate:         "2026-03-06",
	})
	require.NoError(t, err)

	// 2 users x 5 days.
	assert.Equal(t, 10, resp.CreatedCount)
	assert.Equal(t, 0, resp.SkippedCount)
	assert.Len(t, notifRepo.created, 2)
	assert.Equal(t, "Jadwal jaga baru", notifRepo.created[0].Title)
}

func TestBulkCreateSchedules_ByRole(t *testing.T) {
	fixture := newResolverFixture(t)
	fixture.userRepo.activeByRole[user.RoleParamedis] = []string{uuid.NewString(), uuid.NewString(), uuid.NewString()}

	template, err := fixture.service.CreateShiftTemplate(context.Background(), schedule.CreateShiftTemplateRequest{
		Name:      "Shift Malam",
		StartTime: "22:00",
		EndTime:   "06:00",
	})
	require.NoError(t, err)

	resp, err := fixture.service.BulkCreateSchedules(context.Background(), schedule.BulkCreateScheduleRequest{
		Role:            "paramedis",
		ShiftTemplateID: template.ID,
		StartDate:       "2026-03-02",
		EndDate:         "2026-03-03",
	})
	require.NoError(t, err)

	// 3 paramedis x 2 days.
	assert.Equal(t, 6, resp.CreatedCount)
}

func TestBulkCreateSchedules_UnknownRole(t *testing.T) {
	fixture := newResolverFixture(t)

	template, err := fixture.service.CreateShiftTemplate(context.Background(), schedule.CreateShiftTemplateRequest{
		Name:      "Shift Pagi",
		StartTime: "08:00",
		EndTime:   "16:00",
	})
	require.NoError(t, err)

	_, err = fixture.service.BulkCreateSchedules(context.Background(), schedule.BulkCreateScheduleRequest{
		Role:            "satpam",
		ShiftTemplateID: template.ID,
		StartDate:       "2026-03-02",
		EndDate:         "2026-03-03",
	})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "role", verrs[0].Field)
}

func TestBulkCreateSchedules_RerunSkipsDuplicates(t *testing.T) {
	fixture := newResolverFixture(t)

	template, err := fixture.service.CreateShiftTemplate(context.Background(), schedule.CreateShiftTemplateRequest{
		Name:      "Shift Pagi",
		StartTime: "08:00",
		EndTime:   "16:00",
	})
	require.NoError(t, err)

	req := schedule.BulkCreateScheduleRequest{
		UserIDs:         []string{uuid.NewString()},
		ShiftTemplateID: template.ID,
		StartDate:       "2026-03-02",
		EndDate:         "2026-03-04",
	}

	first, err := fixture.service.BulkCreateSchedules(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 3, first.CreatedCount)

	second, err := fixture.service.BulkCreateSchedules(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 0, second.CreatedCount)
	assert.Equal(t, 3, second.SkippedCount)
}

func TestGetMySchedule(t *testing.T) {
	fixture := newResolverFixture(t)
	fixture.entryRepo.entries = []schedule.ScheduleEntry{
		entryWithShift("user-1", time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), "Shift Pagi", clock(8, 0), clock(16, 0)),
		entryWithShift("user-1", time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC), "Shift Pagi", clock(8, 0), clock(16, 0)),
		entryWithShift("user-2", time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), "Shift Sore", clock(14, 0), clock(20, 0)),
	}

	entries, err := fixture.service.GetMySchedule(
		context.Background(), "user-1",
		time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)

	require.Len(t, entries, 1)
	assert.Equal(t, "2026-03-02", entries[0].Date)
}
