package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/reconcile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Fakes ---

// fakePlanService serves a canned PlanView and applies swap mutations to it,
// counting every call so tests can assert the refresh protocol.
type fakePlanService struct {
	plan *PlanView

	getPlanCalls      int
	swapExerciseCalls int
	swapTemplateCalls int

	swapTemplateEntries []DayExerciseDetail
}

func (f *fakePlanService) CreatePlan(ctx context.Context, userID primitive.ObjectID, workoutType string, sessionsPerWeek int, hoursPerSession float64) (*domain.WorkoutPlan, error) {
	panic("not used")
}

func (f *fakePlanService) GetPlan(ctx context.Context, userID primitive.ObjectID) (*PlanView, error) {
	f.getPlanCalls++
	// Deep-ish copy so the controller's snapshot is independent.
	schedule := make(map[string]ScheduleDay, len(f.plan.WeeklySchedule))
	for name, day := range f.plan.WeeklySchedule {
		exercises := make([]DayExerciseDetail, len(day.Exercises))
		copy(exercises, day.Exercises)
		day.Exercises = exercises
		schedule[name] = day
	}
	return &PlanView{PlanDetails: f.plan.PlanDetails, WeeklySchedule: schedule}, nil
}

func (f *fakePlanService) AddExercise(ctx context.Context, dayID, exerciseID primitive.ObjectID, sets int, reps string) (*domain.WorkoutDayExercise, error) {
	panic("not used")
}

func (f *fakePlanService) UpdateDayExercise(ctx context.Context, dayExerciseID primitive.ObjectID, sets int, reps string) error {
	panic("not used")
}

func (f *fakePlanService) SwapExercise(ctx context.Context, dayExerciseID, newExerciseID primitive.ObjectID) error {
	f.swapExerciseCalls++
	for name, day := range f.plan.WeeklySchedule {
		for i := range day.Exercises {
			if day.Exercises[i].ID == dayExerciseID {
				day.Exercises[i].ExerciseID = newExerciseID
				day.Exercises[i].Exercise = nil
				f.plan.WeeklySchedule[name] = day
				return nil
			}
		}
	}
	return ErrDayExerciseNotFound
}

func (f *fakePlanService) RemoveExercise(ctx context.Context, dayExerciseID primitive.ObjectID) error {
	panic("not used")
}

func (f *fakePlanService) SwapDayTemplate(ctx context.Context, dayID, templateID, userID primitive.ObjectID) error {
	f.swapTemplateCalls++
	for name, day := range f.plan.WeeklySchedule {
		if day.ID == dayID {
			day.Exercises = f.swapTemplateEntries
			f.plan.WeeklySchedule[name] = day
			return nil
		}
	}
	return ErrDayNotFound
}

// fakeLogService is an in-memory log store keyed by log ID.
type fakeLogService struct {
	logs map[primitive.ObjectID]domain.SessionLog

	createCalls int
	deleteCalls int
	listCalls   int

	// onList fires once at the start of the next ListForDate call, before the
	// stored logs are read. Used to interleave a competing fetch.
	onList func()
	// failNextList makes the next ListForDate call fail with this error.
	failNextList error
}

func newFakeLogService() *fakeLogService {
	return &fakeLogService{logs: make(map[primitive.ObjectID]domain.SessionLog)}
}

func (f *fakeLogService) Create(ctx context.Context, log *domain.SessionLog) (*domain.SessionLog, error) {
	f.createCalls++
	for _, existing := range f.logs {
		if existing.UserID == log.UserID && existing.ExerciseID == log.ExerciseID &&
			existing.Date.Equal(domain.LogDay(log.Date)) && existing.SetNumber == log.SetNumber {
			return nil, ErrDuplicateLog
		}
	}
	stored := *log
	stored.ID = primitive.NewObjectID()
	stored.Date = domain.LogDay(log.Date)
	f.logs[stored.ID] = stored
	return &stored, nil
}

func (f *fakeLogService) ListForDate(ctx context.Context, userID primitive.ObjectID, date time.Time) ([]domain.SessionLog, error) {
	f.listCalls++
	if f.onList != nil {
		hook := f.onList
		f.onList = nil
		hook()
	}
	if f.failNextList != nil {
		err := f.failNextList
		f.failNextList = nil
		return nil, err
	}
	day := domain.LogDay(date)
	out := []domain.SessionLog{}
	for _, log := range f.logs {
		if log.UserID == userID && log.Date.Equal(day) {
			out = append(out, log)
		}
	}
	return out, nil
}

func (f *fakeLogService) Delete(ctx context.Context, logID, userID primitive.ObjectID) error {
	f.deleteCalls++
	log, ok := f.logs[logID]
	if !ok || log.UserID != userID {
		return ErrLogNotFound
	}
	delete(f.logs, logID)
	return nil
}

// fakeCatalogService serves a fixed exercise list, recording each filter.
type fakeCatalogService struct {
	exercises []domain.Exercise
	filters   [][]primitive.ObjectID
}

func (f *fakeCatalogService) ListExercises(ctx context.Context, muscleGroupIDs []primitive.ObjectID) ([]domain.Exercise, error) {
	f.filters = append(f.filters, muscleGroupIDs)
	if len(muscleGroupIDs) == 0 {
		return append([]domain.Exercise{}, f.exercises...), nil
	}
	wanted := make(map[primitive.ObjectID]bool, len(muscleGroupIDs))
	for _, id := range muscleGroupIDs {
		wanted[id] = true
	}
	out := []domain.Exercise{}
	for _, exercise := range f.exercises {
		if wanted[exercise.MuscleGroupID] {
			out = append(out, exercise)
		}
	}
	return out, nil
}

func (f *fakeCatalogService) GetExercise(ctx context.Context, exerciseID primitive.ObjectID) (*domain.Exercise, error) {
	panic("not used")
}

func (f *fakeCatalogService) ListMuscleGroups(ctx context.Context) ([]domain.MuscleGroup, error) {
	panic("not used")
}

func (f *fakeCatalogService) ListTemplates(ctx context.Context) ([]domain.WorkoutTemplate, error) {
	panic("not used")
}

func (f *fakeCatalogService) GetTemplate(ctx context.Context, templateID primitive.ObjectID) (*domain.WorkoutTemplate, error) {
	panic("not used")
}

// --- Fixture ---

// monday is the fixed "today" for these tests: 2024-01-01 fell on a Monday.
var monday = time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC)

type sessionFixture struct {
	svc      *sessionService
	plans    *fakePlanService
	logStore *fakeLogService
	catalog  *fakeCatalogService

	userID  primitive.ObjectID
	dayID   primitive.ObjectID
	entryID primitive.ObjectID
	benchID primitive.ObjectID
	chestID primitive.ObjectID
}

func newSessionFixture(t *testing.T) *sessionFixture {
	t.Helper()

	f := &sessionFixture{
		userID:  primitive.NewObjectID(),
		dayID:   primitive.NewObjectID(),
		entryID: primitive.NewObjectID(),
		benchID: primitive.NewObjectID(),
		chestID: primitive.NewObjectID(),
	}

	bench := &domain.Exercise{ID: f.benchID, Name: "Bench Press", MuscleGroupID: f.chestID}
	f.plans = &fakePlanService{
		plan: &PlanView{
			WeeklySchedule: map[string]ScheduleDay{
				"Monday": {
					ID:        f.dayID,
					DayOfWeek: "Monday",
					Exercises: []DayExerciseDetail{
						{
							WorkoutDayExercise: domain.WorkoutDayExercise{
								ID:         f.entryID,
								ExerciseID: f.benchID,
								Sets:       3,
								Reps:       "8-12",
							},
							Exercise: bench,
						},
					},
				},
			},
		},
	}
	f.logStore = newFakeLogService()
	f.catalog = &fakeCatalogService{exercises: []domain.Exercise{*bench}}

	f.svc = NewSessionService(f.plans, f.logStore, f.catalog).(*sessionService)
	f.svc.now = func() time.Time { return monday }
	return f
}

// --- Tests ---

func TestViewTrainingDay(t *testing.T) {
	f := newSessionFixture(t)

	view, err := f.svc.View(context.Background(), f.userID, monday)
	require.NoError(t, err)

	assert.Equal(t, "2024-01-01", view.Date)
	assert.Equal(t, "Monday", view.DayOfWeek)
	assert.False(t, view.RestDay)
	assert.True(t, view.CanLog)
	require.Len(t, view.Exercises, 1)
	require.Len(t, view.Exercises[0].Slots, 3)
	for _, slot := range view.Exercises[0].Slots {
		assert.False(t, slot.Completed)
	}
}

func TestViewRestDay(t *testing.T) {
	f := newSessionFixture(t)
	tuesday := monday.AddDate(0, 0, 1)

	view, err := f.svc.View(context.Background(), f.userID, tuesday)
	require.NoError(t, err)

	assert.True(t, view.RestDay)
	assert.False(t, view.CanLog)
	assert.Empty(t, view.Exercises)
	assert.Nil(t, view.DayID)
}

func TestViewReflectsPlanEditsImmediately(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()

	view, err := f.svc.View(ctx, f.userID, monday)
	require.NoError(t, err)
	require.Len(t, view.Exercises[0].Slots, 3)

	// An edit made through the plan endpoints, not through the session.
	day := f.plans.plan.WeeklySchedule["Monday"]
	day.Exercises[0].Sets = 5
	f.plans.plan.WeeklySchedule["Monday"] = day

	view, err = f.svc.View(ctx, f.userID, monday)
	require.NoError(t, err)
	assert.Len(t, view.Exercises[0].Slots, 5, "the next view must show the edited prescription")
	assert.Equal(t, 2, f.plans.getPlanCalls)
}

func TestViewRefetchesLogsPerDate(t *testing.T) {
	f := newSessionFixture(t)
	sunday := monday.AddDate(0, 0, -1)

	// A set logged yesterday must never leak into today's slots.
	_, err := f.logStore.Create(context.Background(), &domain.SessionLog{
		UserID: f.userID, ExerciseID: f.benchID, Date: sunday, SetNumber: 1, Reps: 10, WeightKg: 50,
	})
	require.NoError(t, err)
	f.logStore.createCalls = 0

	view, err := f.svc.View(context.Background(), f.userID, monday)
	require.NoError(t, err)
	assert.False(t, view.Exercises[0].Slots[0].Completed)
	assert.Equal(t, 1, f.logStore.listCalls)

	// Re-viewing the same date reuses the held logs.
	_, err = f.svc.View(context.Background(), f.userID, monday)
	require.NoError(t, err)
	assert.Equal(t, 1, f.logStore.listCalls)

	// Changing the date forces a fresh fetch.
	_, err = f.svc.View(context.Background(), f.userID, sunday)
	require.NoError(t, err)
	assert.Equal(t, 2, f.logStore.listCalls)
}

func TestToggleSetCreateAndDelete(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()

	_, err := f.svc.View(ctx, f.userID, monday)
	require.NoError(t, err)
	listsBefore := f.logStore.listCalls

	view, err := f.svc.ToggleSet(ctx, f.userID, f.entryID, 1, "10", "52.5")
	require.NoError(t, err)
	assert.Equal(t, 1, f.logStore.createCalls)
	assert.Equal(t, listsBefore+1, f.logStore.listCalls, "a confirmed mutation re-fetches the logs")

	slot := view.Exercises[0].Slots[0]
	assert.True(t, slot.Completed)
	assert.Equal(t, "10", slot.Reps)
	assert.Equal(t, "52.5", slot.Weight)
	require.NotNil(t, slot.LogID)

	// Toggling the same slot again removes the log it created.
	view, err = f.svc.ToggleSet(ctx, f.userID, f.entryID, 1, "", "")
	require.NoError(t, err)
	assert.Equal(t, 1, f.logStore.deleteCalls)
	assert.False(t, view.Exercises[0].Slots[0].Completed)
	assert.Empty(t, f.logStore.logs)
}

func TestToggleSetRestrictedToToday(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()

	_, err := f.svc.View(ctx, f.userID, monday.AddDate(0, 0, -1))
	require.NoError(t, err)
	listsBefore := f.logStore.listCalls

	_, err = f.svc.ToggleSet(ctx, f.userID, f.entryID, 1, "10", "50")
	assert.ErrorIs(t, err, ErrLoggingRestricted)

	// Rejected before any accessor call.
	assert.Zero(t, f.logStore.createCalls)
	assert.Zero(t, f.logStore.deleteCalls)
	assert.Equal(t, listsBefore, f.logStore.listCalls)
}

func TestToggleSetInvalidInputPlansNoMutation(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()

	_, err := f.svc.View(ctx, f.userID, monday)
	require.NoError(t, err)
	listsBefore := f.logStore.listCalls

	_, err = f.svc.ToggleSet(ctx, f.userID, f.entryID, 1, "abc", "50")
	assert.ErrorIs(t, err, reconcile.ErrInvalidReps)

	_, err = f.svc.ToggleSet(ctx, f.userID, f.entryID, 1, "10", "")
	assert.ErrorIs(t, err, reconcile.ErrInvalidWeight)

	assert.Zero(t, f.logStore.createCalls)
	assert.Zero(t, f.logStore.deleteCalls)
	assert.Equal(t, listsBefore, f.logStore.listCalls)
}

func TestToggleSetOutOfRangeSetNumber(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()

	_, err := f.svc.View(ctx, f.userID, monday)
	require.NoError(t, err)

	_, err = f.svc.ToggleSet(ctx, f.userID, f.entryID, 0, "10", "50")
	assert.ErrorIs(t, err, ErrSlotNotFound)
	_, err = f.svc.ToggleSet(ctx, f.userID, f.entryID, 4, "10", "50")
	assert.ErrorIs(t, err, ErrSlotNotFound)

	_, err = f.svc.ToggleSet(ctx, f.userID, primitive.NewObjectID(), 1, "10", "50")
	assert.ErrorIs(t, err, ErrDayExerciseNotFound)
}

func TestToggleSetDuplicateSurfacesConfirmedState(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()

	_, err := f.svc.View(ctx, f.userID, monday)
	require.NoError(t, err)

	// A log slipped in behind the controller's back, so the create collides.
	_, err = f.logStore.Create(ctx, &domain.SessionLog{
		UserID: f.userID, ExerciseID: f.benchID, Date: monday, SetNumber: 1, Reps: 8, WeightKg: 40,
	})
	require.NoError(t, err)

	_, err = f.svc.ToggleSet(ctx, f.userID, f.entryID, 1, "10", "50")
	assert.ErrorIs(t, err, ErrDuplicateLog)
	assert.Len(t, f.logStore.logs, 1)
}

func TestSwapExerciseOrphansOldLogs(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()

	_, err := f.svc.View(ctx, f.userID, monday)
	require.NoError(t, err)
	_, err = f.svc.ToggleSet(ctx, f.userID, f.entryID, 1, "10", "50")
	require.NoError(t, err)

	rowID := primitive.NewObjectID()
	view, err := f.svc.SwapExercise(ctx, f.userID, f.entryID, rowID)
	require.NoError(t, err)

	assert.Equal(t, 1, f.plans.swapExerciseCalls)
	assert.Equal(t, 3, f.plans.getPlanCalls, "view, toggle and swap each re-fetch the plan")

	// The bench log is still stored but no longer matches any slot.
	require.Len(t, view.Exercises, 1)
	assert.Equal(t, rowID, view.Exercises[0].ExerciseID)
	for _, slot := range view.Exercises[0].Slots {
		assert.False(t, slot.Completed)
	}
	assert.Len(t, f.logStore.logs, 1)
}

func TestSwapTemplateReplacesDay(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()

	_, err := f.svc.View(ctx, f.userID, monday)
	require.NoError(t, err)

	squatID := primitive.NewObjectID()
	f.plans.swapTemplateEntries = []DayExerciseDetail{
		{
			WorkoutDayExercise: domain.WorkoutDayExercise{
				ID:         primitive.NewObjectID(),
				ExerciseID: squatID,
				Sets:       4,
				Reps:       "8-12",
			},
		},
	}

	view, err := f.svc.SwapTemplate(ctx, f.userID, f.dayID, primitive.NewObjectID())
	require.NoError(t, err)

	assert.Equal(t, 1, f.plans.swapTemplateCalls)
	require.Len(t, view.Exercises, 1)
	assert.Equal(t, squatID, view.Exercises[0].ExerciseID)
	require.Len(t, view.Exercises[0].Slots, 4)
}

func TestCandidatesFiltersByMuscleGroupAndPresence(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()

	inclineID := primitive.NewObjectID()
	backID := primitive.NewObjectID()
	f.catalog.exercises = []domain.Exercise{
		{ID: f.benchID, Name: "Bench Press", MuscleGroupID: f.chestID},
		{ID: inclineID, Name: "Incline Press", MuscleGroupID: f.chestID},
		{ID: primitive.NewObjectID(), Name: "Barbell Row", MuscleGroupID: backID},
	}

	candidates, err := f.svc.Candidates(ctx, f.userID, f.entryID)
	require.NoError(t, err)

	require.Len(t, candidates, 1)
	assert.Equal(t, inclineID, candidates[0].ID)
	require.Len(t, f.catalog.filters, 1)
	assert.Equal(t, []primitive.ObjectID{f.chestID}, f.catalog.filters[0])
}

func TestCandidatesFallsBackToFullCatalog(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()

	// Bench is the only chest exercise, so the narrowed list after exclusion
	// is empty and the unfiltered catalog is offered instead.
	rowID := primitive.NewObjectID()
	backID := primitive.NewObjectID()
	f.catalog.exercises = []domain.Exercise{
		{ID: f.benchID, Name: "Bench Press", MuscleGroupID: f.chestID},
		{ID: rowID, Name: "Barbell Row", MuscleGroupID: backID},
	}

	candidates, err := f.svc.Candidates(ctx, f.userID, f.entryID)
	require.NoError(t, err)

	require.Len(t, candidates, 1)
	assert.Equal(t, rowID, candidates[0].ID)
	require.Len(t, f.catalog.filters, 2)
	assert.Nil(t, f.catalog.filters[1])
}

func TestFailedDateChangeRollsBackSelection(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()
	sunday := monday.AddDate(0, 0, -1)

	// Sunday holds a historical set 1 log.
	sundayLog, err := f.logStore.Create(ctx, &domain.SessionLog{
		UserID: f.userID, ExerciseID: f.benchID, Date: sunday, SetNumber: 1, Reps: 10, WeightKg: 50,
	})
	require.NoError(t, err)
	f.logStore.createCalls = 0

	_, err = f.svc.View(ctx, f.userID, sunday)
	require.NoError(t, err)

	// Moving to Monday fails mid-fetch, so the selection must stay on Sunday;
	// otherwise a toggle would reconcile Monday against Sunday's logs.
	f.logStore.failNextList = errors.New("store unavailable")
	_, err = f.svc.View(ctx, f.userID, monday)
	require.Error(t, err)

	_, err = f.svc.ToggleSet(ctx, f.userID, f.entryID, 1, "10", "50")
	assert.ErrorIs(t, err, ErrLoggingRestricted)
	assert.Zero(t, f.logStore.deleteCalls)
	_, stillThere := f.logStore.logs[sundayLog.ID]
	assert.True(t, stillThere, "Sunday's historical log must survive a toggle attempt on Monday")

	// Once the store recovers, the same flow logs Monday without touching
	// Sunday's record.
	_, err = f.svc.View(ctx, f.userID, monday)
	require.NoError(t, err)
	view, err := f.svc.ToggleSet(ctx, f.userID, f.entryID, 1, "8", "40")
	require.NoError(t, err)
	assert.True(t, view.Exercises[0].Slots[0].Completed)
	assert.Zero(t, f.logStore.deleteCalls)
	assert.Len(t, f.logStore.logs, 2)
}

func TestToggleSetRekeysDriftedLogs(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()
	sunday := monday.AddDate(0, 0, -1)

	sundayLog, err := f.logStore.Create(ctx, &domain.SessionLog{
		UserID: f.userID, ExerciseID: f.benchID, Date: sunday, SetNumber: 1, Reps: 10, WeightKg: 50,
	})
	require.NoError(t, err)
	f.logStore.createCalls = 0

	_, err = f.svc.View(ctx, f.userID, sunday)
	require.NoError(t, err)

	// Force the selection forward without a matching log refresh. The toggle
	// must re-key before building slots rather than trust the held logs.
	st := f.svc.session(f.userID)
	st.selectedDate = domain.LogDay(monday)

	view, err := f.svc.ToggleSet(ctx, f.userID, f.entryID, 1, "8", "40")
	require.NoError(t, err)

	assert.Zero(t, f.logStore.deleteCalls)
	assert.Equal(t, 1, f.logStore.createCalls, "an open Monday slot is created, not Sunday's deleted")
	_, stillThere := f.logStore.logs[sundayLog.ID]
	assert.True(t, stillThere)
	assert.True(t, view.Exercises[0].Slots[0].Completed)
}

func TestStaleLogFetchIsDiscarded(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()
	sunday := monday.AddDate(0, 0, -1)

	// A set was logged on Sunday; Monday has none.
	_, err := f.logStore.Create(ctx, &domain.SessionLog{
		UserID: f.userID, ExerciseID: f.benchID, Date: sunday, SetNumber: 1, Reps: 10, WeightKg: 50,
	})
	require.NoError(t, err)

	// While the Sunday fetch is in flight, the user moves to Monday. The
	// Monday fetch completes inside the hook; the Sunday response that then
	// arrives is stale and must not overwrite it.
	f.logStore.onList = func() {
		_, err := f.svc.View(ctx, f.userID, monday)
		require.NoError(t, err)
	}

	view, err := f.svc.View(ctx, f.userID, sunday)
	require.NoError(t, err)

	assert.Equal(t, "2024-01-01", view.Date, "the later selection wins")
	require.Len(t, view.Exercises, 1)
	assert.False(t, view.Exercises[0].Slots[0].Completed, "Sunday's log must not bleed into Monday")
	assert.Equal(t, 2, f.logStore.listCalls)
}

func TestIdleSessionsAreEvicted(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()

	_, err := f.svc.View(ctx, f.userID, monday)
	require.NoError(t, err)
	assert.Len(t, f.svc.sessions, 1)

	// Two days later another user shows up; the idle session is swept.
	f.svc.now = func() time.Time { return monday.AddDate(0, 0, 2) }
	otherUser := primitive.NewObjectID()
	f.svc.session(otherUser)

	assert.Len(t, f.svc.sessions, 1)
	_, evicted := f.svc.sessions[f.userID]
	assert.False(t, evicted)
	_, kept := f.svc.sessions[otherUser]
	assert.True(t, kept)
}
