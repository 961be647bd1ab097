package service

import (
	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/reconcile"
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrLoggingRestricted = errors.New("logging is restricted to the current day")
	ErrSlotNotFound      = errors.New("set number outside the prescription")
)

const dateLayout = "2006-01-02"

// Session state idle longer than this is dropped the next time a new
// session is created. The state is only a view cache; losing it costs one
// extra fetch.
const sessionIdleTTL = 24 * time.Hour

// ExerciseView is one prescription entry with its reconciled slots.
type ExerciseView struct {
	DayExerciseDetail
	Slots []reconcile.Slot `json:"slots"`
}

// DayView is the session's merged read state for the selected date: the
// prescription for that weekday with each exercise's slots reconciled against
// the date's logs. RestDay distinguishes a genuinely empty prescription from
// a day that simply has nothing loaded yet.
type DayView struct {
	Date      string              `json:"date"`
	DayOfWeek string              `json:"dayOfWeek"`
	RestDay   bool                `json:"restDay"`
	CanLog    bool                `json:"canLog"`
	DayID     *primitive.ObjectID `json:"dayId,omitempty"`
	Exercises []ExerciseView      `json:"exercises"`
}

// SessionService is the session view controller. It owns the selected date
// per user, orchestrates the plan/log/catalog accessors, and re-reconciles
// the view after every date change or confirmed mutation. Displayed state is
// always store-confirmed; no mutation is applied optimistically.
type SessionService interface {
	// View selects a date and returns the reconciled view for it.
	View(ctx context.Context, userID primitive.ObjectID, date time.Time) (*DayView, error)
	// ToggleSet flips one slot: delete its log when completed, create one
	// from the typed reps/weight when open. Rejected before any store call
	// when the viewed date is not today or the input does not parse.
	ToggleSet(ctx context.Context, userID, dayExerciseID primitive.ObjectID, setNumber int, repsInput, weightInput string) (*DayView, error)
	// SwapExercise retargets a prescription entry and refreshes the view.
	SwapExercise(ctx context.Context, userID, dayExerciseID, newExerciseID primitive.ObjectID) (*DayView, error)
	// SwapTemplate replaces a whole day's prescription and refreshes the view.
	SwapTemplate(ctx context.Context, userID, dayID, templateID primitive.ObjectID) (*DayView, error)
	// Candidates lists swap targets for an entry: exercises not already in
	// that day, narrowed to the day's muscle groups when that yields any.
	Candidates(ctx context.Context, userID, dayExerciseID primitive.ObjectID) ([]domain.Exercise, error)
}

// --- Service Implementation ---

type sessionService struct {
	planService PlanService
	logService  LogService
	catalog     CatalogService

	mu       sync.Mutex
	sessions map[primitive.ObjectID]*sessionState

	now func() time.Time // Injectable for tests
}

// sessionState is the controller-owned mutable state for one user's session:
// the selected date, the last store-confirmed plan and logs, and the key of
// the most recent log fetch so a superseded response can be discarded.
type sessionState struct {
	mu           sync.Mutex
	selectedDate time.Time // Midnight UTC
	plan         *PlanView
	logs         []domain.SessionLog
	logsKey      string // Date string the held logs belong to
	fetchKey     string // Request key of the latest log fetch

	lastSeen time.Time // Guarded by sessionService.mu, not by mu above
}

// NewSessionService creates a new instance of sessionService.
func NewSessionService(planService PlanService, logService LogService, catalog CatalogService) SessionService {
	return &sessionService{
		planService: planService,
		logService:  logService,
		catalog:     catalog,
		sessions:    make(map[primitive.ObjectID]*sessionState),
		now:         time.Now,
	}
}

func (s *sessionService) session(userID primitive.ObjectID) *sessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	st, ok := s.sessions[userID]
	if !ok {
		// Sweep idle sessions so the map does not grow one entry per user
		// forever. An in-flight operation on an evicted state finishes on its
		// own pointer and the state is rebuilt on the next call.
		for id, other := range s.sessions {
			if now.Sub(other.lastSeen) > sessionIdleTTL {
				delete(s.sessions, id)
			}
		}
		st = &sessionState{}
		s.sessions[userID] = st
	}
	st.lastSeen = now
	return st
}

// View selects the date and returns the reconciled view. The plan is
// re-fetched on every call so edits made through the plan endpoints show up
// immediately; logs are re-keyed on every date change and never reused
// across dates.
func (s *sessionService) View(ctx context.Context, userID primitive.ObjectID, date time.Time) (*DayView, error) {
	st := s.session(userID)
	st.mu.Lock()
	defer st.mu.Unlock()

	if err := s.refreshPlan(ctx, st, userID); err != nil {
		return nil, err
	}

	day := domain.LogDay(date)
	if st.logsKey != day.Format(dateLayout) {
		// The date change commits only if its logs arrive. A failed refresh
		// rolls the selection back so the held logs and the selected date
		// never describe different days.
		prev := st.selectedDate
		st.selectedDate = day
		if err := s.refreshLogs(ctx, st, userID); err != nil {
			st.selectedDate = prev
			return nil, err
		}
	} else {
		st.selectedDate = day
	}

	return s.buildView(st), nil
}

// ToggleSet computes and applies the single mutation a toggle implies.
func (s *sessionService) ToggleSet(ctx context.Context, userID, dayExerciseID primitive.ObjectID, setNumber int, repsInput, weightInput string) (*DayView, error) {
	st := s.session(userID)
	st.mu.Lock()
	defer st.mu.Unlock()

	// Local validation happens before any accessor is touched.
	today := domain.LogDay(s.now())
	if !st.selectedDate.Equal(today) {
		return nil, ErrLoggingRestricted
	}

	if err := s.refreshPlan(ctx, st, userID); err != nil {
		return nil, err
	}
	entry, ok := s.findDayExercise(st, dayExerciseID)
	if !ok {
		return nil, ErrDayExerciseNotFound
	}

	// The held logs must belong to the viewed date before any slot is built;
	// reconciling against another day's logs could delete that day's record.
	// The lock is kept across this fetch so the keying cannot drift again.
	if st.logsKey != st.selectedDate.Format(dateLayout) {
		logs, err := s.logService.ListForDate(ctx, userID, st.selectedDate)
		if err != nil {
			return nil, err
		}
		st.logs = logs
		st.logsKey = st.selectedDate.Format(dateLayout)
	}

	slots := reconcile.ForExercise(entry.WorkoutDayExercise, st.logs)
	if setNumber < 1 || setNumber > len(slots) {
		return nil, ErrSlotNotFound
	}

	plan, err := reconcile.PlanToggle(slots[setNumber-1], repsInput, weightInput)
	if err != nil {
		return nil, err
	}

	switch plan.Action {
	case reconcile.ActionDelete:
		err = s.logService.Delete(ctx, plan.LogID, userID)
	case reconcile.ActionCreate:
		// The log is stamped with the viewed date, which the guard above has
		// proven equal to today.
		_, err = s.logService.Create(ctx, &domain.SessionLog{
			UserID:     userID,
			ExerciseID: entry.ExerciseID,
			Date:       st.selectedDate,
			SetNumber:  setNumber,
			Reps:       plan.Reps,
			WeightKg:   plan.WeightKg,
		})
	}
	if err != nil {
		// Terminal for this action; the view keeps its last-confirmed state.
		return nil, err
	}

	if err := s.refreshLogs(ctx, st, userID); err != nil {
		return nil, err
	}
	return s.buildView(st), nil
}

// SwapExercise retargets one prescription entry, then re-fetches the plan and
// the active date's logs before the view is considered settled.
func (s *sessionService) SwapExercise(ctx context.Context, userID, dayExerciseID, newExerciseID primitive.ObjectID) (*DayView, error) {
	st := s.session(userID)
	st.mu.Lock()
	defer st.mu.Unlock()

	if err := s.planService.SwapExercise(ctx, dayExerciseID, newExerciseID); err != nil {
		return nil, err
	}
	if err := s.invalidate(ctx, st, userID); err != nil {
		return nil, err
	}
	return s.buildView(st), nil
}

// SwapTemplate replaces a day's prescription wholesale. Logs tied to the old
// exercises stay in the store; they become orphaned and stop matching slots.
func (s *sessionService) SwapTemplate(ctx context.Context, userID, dayID, templateID primitive.ObjectID) (*DayView, error) {
	st := s.session(userID)
	st.mu.Lock()
	defer st.mu.Unlock()

	if err := s.planService.SwapDayTemplate(ctx, dayID, templateID, userID); err != nil {
		return nil, err
	}
	if err := s.invalidate(ctx, st, userID); err != nil {
		return nil, err
	}
	return s.buildView(st), nil
}

// Candidates builds the swap list for one entry. The muscle-group narrowing
// is a relevance filter, not a hard constraint: when it leaves nothing, the
// unfiltered catalog (minus that day's exercises) is offered instead.
func (s *sessionService) Candidates(ctx context.Context, userID, dayExerciseID primitive.ObjectID) ([]domain.Exercise, error) {
	st := s.session(userID)
	st.mu.Lock()
	defer st.mu.Unlock()

	if err := s.refreshPlan(ctx, st, userID); err != nil {
		return nil, err
	}

	day, ok := s.findDayFor(st, dayExerciseID)
	if !ok {
		return nil, ErrDayExerciseNotFound
	}

	present := make(map[primitive.ObjectID]bool, len(day.Exercises))
	groupSeen := make(map[primitive.ObjectID]bool)
	groupIDs := []primitive.ObjectID{}
	for _, detail := range day.Exercises {
		present[detail.ExerciseID] = true
		if detail.Exercise != nil && !groupSeen[detail.Exercise.MuscleGroupID] {
			groupSeen[detail.Exercise.MuscleGroupID] = true
			groupIDs = append(groupIDs, detail.Exercise.MuscleGroupID)
		}
	}

	candidates, err := s.catalog.ListExercises(ctx, groupIDs)
	if err != nil {
		return nil, err
	}
	filtered := excludePresent(candidates, present)

	if len(filtered) == 0 {
		candidates, err = s.catalog.ListExercises(ctx, nil)
		if err != nil {
			return nil, err
		}
		filtered = excludePresent(candidates, present)
	}

	return filtered, nil
}

// --- internals ---

// refreshPlan replaces the session's plan snapshot with the store's current
// one. Every operation starts with this so a plan edit made outside the
// session is visible on the very next call.
func (s *sessionService) refreshPlan(ctx context.Context, st *sessionState, userID primitive.ObjectID) error {
	plan, err := s.planService.GetPlan(ctx, userID)
	if err != nil {
		return err
	}
	st.plan = plan
	return nil
}

// refreshLogs re-fetches the logs for the selected date. The state lock is
// released during the store call; on return the fetch key decides whether
// this response still matches the current selection, so an out-of-order
// response for a superseded date can never overwrite the view.
func (s *sessionService) refreshLogs(ctx context.Context, st *sessionState, userID primitive.ObjectID) error {
	key := uuid.NewString()
	date := st.selectedDate
	st.fetchKey = key

	st.mu.Unlock()
	logs, err := s.logService.ListForDate(ctx, userID, date)
	st.mu.Lock()

	if st.fetchKey != key {
		// A newer fetch superseded this one; discard the response.
		return nil
	}
	if err != nil {
		return err
	}
	st.logs = logs
	st.logsKey = date.Format(dateLayout)
	return nil
}

// invalidate executes the read refresh a plan mutation implies: the plan
// snapshot and, when a date is selected, the active date's logs.
func (s *sessionService) invalidate(ctx context.Context, st *sessionState, userID primitive.ObjectID) error {
	if err := s.refreshPlan(ctx, st, userID); err != nil {
		return err
	}
	if !st.selectedDate.IsZero() {
		return s.refreshLogs(ctx, st, userID)
	}
	return nil
}

func (s *sessionService) buildView(st *sessionState) *DayView {
	dayName := domain.DayName(st.selectedDate)
	view := &DayView{
		Date:      st.selectedDate.Format(dateLayout),
		DayOfWeek: dayName,
		CanLog:    st.selectedDate.Equal(domain.LogDay(s.now())),
		Exercises: []ExerciseView{},
	}

	day, ok := st.plan.WeeklySchedule[dayName]
	if !ok || len(day.Exercises) == 0 {
		view.RestDay = true
		if ok {
			id := day.ID
			view.DayID = &id
		}
		return view
	}

	id := day.ID
	view.DayID = &id
	for _, detail := range day.Exercises {
		view.Exercises = append(view.Exercises, ExerciseView{
			DayExerciseDetail: detail,
			Slots:             reconcile.ForExercise(detail.WorkoutDayExercise, st.logs),
		})
	}
	return view
}

// findDayExercise looks the entry up in the currently selected weekday only;
// toggling an entry from another weekday has no meaning.
func (s *sessionService) findDayExercise(st *sessionState, dayExerciseID primitive.ObjectID) (DayExerciseDetail, bool) {
	day, ok := st.plan.WeeklySchedule[domain.DayName(st.selectedDate)]
	if !ok {
		return DayExerciseDetail{}, false
	}
	for _, detail := range day.Exercises {
		if detail.ID == dayExerciseID {
			return detail, true
		}
	}
	return DayExerciseDetail{}, false
}

// findDayFor locates the weekday containing an entry anywhere in the plan.
func (s *sessionService) findDayFor(st *sessionState, dayExerciseID primitive.ObjectID) (ScheduleDay, bool) {
	for _, day := range st.plan.WeeklySchedule {
		for _, detail := range day.Exercises {
			if detail.ID == dayExerciseID {
				return day, true
			}
		}
	}
	return ScheduleDay{}, false
}

func excludePresent(exercises []domain.Exercise, present map[primitive.ObjectID]bool) []domain.Exercise {
	out := []domain.Exercise{}
	for _, exercise := range exercises {
		if !present[exercise.ID] {
			out = append(out, exercise)
		}
	}
	return out
}
