package services

import (
	"context"

	"github.com/shiptrain/portal/internal/fixtures"
)

// TrainingService answers the training portal queries from the fixture store.
// Every list it returns is non-nil so empty results encode as [].
type TrainingService struct {
	store *fixtures.Store
}

// NewTrainingService creates a new TrainingService
func NewTrainingService(store *fixtures.Store) *TrainingService {
	return &TrainingService{store: store}
}

func (s *TrainingService) Statistics(ctx context.Context) fixtures.Statistics {
	return s.store.Statistics()
}

// Scores returns the person's scores, optionally narrowed to one course class
func (s *TrainingService) Scores(ctx context.Context, personID int64, courseClass string) []fixtures.ScoreRow {
	rows := s.store.ScoresByPersonID(personID)
	out := make([]fixtures.ScoreRow, 0, len(rows))
	for _, row := range rows {
		if courseClass != "" && (row.Course == nil || row.Course.CourseClass != courseClass) {
			continue
		}
		out = append(out, row)
	}
	return out
}

func (s *TrainingService) CourseTypeScores(ctx context.Context, personID int64) []fixtures.CourseTypeScore {
	return nonNil(s.store.CourseTypeScores(personID))
}

func (s *TrainingService) EmployeeTodayCourses(ctx context.Context, personID int64) []fixtures.ScheduledCourse {
	return nonNil(s.store.TodayCoursesForEmployee(personID))
}

func (s *TrainingService) TeacherTodayCourses(ctx context.Context, teacherID int64) []fixtures.ScheduledCourse {
	return nonNil(s.store.TodayCoursesForTeacher(teacherID))
}

// Plans lists plans, optionally only those in the given status
func (s *TrainingService) Plans(ctx context.Context, status string) []fixtures.Plan {
	plans := s.store.Plans()
	out := make([]fixtures.Plan, 0, len(plans))
	for _, p := range plans {
		if status == "" || p.PlanStatus == status {
			out = append(out, p)
		}
	}
	return out
}

func (s *TrainingService) Plan(ctx context.Context, planID int64) (*fixtures.Plan, error) {
	p, err := s.store.Plan(planID)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// CourseItems lists the items of one plan, or every item when planID is zero
func (s *TrainingService) CourseItems(ctx context.Context, planID int64) []fixtures.CourseItem {
	if planID == 0 {
		return nonNil(s.store.CourseItems())
	}
	return nonNil(s.store.CourseItemsByPlanID(planID))
}

func nonNil[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}
