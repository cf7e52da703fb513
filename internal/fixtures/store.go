// Package fixtures is the fixed demo data set of the training portal and the
// lookups derived from it. Every lookup is a pure function of the data, its key
// and the store's clock.
package fixtures

import (
	"fmt"
	"math"
	"strings"
	"time"

	apperrors "github.com/shiptrain/portal/pkg/errors"
)

// Option configures a Store
type Option func(*Store)

// WithClock sets the clock used to decide what "today" is
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// PinnedClock returns a clock that always reports the given YYYY-MM-DD date
func PinnedClock(date string) (func() time.Time, error) {
	t, err := time.Parse(time.DateOnly, date)
	if err != nil {
		return nil, fmt.Errorf("invalid fixture date %q: %w", date, err)
	}
	return func() time.Time { return t }, nil
}

// Store holds the fixture data. It is read-only and safe for concurrent use.
type Store struct {
	plans       []Plan
	courses     []Course
	items       []CourseItem
	persons     []Person
	accounts    []Account
	evaluations []Evaluation
	now         func() time.Time
}

// New returns a store seeded with the fixture data
func New(opts ...Option) *Store {
	s := &Store{
		plans:       seedPlans(),
		courses:     seedCourses(),
		items:       seedCourseItems(),
		persons:     seedPersons(),
		accounts:    seedAccounts(),
		evaluations: seedEvaluations(),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Today is the current UTC date as YYYY-MM-DD
func (s *Store) Today() string {
	return s.now().UTC().Format(time.DateOnly)
}

func (s *Store) Plans() []Plan {
	return append([]Plan(nil), s.plans...)
}

func (s *Store) Plan(id int64) (Plan, error) {
	if p := s.plan(id); p != nil {
		return *p, nil
	}
	return Plan{}, apperrors.NotFoundError(fmt.Sprintf("plan %d", id))
}

func (s *Store) Courses() []Course {
	return append([]Course(nil), s.courses...)
}

func (s *Store) Persons() []Person {
	return append([]Person(nil), s.persons...)
}

func (s *Store) Person(id int64) (Person, error) {
	for _, p := range s.persons {
		if p.PersonID == id {
			return p, nil
		}
	}
	return Person{}, apperrors.NotFoundError(fmt.Sprintf("person %d", id))
}

// AccountByLogin finds an account by login name, case-insensitively
func (s *Store) AccountByLogin(login string) (Account, error) {
	for _, a := range s.accounts {
		if strings.EqualFold(a.LoginName, login) {
			return a, nil
		}
	}
	return Account{}, apperrors.NotFoundError("account")
}

// CourseItemsByPlanID returns the items scheduled in a plan, in fixture order
func (s *Store) CourseItemsByPlanID(planID int64) []CourseItem {
	var out []CourseItem
	for _, item := range s.items {
		if item.PlanID == planID {
			out = append(out, item)
		}
	}
	return out
}

// TodayCoursesForEmployee returns every item dated today. Enrollment is not
// modelled in the fixtures, so personID does not narrow the result.
func (s *Store) TodayCoursesForEmployee(personID int64) []ScheduledCourse {
	_ = personID
	return s.today(func(CourseItem, *Course) bool { return true })
}

// TodayCoursesForTeacher returns today's items whose course is taught by teacherID
func (s *Store) TodayCoursesForTeacher(teacherID int64) []ScheduledCourse {
	return s.today(func(_ CourseItem, c *Course) bool {
		return c != nil && c.TeacherID == teacherID
	})
}

func (s *Store) today(keep func(CourseItem, *Course) bool) []ScheduledCourse {
	today := s.Today()
	var out []ScheduledCourse
	for _, item := range s.items {
		if item.ClassDate != today {
			continue
		}
		course := s.course(item.CourseID)
		if !keep(item, course) {
			continue
		}
		out = append(out, ScheduledCourse{CourseItem: item, Course: course, Plan: s.plan(item.PlanID)})
	}
	return out
}

// ScoresByPersonID returns the person's evaluations with the weighted score rounded to 2 decimals
func (s *Store) ScoresByPersonID(personID int64) []ScoreRow {
	var out []ScoreRow
	for _, ev := range s.evaluations {
		if ev.PersonID != personID {
			continue
		}
		item := s.item(ev.ItemID)
		var course *Course
		if item != nil {
			course = s.course(item.CourseID)
		}
		out = append(out, ScoreRow{
			Evaluation:    ev,
			Item:          item,
			Course:        course,
			WeightedScore: round2(ev.WeightedScore()),
		})
	}
	return out
}

// CourseTypeScores averages the unrounded weighted scores per course class, in
// the order classes are first seen
func (s *Store) CourseTypeScores(personID int64) []CourseTypeScore {
	var order []string
	sums := map[string]float64{}
	counts := map[string]int{}

	for _, ev := range s.evaluations {
		if ev.PersonID != personID {
			continue
		}
		class := ""
		if item := s.item(ev.ItemID); item != nil {
			if c := s.course(item.CourseID); c != nil {
				class = c.CourseClass
			}
		}
		if _, seen := counts[class]; !seen {
			order = append(order, class)
		}
		sums[class] += ev.WeightedScore()
		counts[class]++
	}

	out := make([]CourseTypeScore, 0, len(order))
	for _, class := range order {
		out = append(out, CourseTypeScore{
			CourseClass: class,
			AvgScore:    round2(sums[class] / float64(counts[class])),
		})
	}
	return out
}

// Statistics computes the platform-wide home page counters
func (s *Store) Statistics() Statistics {
	st := Statistics{
		CourseCount:     len(s.courses),
		PlanCount:       len(s.plans),
		TotalClassCount: len(s.items),
	}
	for _, p := range s.persons {
		switch p.Role {
		case RoleTeacher:
			st.TeacherCount++
		case RoleEmployee:
			st.TotalStudentCount++
		}
	}
	for _, p := range s.plans {
		switch p.PlanStatus {
		case PlanStatusInProgress:
			st.OngoingPlanCount++
		case PlanStatusCompleted:
			st.CompletedPlanCount++
		}
	}
	if len(s.evaluations) > 0 {
		var sum float64
		for _, ev := range s.evaluations {
			sum += ev.WeightedScore()
		}
		st.AverageSatisfaction = int(sum / float64(len(s.evaluations)))
	}
	return st
}

func (s *Store) plan(id int64) *Plan {
	for i := range s.plans {
		if s.plans[i].PlanID == id {
			p := s.plans[i]
			return &p
		}
	}
	return nil
}

func (s *Store) course(id int64) *Course {
	for i := range s.courses {
		if s.courses[i].CourseID == id {
			c := s.courses[i]
			return &c
		}
	}
	return nil
}

func (s *Store) item(id int64) *CourseItem {
	for i := range s.items {
		if s.items[i].ItemID == id {
			it := s.items[i]
			return &it
		}
	}
	return nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// CourseItems returns every scheduled item, in fixture order
func (s *Store) CourseItems() []CourseItem {
	return append([]CourseItem(nil), s.items...)
}
