package training

import (
	"context"
	"net/http"

	"github.com/shiptrain/portal/internal/apiclient"
)

// PendingFilter narrows pending evaluations. Status is "pending" or "all".
type PendingFilter struct {
	Status string
	Limit  int
}

// SelfEvaluation is an employee's assessment of one class. Ratings are 1-5 and optional.
type SelfEvaluation struct {
	ItemID        int64  `json:"itemId"`
	SelfComment   string `json:"selfComment"`
	Understanding int    `json:"understanding,omitempty"`
	Difficulty    int    `json:"difficulty,omitempty"`
	Satisfaction  int    `json:"satisfaction,omitempty"`
}

// ScoreFilter narrows the score list; zero fields are omitted
type ScoreFilter struct {
	PlanID      int64
	CourseClass string
	StartDate   string
	EndDate     string
}

type EmployeeAPI struct {
	c Caller
}

func (e *EmployeeAPI) Schedule(ctx context.Context, r DateRange) (*apiclient.Envelope, error) {
	return e.c.Call(ctx, &apiclient.Request{Path: "/employee/schedule", Query: r.query().Values()})
}

func (e *EmployeeAPI) PendingEvaluations(ctx context.Context, f PendingFilter) (*apiclient.Envelope, error) {
	q := apiclient.NewQuery().String("status", f.Status).Int("limit", f.Limit)
	return e.c.Call(ctx, &apiclient.Request{Path: "/employee/pending-evaluations", Query: q.Values()})
}

func (e *EmployeeAPI) SubmitEvaluation(ctx context.Context, ev SelfEvaluation) (*apiclient.Envelope, error) {
	return e.c.Call(ctx, &apiclient.Request{Method: http.MethodPost, Path: "/employee/submit-evaluation", Body: ev})
}

func (e *EmployeeAPI) Scores(ctx context.Context, f ScoreFilter) (*apiclient.Envelope, error) {
	q := apiclient.NewQuery().
		Int("planId", int(f.PlanID)).
		String("courseClass", f.CourseClass).
		String("startDate", f.StartDate).
		String("endDate", f.EndDate)
	return e.c.Call(ctx, &apiclient.Request{Path: "/employee/scores", Query: q.Values()})
}

// CourseTypeScores returns the per-category averages behind the radar chart
func (e *EmployeeAPI) CourseTypeScores(ctx context.Context) (*apiclient.Envelope, error) {
	return e.c.Call(ctx, &apiclient.Request{Path: "/employee/course-type-scores"})
}

func (e *EmployeeAPI) LearningProgress(ctx context.Context) (*apiclient.Envelope, error) {
	return e.c.Call(ctx, &apiclient.Request{Path: "/employee/learning-progress"})
}

func (e *EmployeeAPI) TodayCourses(ctx context.Context) (*apiclient.Envelope, error) {
	return e.c.Call(ctx, &apiclient.Request{Path: "/employee/today-courses"})
}
