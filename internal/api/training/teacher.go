package training

import (
	"context"
	"net/http"

	"github.com/shiptrain/portal/internal/apiclient"
)

// GradingFilter narrows the students awaiting a grade
type GradingFilter struct {
	CourseID int64
	Status   string
}

// Grade is a teacher's score for one student in one class
type Grade struct {
	ItemID         int64   `json:"itemId"`
	PersonID       int64   `json:"personId"`
	TeacherScore   float64 `json:"teacherScore"`
	TeacherComment string  `json:"teacherComment,omitempty"`
	ScoreRatio     float64 `json:"scoreRatio"`
}

type TeacherAPI struct {
	c Caller
}

func (t *TeacherAPI) TodayCourses(ctx context.Context) (*apiclient.Envelope, error) {
	return t.c.Call(ctx, &apiclient.Request{Path: "/teacher/today-courses"})
}

func (t *TeacherAPI) Schedule(ctx context.Context, r DateRange) (*apiclient.Envelope, error) {
	return t.c.Call(ctx, &apiclient.Request{Path: "/teacher/schedule", Query: r.query().Values()})
}

func (t *TeacherAPI) PendingEvaluations(ctx context.Context, f GradingFilter) (*apiclient.Envelope, error) {
	q := apiclient.NewQuery().Int("courseId", int(f.CourseID)).String("status", f.Status)
	return t.c.Call(ctx, &apiclient.Request{Path: "/teacher/pending-evaluations", Query: q.Values()})
}

func (t *TeacherAPI) SubmitGrading(ctx context.Context, g Grade) (*apiclient.Envelope, error) {
	return t.c.Call(ctx, &apiclient.Request{Method: http.MethodPost, Path: "/teacher/submit-grading", Body: g})
}

func (t *TeacherAPI) CourseStatistics(ctx context.Context, courseID int64) (*apiclient.Envelope, error) {
	q := apiclient.NewQuery().Int("courseId", int(courseID))
	return t.c.Call(ctx, &apiclient.Request{Path: "/teacher/course-statistics", Query: q.Values()})
}

func (t *TeacherAPI) TeachingStatistics(ctx context.Context, r DateRange) (*apiclient.Envelope, error) {
	return t.c.Call(ctx, &apiclient.Request{Path: "/teacher/teaching-statistics", Query: r.query().Values()})
}
