package training

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiptrain/portal/internal/apiclient"
)

type recordingCaller struct {
	requests []*apiclient.Request
	env      *apiclient.Envelope
	err      error
}

func (r *recordingCaller) Call(_ context.Context, req *apiclient.Request) (*apiclient.Envelope, error) {
	r.requests = append(r.requests, req)
	return r.env, r.err
}

func (r *recordingCaller) last(t *testing.T) *apiclient.Request {
	t.Helper()
	require.NotEmpty(t, r.requests)
	return r.requests[len(r.requests)-1]
}

func TestAPI_RequestShapes(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		call       func(*API) error
		wantMethod string
		wantPath   string
		wantQuery  url.Values
		wantBody   any
	}{
		{
			name:       "login",
			call:       func(a *API) error { _, err := a.Auth.Login(ctx, Credentials{Username: "employee", Password: "123456"}); return err },
			wantMethod: http.MethodPost,
			wantPath:   "/auth/login",
			wantBody:   Credentials{Username: "employee", Password: "123456"},
		},
		{
			name:       "logout",
			call:       func(a *API) error { _, err := a.Auth.Logout(ctx); return err },
			wantMethod: http.MethodPost,
			wantPath:   "/auth/logout",
		},
		{
			name:     "current user",
			call:     func(a *API) error { _, err := a.Auth.CurrentUser(ctx); return err },
			wantPath: "/auth/current-user",
		},
		{
			name:     "statistics",
			call:     func(a *API) error { _, err := a.Home.Statistics(ctx); return err },
			wantPath: "/home/statistics",
		},
		{
			name:      "employee schedule",
			call:      func(a *API) error { _, err := a.Employee.Schedule(ctx, DateRange{StartDate: "2024-12-16", EndDate: "2024-12-22"}); return err },
			wantPath:  "/employee/schedule",
			wantQuery: url.Values{"startDate": {"2024-12-16"}, "endDate": {"2024-12-22"}},
		},
		{
			name:      "employee scores omit empty filters",
			call:      func(a *API) error { _, err := a.Employee.Scores(ctx, ScoreFilter{PlanID: 1}); return err },
			wantPath:  "/employee/scores",
			wantQuery: url.Values{"planId": {"1"}},
		},
		{
			name:     "employee scores without filters",
			call:     func(a *API) error { _, err := a.Employee.Scores(ctx, ScoreFilter{}); return err },
			wantPath: "/employee/scores",
		},
		{
			name:     "course type scores",
			call:     func(a *API) error { _, err := a.Employee.CourseTypeScores(ctx); return err },
			wantPath: "/employee/course-type-scores",
		},
		{
			name:       "submit evaluation",
			call:       func(a *API) error { _, err := a.Employee.SubmitEvaluation(ctx, SelfEvaluation{ItemID: 3, SelfComment: "ok"}); return err },
			wantMethod: http.MethodPost,
			wantPath:   "/employee/submit-evaluation",
			wantBody:   SelfEvaluation{ItemID: 3, SelfComment: "ok"},
		},
		{
			name:      "teacher pending evaluations",
			call:      func(a *API) error { _, err := a.Teacher.PendingEvaluations(ctx, GradingFilter{CourseID: 2, Status: "pending"}); return err },
			wantPath:  "/teacher/pending-evaluations",
			wantQuery: url.Values{"courseId": {"2"}, "status": {"pending"}},
		},
		{
			name:     "teacher today courses",
			call:     func(a *API) error { _, err := a.Teacher.TodayCourses(ctx); return err },
			wantPath: "/teacher/today-courses",
		},
		{
			name:       "update plan",
			call:       func(a *API) error { _, err := a.Planner.UpdatePlan(ctx, 7, PlanInput{PlanStatus: "Completed"}); return err },
			wantMethod: http.MethodPut,
			wantPath:   "/planner/plans/7",
			wantBody:   PlanInput{PlanStatus: "Completed"},
		},
		{
			name:       "delete plan",
			call:       func(a *API) error { _, err := a.Planner.DeletePlan(ctx, 7); return err },
			wantMethod: http.MethodDelete,
			wantPath:   "/planner/plans/7",
		},
		{
			name:       "remove employee with force",
			call:       func(a *API) error { _, err := a.Planner.RemoveEmployeeFromPlan(ctx, 1, 4, true); return err },
			wantMethod: http.MethodDelete,
			wantPath:   "/planner/plans/1/employees/4",
			wantQuery:  url.Values{"force": {"true"}},
		},
		{
			name:      "plans paging",
			call:      func(a *API) error { _, err := a.Planner.Plans(ctx, PlanFilter{Page: 2, PageSize: 10, Keyword: "safety"}); return err },
			wantPath:  "/planner/plans",
			wantQuery: url.Values{"page": {"2"}, "pageSize": {"10"}, "keyword": {"safety"}},
		},
		{
			name:     "employee scores detail",
			call:     func(a *API) error { _, err := a.Planner.EmployeeScores(ctx, 4); return err },
			wantPath: "/planner/employees/4/scores",
		},
		{
			name:     "course evaluations",
			call:     func(a *API) error { _, err := a.Planner.CourseEvaluations(ctx, 2); return err },
			wantPath: "/planner/courses/2/evaluations",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rc := &recordingCaller{env: &apiclient.Envelope{Code: 200}}
			require.NoError(t, tt.call(New(rc)))

			req := rc.last(t)
			assert.Equal(t, tt.wantMethod, req.Method)
			assert.Equal(t, tt.wantPath, req.Path)
			assert.Equal(t, tt.wantQuery, req.Query)
			assert.Equal(t, tt.wantBody, req.Body)
			assert.Equal(t, apiclient.ResponseJSON, req.ResponseType)
		})
	}
}

func TestPlanner_AddEmployeesBody(t *testing.T) {
	rc := &recordingCaller{env: &apiclient.Envelope{Code: 200}}
	_, err := New(rc).Planner.AddEmployeesToPlan(context.Background(), 1, []int64{4, 5})
	require.NoError(t, err)

	req := rc.last(t)
	assert.Equal(t, "/planner/plans/1/employees", req.Path)
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, struct {
		EmployeeIDs []int64 `json:"employeeIds"`
	}{EmployeeIDs: []int64{4, 5}}, req.Body)
}

func TestPlanner_UpdateCourseItemDropsKeys(t *testing.T) {
	rc := &recordingCaller{env: &apiclient.Envelope{Code: 200}}
	_, err := New(rc).Planner.UpdateCourseItem(context.Background(), 5, CourseItemInput{PlanID: 1, Location: "B101"})
	require.NoError(t, err)
	assert.Equal(t, CourseItemInput{Location: "B101"}, rc.last(t).Body)
}

func TestAPI_ErrorsPassThrough(t *testing.T) {
	want := &apiclient.EnvelopeError{Envelope: &apiclient.Envelope{Code: 403, Message: "no"}}
	rc := &recordingCaller{err: want}

	_, err := New(rc).Planner.Teachers(context.Background())
	assert.Same(t, want, err)
}

func TestLoginResult_Decode(t *testing.T) {
	env := &apiclient.Envelope{
		Code: 200,
		Data: []byte(`{"token":"sess-1","user":{"id":4,"name":"Liu","role":"employee","roleDisplay":"Employee","accountId":3}}`),
	}
	res, err := apiclient.Decode[LoginResult](env)
	require.NoError(t, err)
	assert.Equal(t, "sess-1", res.Token)
	assert.Equal(t, int64(4), res.User.ID)
	assert.Equal(t, "employee", res.User.Role)
	assert.Equal(t, int64(3), res.User.AccountID)
}
