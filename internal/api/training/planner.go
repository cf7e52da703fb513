package training

import (
	"context"
	"net/http"
	"net/url"

	"github.com/shiptrain/portal/internal/apiclient"
)

// PlanFilter pages and filters the plan list. Zero fields are left to server defaults.
type PlanFilter struct {
	Page      int
	PageSize  int
	Status    string
	StartDate string
	EndDate   string
	Keyword   string
	SortBy    string
	SortOrder string
}

// PlanInput creates or updates a plan. On update, empty fields are left unchanged.
type PlanInput struct {
	PlanName          string `json:"planName,omitempty"`
	PlanStatus        string `json:"planStatus,omitempty"`
	PlanStartDatetime string `json:"planStartDatetime,omitempty"`
	PlanEndDatetime   string `json:"planEndDatetime,omitempty"`
}

type CourseFilter struct {
	Page        int
	PageSize    int
	CourseClass string
	Keyword     string
	TeacherID   int64
}

// CourseInput creates or updates a course. On update, empty fields are left unchanged.
type CourseInput struct {
	CourseName    string `json:"courseName,omitempty"`
	CourseDesc    string `json:"courseDesc,omitempty"`
	CourseRequire string `json:"courseRequire,omitempty"`
	CourseClass   string `json:"courseClass,omitempty"`
	TeacherID     int64  `json:"teacherId,omitempty"`
}

type CourseItemFilter struct {
	Page      int
	PageSize  int
	PlanID    int64
	CourseID  int64
	StartDate string
	EndDate   string
	SortBy    string
	SortOrder string
}

// CourseItemInput schedules a class. PlanID and CourseID are only sent on create.
type CourseItemInput struct {
	PlanID         int64  `json:"planId,omitempty"`
	CourseID       int64  `json:"courseId,omitempty"`
	ClassDate      string `json:"classDate,omitempty"`
	ClassBeginTime string `json:"classBeginTime,omitempty"`
	ClassEndTime   string `json:"classEndTime,omitempty"`
	Location       string `json:"location,omitempty"`
}

type PlannerAPI struct {
	c Caller
}

func (p *PlannerAPI) Plans(ctx context.Context, f PlanFilter) (*apiclient.Envelope, error) {
	q := apiclient.NewQuery().
		Int("page", f.Page).
		Int("pageSize", f.PageSize).
		String("status", f.Status).
		String("startDate", f.StartDate).
		String("endDate", f.EndDate).
		String("keyword", f.Keyword).
		String("sortBy", f.SortBy).
		String("sortOrder", f.SortOrder)
	return p.c.Call(ctx, &apiclient.Request{Path: "/planner/plans", Query: q.Values()})
}

func (p *PlannerAPI) CreatePlan(ctx context.Context, in PlanInput) (*apiclient.Envelope, error) {
	return p.c.Call(ctx, &apiclient.Request{Method: http.MethodPost, Path: "/planner/plans", Body: in})
}

func (p *PlannerAPI) PlanDetail(ctx context.Context, planID int64) (*apiclient.Envelope, error) {
	return p.c.Call(ctx, &apiclient.Request{Path: "/planner/plans/" + id(planID)})
}

func (p *PlannerAPI) UpdatePlan(ctx context.Context, planID int64, in PlanInput) (*apiclient.Envelope, error) {
	return p.c.Call(ctx, &apiclient.Request{Method: http.MethodPut, Path: "/planner/plans/" + id(planID), Body: in})
}

func (p *PlannerAPI) DeletePlan(ctx context.Context, planID int64) (*apiclient.Envelope, error) {
	return p.c.Call(ctx, &apiclient.Request{Method: http.MethodDelete, Path: "/planner/plans/" + id(planID)})
}

func (p *PlannerAPI) Teachers(ctx context.Context) (*apiclient.Envelope, error) {
	return p.c.Call(ctx, &apiclient.Request{Path: "/planner/teachers"})
}

func (p *PlannerAPI) Employees(ctx context.Context) (*apiclient.Envelope, error) {
	return p.c.Call(ctx, &apiclient.Request{Path: "/planner/employees"})
}

func (p *PlannerAPI) AddEmployeesToPlan(ctx context.Context, planID int64, employeeIDs []int64) (*apiclient.Envelope, error) {
	body := struct {
		EmployeeIDs []int64 `json:"employeeIds"`
	}{EmployeeIDs: employeeIDs}
	return p.c.Call(ctx, &apiclient.Request{
		Method: http.MethodPost,
		Path:   "/planner/plans/" + id(planID) + "/employees",
		Body:   body,
	})
}

// RemoveEmployeeFromPlan removes an enrollment; force also drops recorded evaluations
func (p *PlannerAPI) RemoveEmployeeFromPlan(ctx context.Context, planID, employeeID int64, force bool) (*apiclient.Envelope, error) {
	return p.c.Call(ctx, &apiclient.Request{
		Method: http.MethodDelete,
		Path:   "/planner/plans/" + id(planID) + "/employees/" + id(employeeID),
		Query:  forceQuery(force),
	})
}

func (p *PlannerAPI) Courses(ctx context.Context, f CourseFilter) (*apiclient.Envelope, error) {
	q := apiclient.NewQuery().
		Int("page", f.Page).
		Int("pageSize", f.PageSize).
		String("courseClass", f.CourseClass).
		String("keyword", f.Keyword).
		Int("teacherId", int(f.TeacherID))
	return p.c.Call(ctx, &apiclient.Request{Path: "/planner/courses", Query: q.Values()})
}

func (p *PlannerAPI) CreateCourse(ctx context.Context, in CourseInput) (*apiclient.Envelope, error) {
	return p.c.Call(ctx, &apiclient.Request{Method: http.MethodPost, Path: "/planner/courses", Body: in})
}

func (p *PlannerAPI) UpdateCourse(ctx context.Context, courseID int64, in CourseInput) (*apiclient.Envelope, error) {
	return p.c.Call(ctx, &apiclient.Request{Method: http.MethodPut, Path: "/planner/courses/" + id(courseID), Body: in})
}

func (p *PlannerAPI) DeleteCourse(ctx context.Context, courseID int64) (*apiclient.Envelope, error) {
	return p.c.Call(ctx, &apiclient.Request{Method: http.MethodDelete, Path: "/planner/courses/" + id(courseID)})
}

func (p *PlannerAPI) CourseItems(ctx context.Context, f CourseItemFilter) (*apiclient.Envelope, error) {
	q := apiclient.NewQuery().
		Int("page", f.Page).
		Int("pageSize", f.PageSize).
		Int("planId", int(f.PlanID)).
		Int("courseId", int(f.CourseID)).
		String("startDate", f.StartDate).
		String("endDate", f.EndDate).
		String("sortBy", f.SortBy).
		String("sortOrder", f.SortOrder)
	return p.c.Call(ctx, &apiclient.Request{Path: "/planner/course-items", Query: q.Values()})
}

func (p *PlannerAPI) CreateCourseItem(ctx context.Context, in CourseItemInput) (*apiclient.Envelope, error) {
	return p.c.Call(ctx, &apiclient.Request{Method: http.MethodPost, Path: "/planner/course-items", Body: in})
}

func (p *PlannerAPI) UpdateCourseItem(ctx context.Context, itemID int64, in CourseItemInput) (*apiclient.Envelope, error) {
	in.PlanID, in.CourseID = 0, 0
	return p.c.Call(ctx, &apiclient.Request{Method: http.MethodPut, Path: "/planner/course-items/" + id(itemID), Body: in})
}

// DeleteCourseItem deletes a scheduled class; force also drops its evaluations
func (p *PlannerAPI) DeleteCourseItem(ctx context.Context, itemID int64, force bool) (*apiclient.Envelope, error) {
	return p.c.Call(ctx, &apiclient.Request{
		Method: http.MethodDelete,
		Path:   "/planner/course-items/" + id(itemID),
		Query:  forceQuery(force),
	})
}

// Analytics returns platform rankings limited to the top n entries (server default when 0)
func (p *PlannerAPI) Analytics(ctx context.Context, topN int) (*apiclient.Envelope, error) {
	q := apiclient.NewQuery().Int("topN", topN)
	return p.c.Call(ctx, &apiclient.Request{Path: "/planner/analytics", Query: q.Values()})
}

func (p *PlannerAPI) EmployeeScores(ctx context.Context, employeeID int64) (*apiclient.Envelope, error) {
	return p.c.Call(ctx, &apiclient.Request{Path: "/planner/employees/" + id(employeeID) + "/scores"})
}

func (p *PlannerAPI) CourseEvaluations(ctx context.Context, courseID int64) (*apiclient.Envelope, error) {
	return p.c.Call(ctx, &apiclient.Request{Path: "/planner/courses/" + id(courseID) + "/evaluations"})
}

func forceQuery(force bool) url.Values {
	if !force {
		return nil
	}
	return url.Values{"force": {"true"}}
}
