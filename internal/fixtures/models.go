package fixtures

// Role codes
const (
	RolePlanner  = "planner"
	RoleTeacher  = "teacher"
	RoleEmployee = "employee"
)

// Plan statuses
const (
	PlanStatusPlanning   = "Planning"
	PlanStatusInProgress = "In Progress"
	PlanStatusCompleted  = "Completed"
)

type Plan struct {
	PlanID            int64  `json:"plan_id"`
	PlanName          string `json:"plan_name"`
	PlanStatus        string `json:"plan_status"`
	PlanStartDatetime string `json:"plan_start_datetime"`
	PlanEndDatetime   string `json:"plan_end_datetime"`
	CreatorID         int64  `json:"creator_id"`
}

type Course struct {
	CourseID      int64  `json:"course_id"`
	CourseName    string `json:"course_name"`
	CourseDesc    string `json:"course_desc"`
	CourseRequire string `json:"course_require"`
	CourseClass   string `json:"course_class"`
	TeacherID     int64  `json:"teacher_id"`
}

// CourseItem is one scheduled class of a course within a plan
type CourseItem struct {
	ItemID         int64  `json:"item_id"`
	PlanID         int64  `json:"plan_id"`
	CourseID       int64  `json:"course_id"`
	ClassDate      string `json:"class_date"`
	ClassBeginTime string `json:"class_begin_time"`
	ClassEndTime   string `json:"class_end_time"`
	Location       string `json:"location"`
}

type Person struct {
	PersonID    int64  `json:"person_id"`
	Name        string `json:"name"`
	Role        string `json:"role"`
	RoleDisplay string `json:"role_display"`
}

// Account maps a login name to a person. Passwords are stored in clear; this is fixture data.
type Account struct {
	AccountID int64  `json:"account_id"`
	PersonID  int64  `json:"person_id"`
	LoginName string `json:"login_name"`
	Password  string `json:"-"`
}

// Evaluation is an attendance record with the self and teacher assessments
type Evaluation struct {
	PersonID       int64   `json:"person_id"`
	ItemID         int64   `json:"item_id"`
	SelfScore      float64 `json:"self_score"`
	SelfComment    string  `json:"self_comment"`
	TeacherScore   float64 `json:"teacher_score"`
	TeacherComment string  `json:"teacher_comment"`
	ScoreRatio     float64 `json:"score_ratio"`
}

// WeightedScore blends the two scores: self*(1-ratio) + teacher*ratio
func (e Evaluation) WeightedScore() float64 {
	return e.SelfScore*(1-e.ScoreRatio) + e.TeacherScore*e.ScoreRatio
}

// ScheduledCourse is a course item joined with its course and plan
type ScheduledCourse struct {
	CourseItem
	Course *Course `json:"course"`
	Plan   *Plan   `json:"plan"`
}

// ScoreRow is an evaluation joined with its item and course
type ScoreRow struct {
	Evaluation
	Item          *CourseItem `json:"item"`
	Course        *Course     `json:"course"`
	WeightedScore float64     `json:"weighted_score"`
}

type CourseTypeScore struct {
	CourseClass string  `json:"course_class"`
	AvgScore    float64 `json:"avg_score"`
}

// Statistics are the platform-wide counters shown on the home page
type Statistics struct {
	CourseCount         int `json:"courseCount"`
	TeacherCount        int `json:"teacherCount"`
	PlanCount           int `json:"planCount"`
	AverageSatisfaction int `json:"averageSatisfaction"`
	TotalStudentCount   int `json:"totalStudentCount"`
	TotalClassCount     int `json:"totalClassCount"`
	OngoingPlanCount    int `json:"ongoingPlanCount"`
	CompletedPlanCount  int `json:"completedPlanCount"`
}
