package services

import (
	"context"

	"github.com/shiptrain/portal/internal/fixtures"
	"github.com/shiptrain/portal/internal/models"
)

// AuthServiceInterface defines login and session resolution for both surfaces
type AuthServiceInterface interface {
	Login(ctx context.Context, surface string, req *models.LoginRequest) (*models.LoginResponse, error)
	Logout(ctx context.Context, sessionID string)
	CurrentUser(ctx context.Context, session *models.Session) (*models.CurrentUser, error)
	ValidateSession(ctx context.Context, sessionID string) (*models.Session, error)
	ValidateToken(ctx context.Context, token string) (*models.Session, error)
}

// TrainingServiceInterface defines the training portal queries served from the fixtures
type TrainingServiceInterface interface {
	Statistics(ctx context.Context) fixtures.Statistics
	Scores(ctx context.Context, personID int64, courseClass string) []fixtures.ScoreRow
	CourseTypeScores(ctx context.Context, personID int64) []fixtures.CourseTypeScore
	EmployeeTodayCourses(ctx context.Context, personID int64) []fixtures.ScheduledCourse
	TeacherTodayCourses(ctx context.Context, teacherID int64) []fixtures.ScheduledCourse
	Plans(ctx context.Context, status string) []fixtures.Plan
	Plan(ctx context.Context, planID int64) (*fixtures.Plan, error)
	CourseItems(ctx context.Context, planID int64) []fixtures.CourseItem
}

// MarketServiceInterface defines the marketplace downloads
type MarketServiceInterface interface {
	Sample(ctx context.Context, resourceID string) (*models.Sample, error)
}
