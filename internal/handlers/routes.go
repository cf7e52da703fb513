package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/shiptrain/portal/config"
	"github.com/shiptrain/portal/internal/fixtures"
	"github.com/shiptrain/portal/internal/middleware"
	"github.com/shiptrain/portal/internal/services"
)

// TrainingSessionHeader carries training session ids
const TrainingSessionHeader = "Session-ID"

// Services groups what the mock API surfaces are built from
type Services struct {
	Auth     services.AuthServiceInterface
	Training services.TrainingServiceInterface
	Market   services.MarketServiceInterface
	// LoginLimit guards both login endpoints when set
	LoginLimit gin.HandlerFunc
}

func (s Services) loginChain(h gin.HandlerFunc) []gin.HandlerFunc {
	if s.LoginLimit == nil {
		return []gin.HandlerFunc{h}
	}
	return []gin.HandlerFunc{s.LoginLimit, h}
}

// RegisterTraining mounts the training portal surface on api (served under /api)
func RegisterTraining(api *gin.RouterGroup, s Services) {
	authHandler := NewAuthHandler(s.Auth, config.DeploymentTraining, TrainingSessionHeader)
	trainingHandler := NewTrainingHandler(s.Training)

	api.POST("/auth/login", s.loginChain(authHandler.Login)...)
	api.POST("/auth/logout", authHandler.Logout)

	authed := api.Group("", middleware.SessionIDAuth(s.Auth, TrainingSessionHeader))
	authed.GET("/auth/current-user", authHandler.CurrentUser)
	authed.GET("/home/statistics", trainingHandler.Statistics)

	employee := authed.Group("/employee", middleware.RequireRole(fixtures.RoleEmployee))
	employee.GET("/scores", trainingHandler.EmployeeScores)
	employee.GET("/course-type-scores", trainingHandler.EmployeeCourseTypeScores)
	employee.GET("/today-courses", trainingHandler.EmployeeTodayCourses)

	teacher := authed.Group("/teacher", middleware.RequireRole(fixtures.RoleTeacher))
	teacher.GET("/today-courses", trainingHandler.TeacherTodayCourses)

	planner := authed.Group("/planner", middleware.RequireRole(fixtures.RolePlanner))
	planner.GET("/plans", trainingHandler.Plans)
	planner.GET("/plans/:planId", trainingHandler.Plan)
	planner.GET("/course-items", trainingHandler.CourseItems)
}

// RegisterMarket mounts the marketplace surface on v1 (served under /api/v1)
func RegisterMarket(v1 *gin.RouterGroup, s Services) {
	authHandler := NewAuthHandler(s.Auth, config.DeploymentMarket, "")
	marketHandler := NewMarketHandler(s.Market)

	v1.POST("/auth/login", s.loginChain(authHandler.Login)...)
	v1.GET("/market/sample/:id", marketHandler.Sample)

	authed := v1.Group("", middleware.BearerAuth(s.Auth))
	authed.POST("/auth/logout", authHandler.Logout)
	authed.GET("/auth/current", authHandler.CurrentUser)
}
