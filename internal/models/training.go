package models

// ScoresQuery filters GET /employee/scores
type ScoresQuery struct {
	CourseClass string `form:"courseClass" binding:"max=50"`
}

// PlansQuery filters GET /planner/plans
type PlansQuery struct {
	Status string `form:"status" binding:"omitempty,oneof=Planning 'In Progress' Completed"`
}

// PlanURI binds /planner/plans/:planId
type PlanURI struct {
	PlanID int64 `uri:"planId" binding:"required,min=1"`
}

// CourseItemsQuery filters GET /planner/course-items. A zero PlanID lists every item.
type CourseItemsQuery struct {
	PlanID int64 `form:"planId" binding:"min=0"`
}
