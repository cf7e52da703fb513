// Package training exposes the training portal endpoints. Each method describes one
// request and forwards it to the shared API client.
package training

import (
	"context"
	"strconv"

	"github.com/shiptrain/portal/internal/apiclient"
)

// Caller sends structured requests
type Caller interface {
	Call(ctx context.Context, r *apiclient.Request) (*apiclient.Envelope, error)
}

// API groups the training portal endpoint modules
type API struct {
	Auth     *AuthAPI
	Home     *HomeAPI
	Employee *EmployeeAPI
	Teacher  *TeacherAPI
	Planner  *PlannerAPI
}

// New builds every module over c
func New(c Caller) *API {
	return &API{
		Auth:     &AuthAPI{c: c},
		Home:     &HomeAPI{c: c},
		Employee: &EmployeeAPI{c: c},
		Teacher:  &TeacherAPI{c: c},
		Planner:  &PlannerAPI{c: c},
	}
}

// DateRange bounds a schedule query; empty bounds are omitted
type DateRange struct {
	StartDate string
	EndDate   string
}

func (d DateRange) query() *apiclient.Query {
	return apiclient.NewQuery().
		String("startDate", d.StartDate).
		String("endDate", d.EndDate)
}

func id(v int64) string {
	return strconv.FormatInt(v, 10)
}
