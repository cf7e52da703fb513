// Package router maps client paths to views and decides, before every navigation,
// whether the current session may see the target.
package router

import (
	"embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	apperrors "github.com/shiptrain/portal/pkg/errors"
)

//go:embed routes/*.yaml
var routeFiles embed.FS

// Route is one entry of a deployment's route table
type Route struct {
	Name         string `yaml:"name" json:"name"`
	Path         string `yaml:"path" json:"path"`
	View         string `yaml:"view" json:"view"`
	RequiresAuth bool   `yaml:"requiresAuth" json:"requiresAuth"`
	// Role is declared per route but only checked with WithRoleEnforcement
	Role string `yaml:"role,omitempty" json:"role,omitempty"`

	segments []string
}

// Params holds the values of :param segments
type Params map[string]string

// Table is a deployment's route table. It is read-only after LoadTable.
type Table struct {
	deployment string
	routes     []Route
}

// tableFile is the YAML layout of a route table
type tableFile struct {
	Deployment string  `yaml:"deployment"`
	Routes     []Route `yaml:"routes"`
}

// LoadTable parses the embedded route table of a deployment
func LoadTable(deployment string) (*Table, error) {
	data, err := routeFiles.ReadFile("routes/" + deployment + ".yaml")
	if err != nil {
		return nil, apperrors.UnknownDeploymentError(deployment)
	}
	return ParseTable(data)
}

// ParseTable parses a YAML route table
func ParseTable(data []byte) (*Table, error) {
	var f tableFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse route table: %w", err)
	}

	seen := make(map[string]bool, len(f.Routes))
	for i := range f.Routes {
		r := &f.Routes[i]
		if r.Name == "" || !strings.HasPrefix(r.Path, "/") {
			return nil, fmt.Errorf("route %d: name and absolute path are required", i)
		}
		if seen[r.Name] {
			return nil, fmt.Errorf("duplicate route name %q", r.Name)
		}
		seen[r.Name] = true
		r.segments = splitPath(r.Path)
	}
	return &Table{deployment: f.Deployment, routes: f.Routes}, nil
}

// Deployment names the deployment the table belongs to
func (t *Table) Deployment() string {
	return t.deployment
}

// Routes returns a copy of the routes in declaration order
func (t *Table) Routes() []Route {
	out := make([]Route, len(t.routes))
	copy(out, t.routes)
	return out
}

// Match finds the first route matching path. Query and fragment are ignored.
func (t *Table) Match(path string) (Route, Params, bool) {
	segments := splitPath(CleanPath(path))
	for _, r := range t.routes {
		if params, ok := matchSegments(r.segments, segments); ok {
			return r, params, true
		}
	}
	return Route{}, nil, false
}

// ByName returns the named route
func (t *Table) ByName(name string) (Route, bool) {
	for _, r := range t.routes {
		if r.Name == name {
			return r, true
		}
	}
	return Route{}, false
}

// CleanPath strips query, fragment and trailing slash; an empty path becomes "/"
func CleanPath(path string) string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
	}
	if path == "" {
		return "/"
	}
	return path
}

func splitPath(path string) []string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}

func matchSegments(pattern, segments []string) (Params, bool) {
	if len(pattern) != len(segments) {
		return nil, false
	}
	var params Params
	for i, p := range pattern {
		if strings.HasPrefix(p, ":") {
			if segments[i] == "" {
				return nil, false
			}
			if params == nil {
				params = Params{}
			}
			params[p[1:]] = segments[i]
			continue
		}
		if p != segments[i] {
			return nil, false
		}
	}
	return params, true
}
