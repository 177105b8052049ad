// Package router holds the client's route tree and the navigation guard
// that decides, before every transition, whether the current session may
// enter a route.
//
// Route requirements (requiresAuth, role) are declared on parent routes and
// inherited by their children. Resolution walks the matched chain from leaf
// to root and the nearest declared value wins.
package router

import (
	"github.com/dmitrijs2005/gradebook/internal/client/models"
)

// Well-known paths.
const (
	LoginPath          = "/"
	ChangePasswordPath = "/change-password"
	AdminLandingPath   = "/admin/approval"
	TeacherLandingPath = "/teacher/scores"
)

// Meta carries the optional access requirements of a route. A nil field
// means "not declared here", so the value is inherited from an ancestor.
type Meta struct {
	RequiresAuth *bool
	Role         *models.Role
}

type Route struct {
	// Path is absolute for top-level routes and relative for children.
	Path      string
	Name      string
	Component string
	Meta      Meta
	// Redirect, when set, is followed before the guard runs.
	Redirect string
	Children []*Route
}

func requiresAuth() *bool { v := true; return &v }

func role(r models.Role) *models.Role { return &r }

// DefaultRoutes returns the client's route tree. Each call builds a fresh
// tree.
func DefaultRoutes() []*Route {
	return []*Route{
		{Path: "/", Name: "Login", Component: "Login"},
		{
			Path:      ChangePasswordPath,
			Name:      "ChangePassword",
			Component: "ChangePassword",
			Meta:      Meta{RequiresAuth: requiresAuth()},
		},
		{
			Path:      "/admin",
			Component: "AdminDashboard",
			Redirect:  AdminLandingPath,
			Meta:      Meta{RequiresAuth: requiresAuth(), Role: role(models.RoleAdmin)},
			Children: []*Route{
				{Path: "approval", Component: "UserApproval"},
				{Path: "teachers", Component: "TeacherList"},
				{Path: "classes", Component: "ClassMgmt"},
				{Path: "students", Component: "StudentMgmt"},
				{Path: "stats", Component: "ScoreStats"},
				{Path: "score-trend", Component: "ScoreTrendComparison"},
				{Path: "assignments", Component: "CourseAssignment"},
				{Path: "exams", Component: "ExamPublish"},
				{Path: "class-stats", Component: "ClassScoreStats"},
				{Path: "teacher-stats", Component: "TeacherStats"},
				{Path: "settings", Component: "SystemSettings"},
				{Path: "import-history", Component: "ImportHistory"},
				{Path: "score-entry", Component: "AdminScoreEntry"},
			},
		},
		{
			Path:      "/teacher",
			Component: "TeacherDashboard",
			Redirect:  TeacherLandingPath,
			Meta:      Meta{RequiresAuth: requiresAuth(), Role: role(models.RoleTeacher)},
			Children: []*Route{
				{Path: "scores", Component: "ScoreEntry"},
			},
		},
		{Path: CatchAllPath, Redirect: LoginPath},
	}
}

// LandingPath is the page an authenticated user of role r starts on. The
// second result is false for roles without a landing page.
func LandingPath(r models.Role) (string, bool) {
	switch r {
	case models.RoleAdmin:
		return AdminLandingPath, true
	case models.RoleTeacher:
		return TeacherLandingPath, true
	default:
		return "", false
	}
}
