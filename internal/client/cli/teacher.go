package cli

import (
	"context"
	"net/url"

	"github.com/dmitrijs2005/gradebook/internal/client/router"
)

// Courses lists the caller's teaching assignments. The list is cached for
// the score entry page until the next hard redirect.
func (a *App) Courses(ctx context.Context) error {
	if !a.enter(ctx, router.TeacherLandingPath) {
		return nil
	}
	if a.courses == nil {
		courses, err := a.teacher.MyCourses(ctx)
		if err != nil {
			return a.fail(ctx, "courses", err)
		}
		a.courses = courses
	}
	if len(a.courses) == 0 {
		a.println("no courses assigned")
		return nil
	}
	for _, c := range a.courses {
		a.printf("class %d %s, %s (assignment %d)\n", c.ClassID, c.GradeClass, c.SubjectName, c.AssignmentID)
	}
	return nil
}

// Scores prints the score sheet of one class for one exam task.
func (a *App) Scores(ctx context.Context, args []string) error {
	if len(args) != 2 {
		a.println("Usage: scores <classId> <examTaskId>")
		return nil
	}
	if _, ok := parseID(args[0]); !ok {
		a.println("Usage: scores <classId> <examTaskId>")
		return nil
	}
	if _, ok := parseID(args[1]); !ok {
		a.println("Usage: scores <classId> <examTaskId>")
		return nil
	}
	if !a.enter(ctx, router.TeacherLandingPath) {
		return nil
	}

	raw, err := a.teacher.ScoreList(ctx, url.Values{"class_id": {args[0]}, "exam_task_id": {args[1]}})
	if err != nil {
		return a.fail(ctx, "scores", err)
	}
	a.printJSON(raw)
	return nil
}
