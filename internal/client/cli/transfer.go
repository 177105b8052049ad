package cli

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/dmitrijs2005/gradebook/internal/client/models"
	"github.com/dmitrijs2005/gradebook/internal/client/router"
)

const (
	exportUsage = "Usage: export <students|teachers|assignments> <file> | export scores <file> <classId> <examTaskId>"
	importUsage = "Usage: import students <file> | import <teachers|assignments> <file> [academicYear]\n" +
		"       import scores <file> <entryYear> <examName> <subjectIds> [classIds]  (admin; ids comma separated)\n" +
		"       import scores <file> <classId> <examTaskId>  (teacher)"
)

func (a *App) isTeacher(ctx context.Context) bool {
	s, err := a.auth.Session(ctx)
	return err == nil && s.Role == models.RoleTeacher
}

// Export downloads a spreadsheet to the given path. A directory path keeps
// the server-provided file name.
func (a *App) Export(ctx context.Context, args []string) error {
	if len(args) < 2 {
		a.println(exportUsage)
		return nil
	}
	kind, path := args[0], args[1]

	var (
		page  string
		fetch func() (*models.File, error)
	)
	switch kind {
	case "students":
		page = pageStudents
		fetch = func() (*models.File, error) { return a.admin.ExportStudents(ctx, nil) }
	case "teachers":
		page = pageTeachers
		fetch = func() (*models.File, error) { return a.admin.ExportTeachers(ctx, nil) }
	case "assignments":
		page = pageAssignments
		fetch = func() (*models.File, error) { return a.admin.ExportAssignments(ctx) }
	case "scores":
		if len(args) != 4 {
			a.println(exportUsage)
			return nil
		}
		page = router.TeacherLandingPath
		q := url.Values{"class_id": {args[2]}, "exam_task_id": {args[3]}}
		fetch = func() (*models.File, error) { return a.teacher.ExportScores(ctx, q) }
	default:
		a.println(exportUsage)
		return nil
	}

	if !a.enter(ctx, page) {
		return nil
	}
	f, err := fetch()
	if err != nil {
		return a.fail(ctx, "export", err)
	}
	return a.saveFile(ctx, "export", f, path)
}

// Import uploads a spreadsheet. Teachers import scores for one class and
// exam task; administrators import whole sheets, scores scoped by cohort,
// exam name and subjects.
func (a *App) Import(ctx context.Context, args []string) error {
	if len(args) < 2 {
		a.println(importUsage)
		return nil
	}
	kind, path, rest := args[0], args[1], args[2:]

	var (
		page   string
		fields map[string]string
		send   func(models.Upload) (json.RawMessage, error)
	)
	switch {
	case kind == "students" && len(rest) == 0:
		page, send = pageStudents, func(u models.Upload) (json.RawMessage, error) { return a.admin.ImportStudents(ctx, u) }
	case kind == "teachers" || kind == "assignments":
		year, ok := optionalYear(rest)
		if !ok {
			a.println(importUsage)
			return nil
		}
		fields = models.AcademicYearFields(year)
		if kind == "teachers" {
			page, send = pageTeachers, func(u models.Upload) (json.RawMessage, error) { return a.admin.ImportTeachers(ctx, u) }
		} else {
			page, send = pageAssignments, func(u models.Upload) (json.RawMessage, error) { return a.admin.ImportAssignments(ctx, u) }
		}
	case kind == "scores" && a.isTeacher(ctx):
		if len(rest) != 2 {
			a.println(importUsage)
			return nil
		}
		classID, ok1 := parseID(rest[0])
		examTaskID, ok2 := parseID(rest[1])
		if !ok1 || !ok2 {
			a.println(importUsage)
			return nil
		}
		page = router.TeacherLandingPath
		send = func(u models.Upload) (json.RawMessage, error) { return a.teacher.ImportScores(ctx, examTaskID, classID, u) }
	case kind == "scores":
		scope, ok := parseScoreScope(rest)
		if !ok {
			a.println(importUsage)
			return nil
		}
		page, send = pageStats, func(u models.Upload) (json.RawMessage, error) { return a.admin.ImportScores(ctx, scope, u) }
	default:
		a.println(importUsage)
		return nil
	}

	if !a.enter(ctx, page) {
		return nil
	}

	upload, closer, err := models.OpenUpload(path, fields)
	if err != nil {
		return a.fail(ctx, "import", err)
	}
	defer closer.Close()

	raw, err := send(upload)
	if err != nil {
		return a.fail(ctx, "import", err)
	}
	a.printJSON(raw)
	return nil
}

// parseScoreScope reads <entryYear> <examName> <subjectIds> [classIds].
func parseScoreScope(args []string) (models.ScoreImportScope, bool) {
	if len(args) != 3 && len(args) != 4 {
		return models.ScoreImportScope{}, false
	}
	year, ok := parseID(args[0])
	if !ok {
		return models.ScoreImportScope{}, false
	}
	subjects, ok := parseIDList(args[2])
	if !ok {
		return models.ScoreImportScope{}, false
	}
	scope := models.ScoreImportScope{EntryYear: int(year), ExamName: args[1], SubjectIDs: subjects}
	if len(args) == 4 {
		if scope.ClassIDs, ok = parseIDList(args[3]); !ok {
			return models.ScoreImportScope{}, false
		}
	}
	return scope, true
}

// optionalYear reads an optional trailing academic year.
func optionalYear(args []string) (int, bool) {
	switch len(args) {
	case 0:
		return 0, true
	case 1:
		year, ok := parseID(args[0])
		return int(year), ok
	default:
		return 0, false
	}
}
