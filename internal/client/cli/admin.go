package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/gradebook/internal/client/models"
	"golang.org/x/sync/errgroup"
)

// Admin pages.
const (
	pageApproval      = "/admin/approval"
	pageTeachers      = "/admin/teachers"
	pageClasses       = "/admin/classes"
	pageStudents      = "/admin/students"
	pageStats         = "/admin/stats"
	pageAssignments   = "/admin/assignments"
	pageExams         = "/admin/exams"
	pageImportHistory = "/admin/import-history"
)

// Overview prints dashboard counters. The four reads are independent and
// run in parallel; the first failure cancels the rest.
func (a *App) Overview(ctx context.Context) error {
	if !a.enter(ctx, pageApproval) {
		return nil
	}

	sources := []struct {
		label string
		fetch func(context.Context) (json.RawMessage, error)
	}{
		{"pending users", a.admin.PendingUsers},
		{"classes", a.admin.Classes},
		{"subjects", a.admin.Subjects},
		{"exam tasks", func(ctx context.Context) (json.RawMessage, error) { return a.admin.ExamTasks(ctx, nil) }},
	}

	counts := make([]string, len(sources))
	g, gctx := errgroup.WithContext(ctx)
	for i, src := range sources {
		g.Go(func() error {
			raw, err := src.fetch(gctx)
			if err != nil {
				return fmt.Errorf("%s: %w", src.label, err)
			}
			if n, ok := countItems(raw); ok {
				counts[i] = strconv.Itoa(n)
			} else {
				counts[i] = "?"
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return a.fail(ctx, "overview", err)
	}

	for i, src := range sources {
		a.printf("%-14s %s\n", src.label+":", counts[i])
	}
	return nil
}

func (a *App) Pending(ctx context.Context) error {
	if !a.enter(ctx, pageApproval) {
		return nil
	}
	raw, err := a.admin.PendingUsers(ctx)
	if err != nil {
		return a.fail(ctx, "pending", err)
	}
	a.printJSON(raw)
	return nil
}

func (a *App) Approve(ctx context.Context, args []string) error {
	return a.withID(ctx, "approve <userId>", pageApproval, args, func(id int64) (*models.Message, error) {
		return a.admin.ApproveUser(ctx, id)
	})
}

func (a *App) Reject(ctx context.Context, args []string) error {
	return a.withID(ctx, "reject <userId>", pageApproval, args, func(id int64) (*models.Message, error) {
		return a.admin.RejectUser(ctx, id)
	})
}

func (a *App) Teachers(ctx context.Context, args []string) error {
	if !a.enter(ctx, pageTeachers) {
		return nil
	}
	var q url.Values
	if len(args) > 0 {
		q = url.Values{"keyword": {args[0]}}
	}
	raw, err := a.admin.Teachers(ctx, q)
	if err != nil {
		return a.fail(ctx, "teachers", err)
	}
	a.printJSON(raw)
	return nil
}

func (a *App) ResetPassword(ctx context.Context, args []string) error {
	return a.withID(ctx, "resetpw <teacherId>", pageTeachers, args, func(id int64) (*models.Message, error) {
		return a.admin.ResetTeacherPassword(ctx, id)
	})
}

func (a *App) Classes(ctx context.Context) error {
	return a.list(ctx, "classes", pageClasses, a.admin.Classes)
}

func (a *App) Students(ctx context.Context, args []string) error {
	if !a.enter(ctx, pageStudents) {
		return nil
	}
	var q url.Values
	if len(args) > 0 {
		q = url.Values{"class_id": {args[0]}}
	}
	raw, err := a.admin.Students(ctx, q)
	if err != nil {
		return a.fail(ctx, "students", err)
	}
	a.printJSON(raw)
	return nil
}

func (a *App) Subjects(ctx context.Context) error {
	return a.list(ctx, "subjects", pageAssignments, a.admin.Subjects)
}

func (a *App) Exams(ctx context.Context) error {
	return a.list(ctx, "exams", pageExams, func(ctx context.Context) (json.RawMessage, error) {
		return a.admin.ExamTasks(ctx, nil)
	})
}

// History prints one page of the import history.
func (a *App) History(ctx context.Context, args []string) error {
	if !a.enter(ctx, pageImportHistory) {
		return nil
	}
	q := url.Values{"page": {"1"}}
	if len(args) > 0 {
		q.Set("page", args[0])
	}
	page, err := a.admin.ImportHistory(ctx, q)
	if err != nil {
		return a.fail(ctx, "history", err)
	}
	for _, b := range page.Items {
		flag := ""
		if b.RolledBackAt != nil {
			flag = " (rolled back)"
		} else if b.CanRollback {
			flag = " (can roll back)"
		}
		label := orDefault(b.ImportTypeLabel, b.ImportType)
		a.printf("#%d %s %s%s\n", b.ID, label, b.SourceFilename, flag)
	}
	a.printf("page %d, %d of %d\n", page.Page, len(page.Items), page.Total)
	return nil
}

func (a *App) Rollback(ctx context.Context, args []string) error {
	return a.withID(ctx, "rollback <batchId>", pageImportHistory, args, func(id int64) (*models.Message, error) {
		return a.admin.RollbackImport(ctx, id)
	})
}

func (a *App) Certificate(ctx context.Context, args []string) error {
	if len(args) != 2 {
		a.println("Usage: certificate <studentId> <file>")
		return nil
	}
	id, ok := parseID(args[0])
	if !ok {
		a.println("Usage: certificate <studentId> <file>")
		return nil
	}
	if !a.enter(ctx, pageStudents) {
		return nil
	}
	f, err := a.admin.StudentCertificate(ctx, id)
	if err != nil {
		return a.fail(ctx, "certificate", err)
	}
	return a.saveFile(ctx, "certificate", f, args[1])
}

func (a *App) list(ctx context.Context, what, page string, fetch func(context.Context) (json.RawMessage, error)) error {
	if !a.enter(ctx, page) {
		return nil
	}
	raw, err := fetch(ctx)
	if err != nil {
		return a.fail(ctx, what, err)
	}
	a.printJSON(raw)
	return nil
}

// withID runs a single-id mutation after entering page.
func (a *App) withID(ctx context.Context, usage, page string, args []string, do func(int64) (*models.Message, error)) error {
	if len(args) != 1 {
		a.println("Usage: " + usage)
		return nil
	}
	id, ok := parseID(args[0])
	if !ok {
		a.println("Usage: " + usage)
		return nil
	}
	if !a.enter(ctx, page) {
		return nil
	}
	msg, err := do(id)
	if err != nil {
		what, _, _ := strings.Cut(usage, " ")
		return a.fail(ctx, what, err)
	}
	a.printMessage(msg, "done")
	return nil
}
