package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/gradebook/internal/client/client"
	"github.com/dmitrijs2005/gradebook/internal/client/models"
)

// AdminService binds the /admin endpoints. Query parameters and bodies are
// forwarded untouched; the backend owns their shape.
type AdminService struct {
	api client.API
}

func NewAdminService(api client.API) *AdminService {
	return &AdminService{api: api}
}

func getRaw(ctx context.Context, api client.API, path string, query url.Values) (json.RawMessage, error) {
	var out json.RawMessage
	if err := api.DoJSON(ctx, http.MethodGet, path, query, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func postRaw(ctx context.Context, api client.API, path string, body any) (json.RawMessage, error) {
	var out json.RawMessage
	if err := api.DoJSON(ctx, http.MethodPost, path, nil, body, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func send(ctx context.Context, api client.API, method, path string, body any) (*models.Message, error) {
	var msg models.Message
	if err := api.DoJSON(ctx, method, path, nil, body, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// Users and teachers.

func (s *AdminService) PendingUsers(ctx context.Context) (json.RawMessage, error) {
	return getRaw(ctx, s.api, "/admin/pending_users", nil)
}

func (s *AdminService) ApproveUser(ctx context.Context, id int64) (*models.Message, error) {
	return send(ctx, s.api, http.MethodPost, fmt.Sprintf("/admin/approve_user/%d", id), nil)
}

func (s *AdminService) RejectUser(ctx context.Context, id int64) (*models.Message, error) {
	return send(ctx, s.api, http.MethodDelete, fmt.Sprintf("/admin/reject_user/%d", id), nil)
}

func (s *AdminService) Teachers(ctx context.Context, params url.Values) (json.RawMessage, error) {
	return getRaw(ctx, s.api, "/admin/teachers", params)
}

func (s *AdminService) UpdateTeacher(ctx context.Context, id int64, data any) (*models.Message, error) {
	return send(ctx, s.api, http.MethodPut, fmt.Sprintf("/admin/teachers/%d", id), data)
}

func (s *AdminService) ImportTeachers(ctx context.Context, upload models.Upload) (json.RawMessage, error) {
	return s.upload(ctx, "/admin/teachers/import", upload)
}

func (s *AdminService) ResetTeacherPassword(ctx context.Context, teacherID int64) (*models.Message, error) {
	return send(ctx, s.api, http.MethodPost, fmt.Sprintf("/admin/teachers/%d/reset_password", teacherID), nil)
}

func (s *AdminService) ExportTeachers(ctx context.Context, params url.Values) (*models.File, error) {
	return s.api.Download(ctx, http.MethodGet, "/admin/teachers/export", params, nil)
}

// Classes.

func (s *AdminService) Classes(ctx context.Context) (json.RawMessage, error) {
	return getRaw(ctx, s.api, "/admin/classes", nil)
}

func (s *AdminService) AddClass(ctx context.Context, data any) (*models.Message, error) {
	return send(ctx, s.api, http.MethodPost, "/admin/classes", data)
}

func (s *AdminService) DeleteClass(ctx context.Context, id int64) (*models.Message, error) {
	return send(ctx, s.api, http.MethodDelete, fmt.Sprintf("/admin/classes/%d", id), nil)
}

// Students.

func (s *AdminService) Students(ctx context.Context, params url.Values) (json.RawMessage, error) {
	return getRaw(ctx, s.api, "/admin/students", params)
}

func (s *AdminService) AddStudent(ctx context.Context, data any) (*models.Message, error) {
	return send(ctx, s.api, http.MethodPost, "/admin/students", data)
}

func (s *AdminService) UpdateStudent(ctx context.Context, id int64, data any) (*models.Message, error) {
	return send(ctx, s.api, http.MethodPut, fmt.Sprintf("/admin/students/%d", id), data)
}

func (s *AdminService) DeleteStudent(ctx context.Context, id int64) (*models.Message, error) {
	return send(ctx, s.api, http.MethodDelete, fmt.Sprintf("/admin/students/%d", id), nil)
}

func (s *AdminService) ImportStudents(ctx context.Context, upload models.Upload) (json.RawMessage, error) {
	return s.upload(ctx, "/admin/students/import", upload)
}

func (s *AdminService) ExportStudents(ctx context.Context, params url.Values) (*models.File, error) {
	return s.api.Download(ctx, http.MethodGet, "/admin/students/export", params, nil)
}

func (s *AdminService) StudentCertificate(ctx context.Context, studentID int64) (*models.File, error) {
	return s.api.Download(ctx, http.MethodGet, fmt.Sprintf("/admin/students/%d/certificate", studentID), nil, nil)
}

// Statistics.

func (s *AdminService) ClassReport(ctx context.Context, params url.Values) (json.RawMessage, error) {
	return getRaw(ctx, s.api, "/admin/stats/class_report", params)
}

func (s *AdminService) ExamNames(ctx context.Context, entryYear string) (json.RawMessage, error) {
	return getRaw(ctx, s.api, "/admin/stats/exam_names", url.Values{"entry_year": {entryYear}})
}

func (s *AdminService) ComprehensiveReport(ctx context.Context, data any) (json.RawMessage, error) {
	return postRaw(ctx, s.api, "/admin/stats/comprehensive_report", data)
}

func (s *AdminService) ExportComprehensiveReport(ctx context.Context, data any) (*models.File, error) {
	return s.api.Download(ctx, http.MethodPost, "/admin/stats/comprehensive_report_export", nil, data)
}

func (s *AdminService) ScoreRankTrend(ctx context.Context, data any) (json.RawMessage, error) {
	return postRaw(ctx, s.api, "/admin/stats/score_rank_trend", data)
}

func (s *AdminService) ExportScoreRankTrend(ctx context.Context, data any) (*models.File, error) {
	return s.api.Download(ctx, http.MethodPost, "/admin/stats/score_rank_trend_export", nil, data)
}

func (s *AdminService) ClassScoreStats(ctx context.Context, data any) (json.RawMessage, error) {
	return postRaw(ctx, s.api, "/admin/stats/class_score_stats", data)
}

func (s *AdminService) TeacherScoreStats(ctx context.Context, data any) (json.RawMessage, error) {
	return postRaw(ctx, s.api, "/admin/stats/teacher_score_stats", data)
}

func (s *AdminService) ExportTeacherScoreStats(ctx context.Context, data any) (*models.File, error) {
	return s.api.Download(ctx, http.MethodPost, "/admin/stats/teacher_score_stats_export", nil, data)
}

// ScoreTemplate downloads either an empty entry template or a backup of
// existing scores, depending on data.
func (s *AdminService) ScoreTemplate(ctx context.Context, data any) (*models.File, error) {
	return s.api.Download(ctx, http.MethodPost, "/admin/stats/score_template", nil, data)
}

// ImportScores uploads a score sheet for the given scope. The scope is
// checked before anything is sent.
func (s *AdminService) ImportScores(ctx context.Context, scope models.ScoreImportScope, upload models.Upload) (json.RawMessage, error) {
	if err := models.Validate(scope); err != nil {
		return nil, invalid(err)
	}
	fields, err := scope.Fields()
	if err != nil {
		return nil, err
	}
	upload.Fields = withFields(upload.Fields, fields)
	return s.upload(ctx, "/admin/stats/import_scores", upload)
}

// Course assignments and subjects.

func (s *AdminService) Assignments(ctx context.Context, params url.Values) (json.RawMessage, error) {
	return getRaw(ctx, s.api, "/admin/assignments", params)
}

func (s *AdminService) AddAssignment(ctx context.Context, data any) (*models.Message, error) {
	return send(ctx, s.api, http.MethodPost, "/admin/assignments", data)
}

func (s *AdminService) DeleteAssignment(ctx context.Context, id int64) (*models.Message, error) {
	return send(ctx, s.api, http.MethodDelete, fmt.Sprintf("/admin/assignments/%d", id), nil)
}

func (s *AdminService) ImportAssignments(ctx context.Context, upload models.Upload) (json.RawMessage, error) {
	return s.upload(ctx, "/admin/assignments/import", upload)
}

func (s *AdminService) ExportAssignments(ctx context.Context) (*models.File, error) {
	return s.api.Download(ctx, http.MethodGet, "/admin/assignments/export", nil, nil)
}

func (s *AdminService) Subjects(ctx context.Context) (json.RawMessage, error) {
	return getRaw(ctx, s.api, "/admin/subjects", nil)
}

// Exam tasks.

func (s *AdminService) ExamTasks(ctx context.Context, params url.Values) (json.RawMessage, error) {
	return getRaw(ctx, s.api, "/admin/exam_tasks", params)
}

func (s *AdminService) AddExamTask(ctx context.Context, data any) (*models.Message, error) {
	return send(ctx, s.api, http.MethodPost, "/admin/exam_tasks", data)
}

func (s *AdminService) UpdateExamTask(ctx context.Context, id int64, data any) (*models.Message, error) {
	return send(ctx, s.api, http.MethodPut, fmt.Sprintf("/admin/exam_tasks/%d", id), data)
}

func (s *AdminService) DeleteExamTask(ctx context.Context, id int64) (*models.Message, error) {
	return send(ctx, s.api, http.MethodDelete, fmt.Sprintf("/admin/exam_tasks/%d", id), nil)
}

// System settings.

func (s *AdminService) SystemSettings(ctx context.Context) (json.RawMessage, error) {
	return getRaw(ctx, s.api, "/admin/system/settings", nil)
}

func (s *AdminService) UpdateSystemSettings(ctx context.Context, data any) (*models.Message, error) {
	return send(ctx, s.api, http.MethodPost, "/admin/system/settings", data)
}

// Import history.

func (s *AdminService) ImportHistory(ctx context.Context, params url.Values) (*models.ImportHistoryPage, error) {
	var page models.ImportHistoryPage
	if err := s.api.DoJSON(ctx, http.MethodGet, "/admin/imports/history", params, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (s *AdminService) RollbackImport(ctx context.Context, batchID int64) (*models.Message, error) {
	return send(ctx, s.api, http.MethodPost, fmt.Sprintf("/admin/imports/%d/rollback", batchID), nil)
}

// AuditLogs is restricted to the super administrator. Other admins get a
// 403, which ends their session like any other 403.
func (s *AdminService) AuditLogs(ctx context.Context, params url.Values) (json.RawMessage, error) {
	return getRaw(ctx, s.api, "/admin/audit_logs", params)
}

// Score entry on behalf of teachers.

func (s *AdminService) ScoreEntryExams(ctx context.Context, params url.Values) (json.RawMessage, error) {
	return getRaw(ctx, s.api, "/admin/score_entry/exams", params)
}

func (s *AdminService) ScoreEntryStudents(ctx context.Context, params url.Values) (json.RawMessage, error) {
	return getRaw(ctx, s.api, "/admin/score_entry/student_list", params)
}

func (s *AdminService) SaveScoreEntry(ctx context.Context, data any) (*models.Message, error) {
	return send(ctx, s.api, http.MethodPost, "/admin/score_entry/save", data)
}

func (s *AdminService) upload(ctx context.Context, path string, upload models.Upload) (json.RawMessage, error) {
	var out json.RawMessage
	if err := s.api.Upload(ctx, path, upload, &out); err != nil {
		return nil, err
	}
	return out, nil
}
