package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/gradebook/internal/client/client"
	"github.com/dmitrijs2005/gradebook/internal/client/models"
)

// TeacherService binds the /teacher endpoints.
type TeacherService struct {
	api client.API
}

func NewTeacherService(api client.API) *TeacherService {
	return &TeacherService{api: api}
}

func (s *TeacherService) MyCourses(ctx context.Context) ([]models.Course, error) {
	return s.courses(ctx, "/teacher/my_courses")
}

// MyCoursesFor lists the courses of another user; admins use it to enter
// scores on a teacher's behalf.
func (s *TeacherService) MyCoursesFor(ctx context.Context, userID int64) ([]models.Course, error) {
	return s.courses(ctx, fmt.Sprintf("/teacher/my_courses/%d", userID))
}

func (s *TeacherService) courses(ctx context.Context, path string) ([]models.Course, error) {
	var out []models.Course
	if err := s.api.DoJSON(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *TeacherService) ScoreList(ctx context.Context, params url.Values) (json.RawMessage, error) {
	return getRaw(ctx, s.api, "/teacher/score_list", params)
}

func (s *TeacherService) SaveScores(ctx context.Context, data any) (*models.Message, error) {
	return send(ctx, s.api, http.MethodPost, "/teacher/save_scores", data)
}

func (s *TeacherService) AvailableExams(ctx context.Context, params url.Values) (json.RawMessage, error) {
	return getRaw(ctx, s.api, "/teacher/available_exams", params)
}

func (s *TeacherService) ExportScores(ctx context.Context, params url.Values) (*models.File, error) {
	return s.api.Download(ctx, http.MethodGet, "/teacher/export_scores", params, nil)
}

// ImportScores uploads a score sheet for one exam task and class.
func (s *TeacherService) ImportScores(ctx context.Context, examTaskID, classID int64, upload models.Upload) (json.RawMessage, error) {
	upload.Fields = withFields(upload.Fields, map[string]string{
		"exam_task_id": strconv.FormatInt(examTaskID, 10),
		"class_id":     strconv.FormatInt(classID, 10),
	})

	var out json.RawMessage
	if err := s.api.Upload(ctx, "/teacher/import_scores", upload, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// withFields returns a copy of base with extra laid over it; the caller's
// map is left alone.
func withFields(base, extra map[string]string) map[string]string {
	out := make(map[string]string, len(base)+len(extra))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}
