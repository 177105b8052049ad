package models

import (
	"encoding/json"
	"strconv"
)

// ImportBatch is one row of GET /admin/imports/history.
type ImportBatch struct {
	ID              int64          `json:"id"`
	ImportType      string         `json:"import_type"`
	ImportTypeLabel string         `json:"import_type_label"`
	SourceFilename  string         `json:"source_filename"`
	Scope           map[string]any `json:"scope"`
	Summary         map[string]any `json:"summary"`
	CanRollback     bool           `json:"can_rollback"`
	RolledBackAt    *string        `json:"rolled_back_at"`
	RollbackNote    *string        `json:"rollback_note"`
	CreateTime      *string        `json:"create_time"`
}

// ImportHistoryPage is the paginated import history.
type ImportHistoryPage struct {
	Items    []ImportBatch `json:"items"`
	Total    int           `json:"total"`
	Page     int           `json:"page"`
	PageSize int           `json:"page_size"`
}

// Course is one entry of GET /teacher/my_courses.
type Course struct {
	AssignmentID int64  `json:"assignment_id"`
	ClassID      int64  `json:"class_id"`
	GradeClass   string `json:"grade_class"`
	SubjectName  string `json:"subject_name"`
	SubjectID    int64  `json:"subject_id"`
}

// ScoreImportScope says what an admin score sheet fills in: one cohort
// (entry year), one exam name and a set of subjects, optionally limited to
// some classes.
type ScoreImportScope struct {
	EntryYear  int     `validate:"required,gt=0"`
	ExamName   string  `validate:"required"`
	SubjectIDs []int64 `validate:"required,min=1,dive,gt=0"`
	ClassIDs   []int64 `validate:"omitempty,dive,gt=0"`
}

// Fields encodes the scope as the form values of
// POST /admin/stats/import_scores. Id lists travel as JSON arrays; an empty
// class list means every class of the cohort.
func (s ScoreImportScope) Fields() (map[string]string, error) {
	subjects, err := json.Marshal(s.SubjectIDs)
	if err != nil {
		return nil, err
	}
	classIDs := s.ClassIDs
	if classIDs == nil {
		classIDs = []int64{}
	}
	classes, err := json.Marshal(classIDs)
	if err != nil {
		return nil, err
	}
	return map[string]string{
		"entry_year":  strconv.Itoa(s.EntryYear),
		"exam_name":   s.ExamName,
		"subject_ids": string(subjects),
		"class_ids":   string(classes),
	}, nil
}

// AcademicYearFields is the optional form value of the teacher and
// assignment imports. A zero year sends nothing and the backend uses the
// current one.
func AcademicYearFields(year int) map[string]string {
	if year <= 0 {
		return nil
	}
	return map[string]string{"academic_year": strconv.Itoa(year)}
}
