package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/exam-board-api/internal/models"
)

// TeacherRepository reads the jury roster: active teachers, their external
// commitments, and the subject titular mapping.
type TeacherRepository struct {
	db *sqlx.DB
}

// NewTeacherRepository constructs a TeacherRepository.
func NewTeacherRepository(db *sqlx.DB) *TeacherRepository {
	return &TeacherRepository{db: db}
}

// ListActive returns active teachers with their busy windows loaded; the
// conflict detector treats those windows like committed board slots.
func (r *TeacherRepository) ListActive(ctx context.Context) ([]models.Teacher, error) {
	const query = `SELECT id, email, full_name, active, created_at, updated_at FROM teachers WHERE active = TRUE ORDER BY full_name, id`
	var teachers []models.Teacher
	if err := r.db.SelectContext(ctx, &teachers, query); err != nil {
		return nil, fmt.Errorf("list active teachers: %w", err)
	}
	if len(teachers) == 0 {
		return teachers, nil
	}

	type busyRow struct {
		TeacherID string `db:"teacher_id"`
		models.TimeWindow
	}
	const busyQuery = `SELECT teacher_id, busy_date, start_time, end_time FROM teacher_commitments ORDER BY teacher_id, busy_date, start_time`
	var rows []busyRow
	if err := r.db.SelectContext(ctx, &rows, busyQuery); err != nil {
		return nil, fmt.Errorf("list teacher commitments: %w", err)
	}

	byTeacher := make(map[string][]models.TimeWindow, len(teachers))
	for _, row := range rows {
		byTeacher[row.TeacherID] = append(byTeacher[row.TeacherID], row.TimeWindow)
	}
	for i := range teachers {
		teachers[i].Busy = byTeacher[teachers[i].ID]
	}
	return teachers, nil
}

// ListSubjectTitulars maps each subject to the teachers formally assigned
// to teach it, preserving roster order.
func (r *TeacherRepository) ListSubjectTitulars(ctx context.Context) (map[string][]string, error) {
	type titularRow struct {
		SubjectID string `db:"subject_id"`
		TeacherID string `db:"teacher_id"`
	}
	const query = `SELECT subject_id, teacher_id FROM subject_titulars ORDER BY subject_id, position`
	var rows []titularRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list subject titulars: %w", err)
	}

	result := make(map[string][]string)
	for _, row := range rows {
		result[row.SubjectID] = append(result[row.SubjectID], row.TeacherID)
	}
	return result, nil
}
