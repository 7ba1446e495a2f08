package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/exam-board-api/internal/models"
)

// BoardRepository manages persistence for exam boards. It is the
// persistence collaborator of the distribution engine: every write is an
// independent call that may fail without affecting the others.
type BoardRepository struct {
	db *sqlx.DB
}

// NewBoardRepository constructs a BoardRepository.
func NewBoardRepository(db *sqlx.DB) *BoardRepository {
	return &BoardRepository{db: db}
}

const boardColumns = "id, subject_id, subject_name, course_id, cohort_year, kind, status, exam_date, start_time, end_time, room_id, created_at, updated_at"

// ListForDistribution returns CREATED boards of one kind with their
// current jury loaded, ordered deterministically so repeated runs build
// identical groups.
func (r *BoardRepository) ListForDistribution(ctx context.Context, kind models.BoardKind) ([]models.ExamBoard, error) {
	query := fmt.Sprintf(`SELECT %s FROM exam_boards WHERE kind = $1 AND status = $2 ORDER BY cohort_year, subject_name, course_id, id`, boardColumns)
	var boards []models.ExamBoard
	if err := r.db.SelectContext(ctx, &boards, query, kind, models.BoardStatusCreated); err != nil {
		return nil, fmt.Errorf("list boards for distribution: %w", err)
	}
	if err := r.loadTeachers(ctx, boards); err != nil {
		return nil, err
	}
	return boards, nil
}

// List returns boards matching filters along with total count.
func (r *BoardRepository) List(ctx context.Context, filter models.BoardFilter) ([]models.ExamBoard, int, error) {
	base := "FROM exam_boards WHERE 1=1"
	var conditions []string
	var args []interface{}

	if filter.Kind != "" {
		conditions = append(conditions, fmt.Sprintf("kind = $%d", len(args)+1))
		args = append(args, filter.Kind)
	}
	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)+1))
		args = append(args, filter.Status)
	}
	if filter.CohortYear > 0 {
		conditions = append(conditions, fmt.Sprintf("cohort_year = $%d", len(args)+1))
		args = append(args, filter.CohortYear)
	}
	if filter.SubjectID != "" {
		conditions = append(conditions, fmt.Sprintf("subject_id = $%d", len(args)+1))
		args = append(args, filter.SubjectID)
	}
	if filter.CourseID != "" {
		conditions = append(conditions, fmt.Sprintf("course_id = $%d", len(args)+1))
		args = append(args, filter.CourseID)
	}

	if len(conditions) > 0 {
		base += " AND " + strings.Join(conditions, " AND ")
	}

	sortBy := filter.SortBy
	allowedSorts := map[string]string{
		"exam_date":    "exam_date",
		"subject_name": "subject_name",
		"cohort_year":  "cohort_year",
		"created_at":   "created_at",
	}
	column, ok := allowedSorts[sortBy]
	if !ok {
		column = "created_at"
	}

	order := strings.ToUpper(filter.SortOrder)
	if order != "ASC" && order != "DESC" {
		order = "DESC"
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	offset := (page - 1) * size

	query := fmt.Sprintf("SELECT %s %s ORDER BY %s %s LIMIT %d OFFSET %d", boardColumns, base, column, order, size, offset)
	var boards []models.ExamBoard
	if err := r.db.SelectContext(ctx, &boards, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list boards: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count boards: %w", err)
	}

	if err := r.loadTeachers(ctx, boards); err != nil {
		return nil, 0, err
	}
	return boards, total, nil
}

// UpdateAssignment writes the slot fields computed by the engine. Only
// CREATED boards are touched; finalized boards are immutable.
func (r *BoardRepository) UpdateAssignment(ctx context.Context, id string, assignment models.BoardAssignment) error {
	const query = `UPDATE exam_boards
		SET exam_date = $1, start_time = $2, end_time = $3, room_id = $4, updated_at = $5
		WHERE id = $6 AND status = $7`
	res, err := r.db.ExecContext(ctx, query,
		assignment.Date, assignment.StartTime, assignment.EndTime, assignment.RoomID,
		time.Now().UTC(), id, models.BoardStatusCreated,
	)
	if err != nil {
		return fmt.Errorf("update board assignment: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update board assignment: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// AssignTeachers replaces the board's jury, preserving the given order.
func (r *BoardRepository) AssignTeachers(ctx context.Context, boardID string, teacherIDs []string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("assign teachers: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM exam_board_teachers WHERE board_id = $1`, boardID); err != nil {
		return fmt.Errorf("clear board jury: %w", err)
	}
	for position, teacherID := range teacherIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO exam_board_teachers (board_id, teacher_id, position) VALUES ($1, $2, $3)`,
			boardID, teacherID, position,
		); err != nil {
			return fmt.Errorf("insert board jury member: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("assign teachers: %w", err)
	}
	return nil
}

type boardTeacherRow struct {
	BoardID   string `db:"board_id"`
	TeacherID string `db:"teacher_id"`
}

func (r *BoardRepository) loadTeachers(ctx context.Context, boards []models.ExamBoard) error {
	if len(boards) == 0 {
		return nil
	}
	ids := make([]string, 0, len(boards))
	for _, board := range boards {
		ids = append(ids, board.ID)
	}

	query, args, err := sqlx.In(`SELECT board_id, teacher_id FROM exam_board_teachers WHERE board_id IN (?) ORDER BY board_id, position`, ids)
	if err != nil {
		return fmt.Errorf("load board juries: %w", err)
	}
	var rows []boardTeacherRow
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return fmt.Errorf("load board juries: %w", err)
	}

	byBoard := make(map[string][]string, len(boards))
	for _, row := range rows {
		byBoard[row.BoardID] = append(byBoard[row.BoardID], row.TeacherID)
	}
	for i := range boards {
		boards[i].TeacherIDs = byBoard[boards[i].ID]
	}
	return nil
}
