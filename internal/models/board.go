package models

import "time"

// BoardKind discriminates the two examination session types.
type BoardKind string

const (
	// BoardKindFinal is a final-exam board synchronized across all divisions
	// of the same subject and cohort year.
	BoardKindFinal BoardKind = "FINAL"
	// BoardKindColloquium is a remedial board scoped to a single course.
	BoardKindColloquium BoardKind = "COLLOQUIUM"
)

// Valid reports whether the kind is one of the known values.
func (k BoardKind) Valid() bool {
	return k == BoardKindFinal || k == BoardKindColloquium
}

// BoardStatus tracks the lifecycle of an exam board.
type BoardStatus string

const (
	// BoardStatusCreated marks a board eligible for (re)distribution.
	BoardStatusCreated BoardStatus = "CREATED"
	// BoardStatusFinalized is terminal; finalized boards are immutable and
	// never enter the distribution engine.
	BoardStatusFinalized BoardStatus = "FINALIZED"
)

// ExamBoard represents one examination session for a subject and course.
type ExamBoard struct {
	ID          string      `db:"id" json:"id"`
	SubjectID   string      `db:"subject_id" json:"subject_id"`
	SubjectName string      `db:"subject_name" json:"subject_name"`
	CourseID    string      `db:"course_id" json:"course_id"`
	CohortYear  int         `db:"cohort_year" json:"cohort_year"`
	Kind        BoardKind   `db:"kind" json:"kind"`
	Status      BoardStatus `db:"status" json:"status"`
	Date        *time.Time  `db:"exam_date" json:"exam_date,omitempty"`
	StartTime   string      `db:"start_time" json:"start_time,omitempty"`
	EndTime     string      `db:"end_time" json:"end_time,omitempty"`
	RoomID      *string     `db:"room_id" json:"room_id,omitempty"`
	TeacherIDs  []string    `db:"-" json:"teacher_ids"`
	CreatedAt   time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time   `db:"updated_at" json:"updated_at"`
}

// Assigned reports whether the board carries a full slot assignment.
func (b *ExamBoard) Assigned() bool {
	return b.Date != nil && b.StartTime != "" && b.EndTime != ""
}

// BoardAssignment carries the mutable slot fields written back after a
// distribution run.
type BoardAssignment struct {
	Date      *time.Time
	StartTime string
	EndTime   string
	RoomID    *string
}

// BoardFilter describes query params for listing exam boards.
type BoardFilter struct {
	Kind       BoardKind
	Status     BoardStatus
	CohortYear int
	SubjectID  string
	CourseID   string
	Page       int
	PageSize   int
	SortBy     string
	SortOrder  string
}

// DistributionSummary aggregates per-run outcomes; partial failures are
// recorded here rather than surfaced as errors.
type DistributionSummary struct {
	Kind              BoardKind `json:"kind"`
	GroupsTotal       int       `json:"groups_total"`
	GroupsPlaced      int       `json:"groups_placed"`
	GroupsUnplaced    int       `json:"groups_unplaced"`
	UnplacedGroups    []string  `json:"unplaced_groups,omitempty"`
	IncompleteJuries  []string  `json:"incomplete_juries,omitempty"`
	RoomsAssigned     int       `json:"rooms_assigned"`
	TeachersAssigned  int       `json:"teachers_assigned"`
	PersistenceOK     int       `json:"persistence_ok"`
	PersistenceFailed int       `json:"persistence_failed"`
	BusinessDays      int       `json:"business_days"`
	TurnsPerDay       int       `json:"turns_per_day"`
	GeneratedAt       time.Time `json:"generated_at"`
}
