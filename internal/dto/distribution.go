package dto

import (
	"github.com/noah-isme/exam-board-api/internal/models"
)

// DistributeRequest instructs the engine to distribute all CREATED boards
// of one kind across the given business-day range.
type DistributeRequest struct {
	Kind           models.BoardKind `json:"kind" validate:"required,oneof=FINAL COLLOQUIUM"`
	DateRangeStart string           `json:"dateRangeStart" validate:"required,datetime=2006-01-02"`
	DateRangeEnd   string           `json:"dateRangeEnd" validate:"required,datetime=2006-01-02"`

	// Zero values fall back to the service defaults from configuration.
	TurnsPerDay         int    `json:"turnsPerDay" validate:"omitempty,min=1,max=8"`
	DayStartTime        string `json:"dayStartTime" validate:"omitempty,datetime=15:04"`
	TurnIntervalMinutes int    `json:"turnIntervalMinutes" validate:"omitempty,min=15,max=240"`
	AssignRooms         *bool  `json:"assignRooms"`
}

// DistributeResponse returns the updated boards plus the run summary.
type DistributeResponse struct {
	Boards  []models.ExamBoard         `json:"boards"`
	Summary models.DistributionSummary `json:"summary"`
}

// SummaryQuery selects the cached summary of the last run for a kind.
type SummaryQuery struct {
	Kind models.BoardKind `form:"kind" json:"kind" validate:"required,oneof=FINAL COLLOQUIUM"`
}
