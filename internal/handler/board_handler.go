package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/exam-board-api/internal/dto"
	"github.com/noah-isme/exam-board-api/internal/models"
	appErrors "github.com/noah-isme/exam-board-api/pkg/errors"
	"github.com/noah-isme/exam-board-api/pkg/response"
)

type boardDistributor interface {
	Distribute(ctx context.Context, req dto.DistributeRequest) (*dto.DistributeResponse, error)
	LastSummary(ctx context.Context, kind models.BoardKind) (*models.DistributionSummary, error)
}

type boardQuerier interface {
	List(ctx context.Context, filter models.BoardFilter) ([]models.ExamBoard, *models.Pagination, error)
}

// BoardHandler exposes exam board distribution and inspection endpoints.
type BoardHandler struct {
	distributor boardDistributor
	boards      boardQuerier
}

// NewBoardHandler constructs the handler.
func NewBoardHandler(distributor boardDistributor, boards boardQuerier) *BoardHandler {
	return &BoardHandler{distributor: distributor, boards: boards}
}

// Distribute godoc
// @Summary Distribute CREATED exam boards over a business-day range
// @Tags Distribution
// @Accept json
// @Produce json
// @Param payload body dto.DistributeRequest true "Distribution payload"
// @Success 200 {object} response.Envelope
// @Router /exam-boards/distribute [post]
func (h *BoardHandler) Distribute(c *gin.Context) {
	var req dto.DistributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid distribution payload"))
		return
	}
	resp, err := h.distributor.Distribute(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp, nil)
}

// Summary godoc
// @Summary Last distribution run summary for a board kind
// @Tags Distribution
// @Produce json
// @Param kind query string true "FINAL or COLLOQUIUM"
// @Success 200 {object} response.Envelope
// @Router /exam-boards/distribution/summary [get]
func (h *BoardHandler) Summary(c *gin.Context) {
	var q dto.SummaryQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid summary query"))
		return
	}
	summary, err := h.distributor.LastSummary(c.Request.Context(), q.Kind)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summary, nil)
}

// List godoc
// @Summary List exam boards
// @Tags Boards
// @Produce json
// @Param kind query string false "FINAL or COLLOQUIUM"
// @Param status query string false "CREATED or FINALIZED"
// @Param year query int false "Cohort year"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /exam-boards [get]
func (h *BoardHandler) List(c *gin.Context) {
	filter := models.BoardFilter{
		Kind:      models.BoardKind(c.Query("kind")),
		Status:    models.BoardStatus(c.Query("status")),
		SubjectID: c.Query("subjectId"),
		CourseID:  c.Query("courseId"),
		SortBy:    c.Query("sort"),
		SortOrder: c.Query("order"),
	}
	if raw := c.Query("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "year must be an integer"))
			return
		}
		filter.CohortYear = year
	}
	filter.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	filter.PageSize, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))

	boards, pagination, err := h.boards.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, boards, pagination)
}
