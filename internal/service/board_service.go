package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/noah-isme/exam-board-api/internal/models"
	appErrors "github.com/noah-isme/exam-board-api/pkg/errors"
)

type boardLister interface {
	List(ctx context.Context, filter models.BoardFilter) ([]models.ExamBoard, int, error)
}

// BoardService exposes read-only board queries for inspecting
// distribution results.
type BoardService struct {
	repo   boardLister
	logger *zap.Logger
}

// NewBoardService constructs a BoardService.
func NewBoardService(repo boardLister, logger *zap.Logger) *BoardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BoardService{repo: repo, logger: logger}
}

// List returns boards matching the filter plus pagination metadata.
func (s *BoardService) List(ctx context.Context, filter models.BoardFilter) ([]models.ExamBoard, *models.Pagination, error) {
	if filter.Kind != "" && !filter.Kind.Valid() {
		return nil, nil, appErrors.Clone(appErrors.ErrValidation, "kind must be FINAL or COLLOQUIUM")
	}
	boards, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list exam boards")
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	return boards, &models.Pagination{Page: page, PageSize: size, TotalCount: total}, nil
}
