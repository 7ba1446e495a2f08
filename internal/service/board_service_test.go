package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/exam-board-api/internal/models"
	appErrors "github.com/noah-isme/exam-board-api/pkg/errors"
)

type boardListerStub struct {
	boards []models.ExamBoard
	total  int
	filter models.BoardFilter
	err    error
}

func (s *boardListerStub) List(ctx context.Context, filter models.BoardFilter) ([]models.ExamBoard, int, error) {
	s.filter = filter
	if s.err != nil {
		return nil, 0, s.err
	}
	return s.boards, s.total, nil
}

func TestBoardServiceListDefaultsPagination(t *testing.T) {
	stub := &boardListerStub{boards: []models.ExamBoard{{ID: "b1"}}, total: 41}
	svc := NewBoardService(stub, nil)

	boards, pagination, err := svc.List(context.Background(), models.BoardFilter{Kind: models.BoardKindFinal})
	require.NoError(t, err)
	assert.Len(t, boards, 1)
	assert.Equal(t, 1, pagination.Page)
	assert.Equal(t, 20, pagination.PageSize)
	assert.Equal(t, 41, pagination.TotalCount)
}

func TestBoardServiceListRejectsUnknownKind(t *testing.T) {
	svc := NewBoardService(&boardListerStub{}, nil)

	_, _, err := svc.List(context.Background(), models.BoardFilter{Kind: "MIDTERM"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestBoardServiceListWrapsRepositoryError(t *testing.T) {
	svc := NewBoardService(&boardListerStub{err: assert.AnError}, nil)

	_, _, err := svc.List(context.Background(), models.BoardFilter{})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInternal.Code, appErrors.FromError(err).Code)
}

func TestSummaryCacheNilIsNoOp(t *testing.T) {
	var cache *SummaryCache

	require.NoError(t, cache.Save(context.Background(), models.DistributionSummary{Kind: models.BoardKindFinal}))

	summary, err := cache.Last(context.Background(), models.BoardKindFinal)
	require.NoError(t, err)
	assert.Nil(t, summary)
}
