package service

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/exam-board-api/internal/dto"
	"github.com/noah-isme/exam-board-api/internal/models"
	"github.com/noah-isme/exam-board-api/pkg/config"
	appErrors "github.com/noah-isme/exam-board-api/pkg/errors"
)

type boardRepository interface {
	ListForDistribution(ctx context.Context, kind models.BoardKind) ([]models.ExamBoard, error)
	UpdateAssignment(ctx context.Context, id string, assignment models.BoardAssignment) error
	AssignTeachers(ctx context.Context, boardID string, teacherIDs []string) error
}

type roomLister interface {
	ListActive(ctx context.Context) ([]models.Room, error)
}

type teacherDirectory interface {
	ListActive(ctx context.Context) ([]models.Teacher, error)
	ListSubjectTitulars(ctx context.Context) (map[string][]string, error)
}

type summaryStore interface {
	Save(ctx context.Context, summary models.DistributionSummary) error
	Last(ctx context.Context, kind models.BoardKind) (*models.DistributionSummary, error)
}

type distributionObserver interface {
	ObserveDistributionRun(summary models.DistributionSummary)
}

// DistributionService computes conflict-free date/time/room/jury
// assignments for exam boards and reports them to the persistence layer.
type DistributionService struct {
	boards    boardRepository
	rooms     roomLister
	teachers  teacherDirectory
	summaries summaryStore
	observer  distributionObserver
	validator *validator.Validate
	logger    *zap.Logger
	defaults  config.DistributionConfig
	seed      func() int64
}

// DistributionServiceConfig governs engine defaults and randomness.
type DistributionServiceConfig struct {
	Defaults config.DistributionConfig
	// Seed supplies the per-run randomness source; tests fix it for
	// deterministic room offsets and jury draws.
	Seed func() int64
}

// NewDistributionService wires the engine's collaborators. The summary
// store and observer are optional.
func NewDistributionService(
	boards boardRepository,
	rooms roomLister,
	teachers teacherDirectory,
	summaries summaryStore,
	observer distributionObserver,
	validate *validator.Validate,
	logger *zap.Logger,
	cfg DistributionServiceConfig,
) *DistributionService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Seed == nil {
		cfg.Seed = func() int64 { return time.Now().UnixNano() }
	}
	if cfg.Defaults.TurnsPerDay <= 0 {
		cfg.Defaults.TurnsPerDay = 2
	}
	if cfg.Defaults.DayStartTime == "" {
		cfg.Defaults.DayStartTime = "08:00"
	}
	if cfg.Defaults.TurnIntervalMinutes <= 0 {
		cfg.Defaults.TurnIntervalMinutes = 120
	}
	return &DistributionService{
		boards:    boards,
		rooms:     rooms,
		teachers:  teachers,
		summaries: summaries,
		observer:  observer,
		validator: validate,
		logger:    logger,
		defaults:  cfg.Defaults,
		seed:      cfg.Seed,
	}
}

// Distribute runs one sequential batch over every CREATED board of the
// requested kind. Capacity shortfall aborts before any mutation; unplaced
// groups, short juries, and persistence failures are recorded in the
// summary and never abort the batch.
func (s *DistributionService) Distribute(ctx context.Context, req dto.DistributeRequest) (*dto.DistributeResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid distribution payload")
	}

	rangeStart, err := time.Parse("2006-01-02", req.DateRangeStart)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "dateRangeStart must be YYYY-MM-DD")
	}
	rangeEnd, err := time.Parse("2006-01-02", req.DateRangeEnd)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "dateRangeEnd must be YYYY-MM-DD")
	}
	if rangeEnd.Before(rangeStart) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "dateRangeEnd must not precede dateRangeStart")
	}

	days := businessDays(rangeStart, rangeEnd)
	if len(days) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "date range contains no business days")
	}

	turnsPerDay := req.TurnsPerDay
	if turnsPerDay <= 0 {
		turnsPerDay = s.defaults.TurnsPerDay
	}
	dayStart := req.DayStartTime
	if dayStart == "" {
		dayStart = s.defaults.DayStartTime
	}
	turnMinutes := req.TurnIntervalMinutes
	if turnMinutes <= 0 {
		turnMinutes = s.defaults.TurnIntervalMinutes
	}
	assignRooms := s.defaults.AssignRooms
	if req.AssignRooms != nil {
		assignRooms = *req.AssignRooms
	}

	loaded, err := s.boards.ListForDistribution(ctx, req.Kind)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load exam boards")
	}
	if len(loaded) == 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("no %s boards awaiting distribution", req.Kind))
	}

	boards := make([]*models.ExamBoard, 0, len(loaded))
	for i := range loaded {
		boards = append(boards, &loaded[i])
	}
	groups := buildGroups(boards, req.Kind)

	capacity := len(days) * turnsPerDay
	if len(groups) > capacity {
		return nil, appErrors.Clone(appErrors.ErrPreconditionFailed, fmt.Sprintf(
			"%d groups exceed capacity %d (%d business days x %d turns per day)",
			len(groups), capacity, len(days), turnsPerDay,
		))
	}

	var rooms []models.Room
	if assignRooms {
		rooms, err = s.rooms.ListActive(ctx)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load rooms")
		}
	}
	roster, err := s.teachers.ListActive(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load teachers")
	}
	titulars, err := s.teachers.ListSubjectTitulars(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load subject titulars")
	}

	rng := rand.New(rand.NewSource(s.seed()))
	st := newRunState(days, turnsPerDay, dayStart, turnMinutes, distinctYears(groups))
	allocator := newRoomAllocator(rooms, groups, rng)

	summary := models.DistributionSummary{
		Kind:         req.Kind,
		GroupsTotal:  len(groups),
		BusinessDays: len(days),
		TurnsPerDay:  turnsPerDay,
		GeneratedAt:  time.Now().UTC(),
	}
	placed := make([]*boardGroup, 0, len(groups))

	for _, group := range groups {
		ref, ok := st.allocateSlot(group)
		if !ok {
			summary.GroupsUnplaced++
			summary.UnplacedGroups = append(summary.UnplacedGroups, group.key.String())
			s.logger.Warn("no admissible slot for group",
				zap.String("group", group.key.String()),
				zap.Int("members", len(group.boards)),
			)
			continue
		}
		win := st.window(ref)

		var roomID *string
		if assignRooms {
			if id, found := allocator.pick(st, group.roomKey(), ref); found {
				roomID = &id
				summary.RoomsAssigned++
			}
		}

		jury, complete := buildJury(st, group, win, roster, titulars, rng)
		if !complete {
			summary.IncompleteJuries = append(summary.IncompleteJuries, group.key.String())
		}
		summary.TeachersAssigned += len(jury)

		for _, board := range group.boards {
			date := win.Date
			board.Date = &date
			board.StartTime = win.Start
			board.EndTime = win.End
			board.RoomID = roomID
			board.TeacherIDs = jury
		}
		st.commit(group, ref, win, jury, roomID)
		placed = append(placed, group)
		summary.GroupsPlaced++
	}

	s.persist(ctx, placed, &summary)

	if s.summaries != nil {
		if err := s.summaries.Save(ctx, summary); err != nil {
			s.logger.Warn("failed to cache distribution summary", zap.Error(err))
		}
	}
	if s.observer != nil {
		s.observer.ObserveDistributionRun(summary)
	}

	s.logger.Info("distribution completed",
		zap.String("kind", string(req.Kind)),
		zap.Int("groups_total", summary.GroupsTotal),
		zap.Int("groups_placed", summary.GroupsPlaced),
		zap.Int("groups_unplaced", summary.GroupsUnplaced),
		zap.Int("persistence_failed", summary.PersistenceFailed),
	)

	result := make([]models.ExamBoard, 0, len(boards))
	for _, board := range boards {
		result = append(result, *board)
	}
	return &dto.DistributeResponse{Boards: result, Summary: summary}, nil
}

// persist reports each placed board to the persistence collaborator. Every
// call is independently failable; failures are counted, logged, and never
// roll back earlier saves.
func (s *DistributionService) persist(ctx context.Context, placed []*boardGroup, summary *models.DistributionSummary) {
	for _, group := range placed {
		for _, board := range group.boards {
			assignment := models.BoardAssignment{
				Date:      board.Date,
				StartTime: board.StartTime,
				EndTime:   board.EndTime,
				RoomID:    board.RoomID,
			}
			if err := s.boards.UpdateAssignment(ctx, board.ID, assignment); err != nil {
				summary.PersistenceFailed++
				s.logger.Warn("failed to persist board assignment",
					zap.String("board_id", board.ID),
					zap.Error(err),
				)
			} else {
				summary.PersistenceOK++
			}

			if len(board.TeacherIDs) == 0 {
				continue
			}
			if err := s.boards.AssignTeachers(ctx, board.ID, board.TeacherIDs); err != nil {
				summary.PersistenceFailed++
				s.logger.Warn("failed to persist board jury",
					zap.String("board_id", board.ID),
					zap.Error(err),
				)
			} else {
				summary.PersistenceOK++
			}
		}
	}
}

// LastSummary returns the cached summary of the most recent run for a kind.
func (s *DistributionService) LastSummary(ctx context.Context, kind models.BoardKind) (*models.DistributionSummary, error) {
	if !kind.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "kind must be FINAL or COLLOQUIUM")
	}
	if s.summaries == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "summary cache disabled")
	}
	summary, err := s.summaries.Last(ctx, kind)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read distribution summary")
	}
	if summary == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "no distribution summary recorded")
	}
	return summary, nil
}
