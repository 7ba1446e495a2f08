package service

import (
	"fmt"
	"sort"
	"time"

	"github.com/samber/lo"

	"github.com/noah-isme/exam-board-api/internal/models"
)

// groupKey identifies a set of boards that must share one slot. FINAL
// boards merge across courses of the same subject and cohort year;
// COLLOQUIUM boards group strictly per course.
type groupKey struct {
	Kind      models.BoardKind
	SubjectID string
	Year      int
	CourseID  string
}

func (k groupKey) String() string {
	if k.Kind == models.BoardKindFinal {
		return fmt.Sprintf("%s/%s/year-%d", k.Kind, k.SubjectID, k.Year)
	}
	return fmt.Sprintf("%s/%s/%s", k.Kind, k.SubjectID, k.CourseID)
}

type boardGroup struct {
	key    groupKey
	boards []*models.ExamBoard

	// teacherIDs is the union of teachers already assigned to any member,
	// kept to preserve partial assignments across re-runs.
	teacherIDs []string
	// courseIDs lists the distinct cohorts attending the group's members.
	courseIDs []string
}

// roomKey returns the sticky room-preference key: subject for FINAL,
// course for COLLOQUIUM.
func (g *boardGroup) roomKey() string {
	if g.key.Kind == models.BoardKindFinal {
		return g.key.SubjectID
	}
	return g.key.CourseID
}

// priorRoomID returns a member's already-assigned room, if any, so a
// re-run starts from the previous sticky preference.
func (g *boardGroup) priorRoomID() string {
	for _, b := range g.boards {
		if b.RoomID != nil && *b.RoomID != "" {
			return *b.RoomID
		}
	}
	return ""
}

// buildGroups partitions CREATED boards of one kind into slot-sharing
// groups, preserving first-seen input order.
func buildGroups(boards []*models.ExamBoard, kind models.BoardKind) []*boardGroup {
	index := make(map[groupKey]*boardGroup)
	var groups []*boardGroup

	for _, board := range boards {
		if board.Kind != kind || board.Status != models.BoardStatusCreated {
			continue
		}
		key := groupKey{Kind: kind, SubjectID: board.SubjectID}
		if kind == models.BoardKindFinal {
			key.Year = board.CohortYear
		} else {
			key.CourseID = board.CourseID
		}

		group, ok := index[key]
		if !ok {
			group = &boardGroup{key: key}
			index[key] = group
			groups = append(groups, group)
		}
		group.boards = append(group.boards, board)
		group.teacherIDs = lo.Uniq(append(group.teacherIDs, board.TeacherIDs...))
		if !lo.Contains(group.courseIDs, board.CourseID) {
			group.courseIDs = append(group.courseIDs, board.CourseID)
		}
	}

	return groups
}

// distinctYears returns the cohort years present across groups, in
// ascending order; the slot allocator rotates day preferences per year.
func distinctYears(groups []*boardGroup) []int {
	years := lo.Uniq(lo.Map(groups, func(g *boardGroup, _ int) int {
		return g.key.Year
	}))
	sort.Ints(years)
	return years
}

// businessDays expands the inclusive range into weekday dates normalized
// to midnight UTC.
func businessDays(start, end time.Time) []time.Time {
	var days []time.Time
	day := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	last := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	for !day.After(last) {
		if wd := day.Weekday(); wd != time.Saturday && wd != time.Sunday {
			days = append(days, day)
		}
		day = day.AddDate(0, 0, 1)
	}
	return days
}
