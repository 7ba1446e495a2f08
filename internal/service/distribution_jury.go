package service

import (
	"math/rand"

	"github.com/samber/lo"

	"github.com/noah-isme/exam-board-api/internal/models"
)

const (
	finalJurySize      = 3
	colloquiumJurySize = 1
)

func jurySize(kind models.BoardKind) int {
	if kind == models.BoardKindFinal {
		return finalJurySize
	}
	return colloquiumJurySize
}

// conflictingTeachers returns the subset of candidate teacher IDs that are
// already committed to an overlapping window in another group. Boards of
// the same group are synchronized, not conflicting, and are skipped.
func (st *runState) conflictingTeachers(key groupKey, win models.TimeWindow, teacherIDs []string) map[string]struct{} {
	conflicts := make(map[string]struct{})
	for _, c := range st.committed {
		if c.key == key {
			continue
		}
		if !c.window.Overlaps(win) {
			continue
		}
		for _, id := range teacherIDs {
			if _, shared := c.teachers[id]; shared {
				conflicts[id] = struct{}{}
			}
		}
	}
	return conflicts
}

// teacherConflicted reports whether the teacher is unavailable for the
// group's resolved window, either through external commitments or through
// a board already placed in this run.
func (st *runState) teacherConflicted(t models.Teacher, key groupKey, win models.TimeWindow) bool {
	for _, busy := range t.Busy {
		if busy.Overlaps(win) {
			return true
		}
	}
	conflicts := st.conflictingTeachers(key, win, []string{t.ID})
	_, conflicted := conflicts[t.ID]
	return conflicted
}

// buildJury fills the group's seats: prior assignments are preserved,
// titular teachers of the subject come next, and remaining seats are drawn
// in random order from conflict-free peers. A short jury is reported via
// the second return value and never fails the run.
func buildJury(
	st *runState,
	g *boardGroup,
	win models.TimeWindow,
	roster []models.Teacher,
	titulars map[string][]string,
	rng *rand.Rand,
) ([]string, bool) {
	seats := jurySize(g.key.Kind)
	byID := lo.KeyBy(roster, func(t models.Teacher) string { return t.ID })

	selected := make([]string, 0, seats)
	taken := make(map[string]struct{})
	add := func(id string) {
		if _, dup := taken[id]; dup {
			return
		}
		taken[id] = struct{}{}
		selected = append(selected, id)
	}

	for _, id := range g.teacherIDs {
		t, known := byID[id]
		if !known || !t.Active || st.teacherConflicted(t, g.key, win) {
			continue
		}
		add(id)
	}

	for _, id := range titulars[g.key.SubjectID] {
		if len(selected) >= seats {
			break
		}
		t, known := byID[id]
		if !known || !t.Active || st.teacherConflicted(t, g.key, win) {
			continue
		}
		add(id)
	}

	if len(selected) < seats {
		candidates := lo.Filter(roster, func(t models.Teacher, _ int) bool {
			if !t.Active {
				return false
			}
			if _, dup := taken[t.ID]; dup {
				return false
			}
			return !st.teacherConflicted(t, g.key, win)
		})
		rng.Shuffle(len(candidates), func(i, j int) {
			candidates[i], candidates[j] = candidates[j], candidates[i]
		})
		for _, t := range candidates {
			if len(selected) >= seats {
				break
			}
			add(t.ID)
		}
	}

	return selected, len(selected) >= seats
}
