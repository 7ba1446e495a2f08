package service

import (
	"fmt"
	"time"

	"github.com/noah-isme/exam-board-api/internal/models"
)

// turnRef addresses one turn of one business day.
type turnRef struct {
	Day  int
	Turn int
}

// turnOccupancy records the resources committed to a single turn.
type turnOccupancy struct {
	teachers map[string]struct{}
	rooms    map[string]struct{}
	courses  map[string]struct{}
}

func newTurnOccupancy() *turnOccupancy {
	return &turnOccupancy{
		teachers: make(map[string]struct{}),
		rooms:    make(map[string]struct{}),
		courses:  make(map[string]struct{}),
	}
}

// committedBoard is a placed group as seen by the conflict detector.
type committedBoard struct {
	key      groupKey
	window   models.TimeWindow
	teachers map[string]struct{}
}

// runState is the engine-scoped occupancy for one distribution run. It is
// built fresh per invocation and discarded afterwards; nothing here is
// shared across runs.
type runState struct {
	days         []time.Time
	turnsPerDay  int
	startMinutes int
	turnMinutes  int

	occupancy map[turnRef]*turnOccupancy
	dayTurns  map[int]int

	yearPref map[int]int
	yearUsed map[int]map[int]struct{}
	yearStep int

	committed []committedBoard
}

func newRunState(days []time.Time, turnsPerDay int, dayStart string, turnMinutes int, years []int) *runState {
	st := &runState{
		days:         days,
		turnsPerDay:  turnsPerDay,
		startMinutes: parseClock(dayStart),
		turnMinutes:  turnMinutes,
		occupancy:    make(map[turnRef]*turnOccupancy),
		dayTurns:     make(map[int]int),
		yearPref:     make(map[int]int),
		yearUsed:     make(map[int]map[int]struct{}),
		yearStep:     1,
	}
	if len(years) > 0 && len(days) > 0 {
		if step := len(days) / len(years); step > 1 {
			st.yearStep = step
		}
		for ordinal, year := range years {
			st.yearPref[year] = ordinal % len(days)
		}
	}
	return st
}

func (st *runState) at(ref turnRef) *turnOccupancy {
	occ, ok := st.occupancy[ref]
	if !ok {
		occ = newTurnOccupancy()
		st.occupancy[ref] = occ
	}
	return occ
}

// allocateSlot finds a (day, turn) for the group, dispatching on kind.
// A false return means the group stays unplaced; the run continues.
func (st *runState) allocateSlot(g *boardGroup) (turnRef, bool) {
	if g.key.Kind == models.BoardKindFinal {
		return st.allocateFinalSlot(g)
	}
	return st.allocateColloquiumSlot(g)
}

// allocateFinalSlot walks days starting at the cohort year's preferred
// index. The first pass honours the one-day-per-year preference; the
// second pass drops it and accepts the first day with a free turn.
func (st *runState) allocateFinalSlot(g *boardGroup) (turnRef, bool) {
	year := g.key.Year
	n := len(st.days)
	if n == 0 {
		return turnRef{}, false
	}
	pref := st.yearPref[year]

	day := -1
	for i := 0; i < n; i++ {
		d := (pref + i) % n
		if _, used := st.yearUsed[year][d]; used {
			continue
		}
		if st.dayTurns[d] < st.turnsPerDay {
			day = d
			break
		}
	}
	if day < 0 {
		for i := 0; i < n; i++ {
			d := (pref + i) % n
			if st.dayTurns[d] < st.turnsPerDay {
				day = d
				break
			}
		}
	}
	if day < 0 {
		return turnRef{}, false
	}

	turn := st.dayTurns[day]
	st.dayTurns[day]++
	if st.yearUsed[year] == nil {
		st.yearUsed[year] = make(map[int]struct{})
	}
	st.yearUsed[year][day] = struct{}{}
	st.yearPref[year] = (pref + st.yearStep) % n
	return turnRef{Day: day, Turn: turn}, true
}

// allocateColloquiumSlot accepts the first turn whose occupancy holds
// neither the group's known teachers nor its cohort. Co-location with
// other non-conflicting colloquium groups in the same turn is allowed.
func (st *runState) allocateColloquiumSlot(g *boardGroup) (turnRef, bool) {
	for day := range st.days {
		for turn := 0; turn < st.turnsPerDay; turn++ {
			ref := turnRef{Day: day, Turn: turn}
			if st.admissible(ref, g) {
				return ref, true
			}
		}
	}
	return turnRef{}, false
}

func (st *runState) admissible(ref turnRef, g *boardGroup) bool {
	occ, ok := st.occupancy[ref]
	if !ok {
		return true
	}
	for _, id := range g.teacherIDs {
		if _, busy := occ.teachers[id]; busy {
			return false
		}
	}
	for _, course := range g.courseIDs {
		if _, busy := occ.courses[course]; busy {
			return false
		}
	}
	return true
}

// window derives the turn's start/end times from the configured day start
// and fixed turn interval.
func (st *runState) window(ref turnRef) models.TimeWindow {
	start := st.startMinutes + ref.Turn*st.turnMinutes
	end := start + st.turnMinutes
	return models.TimeWindow{
		Date:  st.days[ref.Day],
		Start: formatClock(start),
		End:   formatClock(end),
	}
}

// commit registers a placed group in the occupancy maps and the committed
// list consulted by the conflict detector.
func (st *runState) commit(g *boardGroup, ref turnRef, win models.TimeWindow, teacherIDs []string, roomID *string) {
	occ := st.at(ref)
	for _, id := range teacherIDs {
		occ.teachers[id] = struct{}{}
	}
	for _, course := range g.courseIDs {
		occ.courses[course] = struct{}{}
	}
	if roomID != nil {
		occ.rooms[*roomID] = struct{}{}
	}

	teachers := make(map[string]struct{}, len(teacherIDs))
	for _, id := range teacherIDs {
		teachers[id] = struct{}{}
	}
	st.committed = append(st.committed, committedBoard{key: g.key, window: win, teachers: teachers})
}

func parseClock(raw string) int {
	var h, m int
	if _, err := fmt.Sscanf(raw, "%d:%d", &h, &m); err != nil {
		return 8 * 60
	}
	return h*60 + m
}

func formatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
