package service

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/exam-board-api/internal/models"
)

func juryFixtureWindow() models.TimeWindow {
	return models.TimeWindow{Date: testDays(1)[0], Start: "08:00", End: "10:00"}
}

func TestBuildJuryTitularsBeforePeers(t *testing.T) {
	st := newRunState(testDays(1), 2, "08:00", 120, nil)
	g := &boardGroup{key: groupKey{Kind: models.BoardKindFinal, SubjectID: "math", Year: 1}}

	jury, complete := buildJury(st, g, juryFixtureWindow(), roster(5, nil),
		map[string][]string{"math": {"t-3"}}, rand.New(rand.NewSource(1)))

	require.True(t, complete)
	require.Len(t, jury, 3)
	assert.Equal(t, "t-3", jury[0], "the subject titular takes the first seat")
}

func TestBuildJuryPreservesPriorAssignments(t *testing.T) {
	st := newRunState(testDays(1), 2, "08:00", 120, nil)
	g := &boardGroup{
		key:        groupKey{Kind: models.BoardKindFinal, SubjectID: "math", Year: 1},
		teacherIDs: []string{"t-5", "t-4"},
	}

	jury, complete := buildJury(st, g, juryFixtureWindow(), roster(5, nil),
		map[string][]string{"math": {"t-5"}}, rand.New(rand.NewSource(1)))

	require.True(t, complete)
	require.Len(t, jury, 3)
	assert.Equal(t, []string{"t-5", "t-4"}, jury[:2], "prior members keep their seats in order, without duplication")
}

func TestBuildJuryExcludesBusyTeachers(t *testing.T) {
	st := newRunState(testDays(1), 2, "08:00", 120, nil)
	g := &boardGroup{key: groupKey{Kind: models.BoardKindColloquium, SubjectID: "math", CourseID: "c-1A"}}
	busy := map[string][]models.TimeWindow{
		"t-1": {{Date: testDays(1)[0], Start: "09:00", End: "11:00"}},
	}

	jury, complete := buildJury(st, g, juryFixtureWindow(), roster(3, busy),
		map[string][]string{"math": {"t-1"}}, rand.New(rand.NewSource(1)))

	require.True(t, complete)
	require.Len(t, jury, 1)
	assert.NotEqual(t, "t-1", jury[0])
}

func TestBuildJuryExcludesCommittedTeachers(t *testing.T) {
	st := newRunState(testDays(1), 2, "08:00", 120, nil)
	win := juryFixtureWindow()

	other := &boardGroup{key: groupKey{Kind: models.BoardKindFinal, SubjectID: "hist", Year: 1}}
	st.commit(other, turnRef{Day: 0, Turn: 0}, win, []string{"t-1", "t-2"}, nil)

	g := &boardGroup{key: groupKey{Kind: models.BoardKindFinal, SubjectID: "math", Year: 1}}
	jury, complete := buildJury(st, g, win, roster(5, nil),
		map[string][]string{"math": {"t-1"}}, rand.New(rand.NewSource(1)))

	require.True(t, complete)
	assert.NotContains(t, jury, "t-1")
	assert.NotContains(t, jury, "t-2")
}

func TestBuildJurySameGroupCommitmentIsNotAConflict(t *testing.T) {
	st := newRunState(testDays(1), 2, "08:00", 120, nil)
	win := juryFixtureWindow()
	key := groupKey{Kind: models.BoardKindFinal, SubjectID: "math", Year: 1}

	g := &boardGroup{key: key, teacherIDs: []string{"t-1"}}
	st.commit(g, turnRef{Day: 0, Turn: 0}, win, []string{"t-1"}, nil)

	jury, _ := buildJury(st, g, win, roster(3, nil), nil, rand.New(rand.NewSource(1)))
	assert.Contains(t, jury, "t-1", "a group's own committed teachers stay eligible")
}

func TestBuildJuryReportsShortJury(t *testing.T) {
	st := newRunState(testDays(1), 2, "08:00", 120, nil)
	g := &boardGroup{key: groupKey{Kind: models.BoardKindFinal, SubjectID: "math", Year: 1}}

	jury, complete := buildJury(st, g, juryFixtureWindow(), roster(2, nil), nil, rand.New(rand.NewSource(1)))

	assert.False(t, complete)
	assert.Len(t, jury, 2, "every eligible teacher is seated even when seats remain")
}

func TestBuildJurySkipsInactiveAndUnknownTeachers(t *testing.T) {
	st := newRunState(testDays(1), 2, "08:00", 120, nil)
	teachers := roster(3, nil)
	teachers[2].Active = false

	g := &boardGroup{
		key:        groupKey{Kind: models.BoardKindFinal, SubjectID: "math", Year: 1},
		teacherIDs: []string{"t-9", "t-3"}, // unknown and inactive
	}
	jury, complete := buildJury(st, g, juryFixtureWindow(), teachers, nil, rand.New(rand.NewSource(1)))

	assert.False(t, complete)
	assert.NotContains(t, jury, "t-9")
	assert.NotContains(t, jury, "t-3")
	assert.Len(t, jury, 2)
}
