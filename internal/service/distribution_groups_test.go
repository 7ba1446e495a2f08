package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/exam-board-api/internal/models"
)

func boardPtrs(boards ...models.ExamBoard) []*models.ExamBoard {
	out := make([]*models.ExamBoard, 0, len(boards))
	for i := range boards {
		out = append(out, &boards[i])
	}
	return out
}

func TestBuildGroupsMergesFinalAcrossCourses(t *testing.T) {
	b1 := finalBoard("b1", "math", "c-1A", 1)
	b1.TeacherIDs = []string{"t-1"}
	b2 := finalBoard("b2", "math", "c-1B", 1)
	b2.TeacherIDs = []string{"t-1", "t-2"}
	b3 := finalBoard("b3", "math", "c-2A", 2)

	groups := buildGroups(boardPtrs(b1, b2, b3), models.BoardKindFinal)

	require.Len(t, groups, 2, "same subject in two cohort years yields two groups")
	assert.Len(t, groups[0].boards, 2)
	assert.Equal(t, []string{"t-1", "t-2"}, groups[0].teacherIDs, "teacher union is deduplicated")
	assert.Equal(t, []string{"c-1A", "c-1B"}, groups[0].courseIDs)
	assert.Equal(t, "FINAL/math/year-1", groups[0].key.String())
	assert.Equal(t, "FINAL/math/year-2", groups[1].key.String())
}

func TestBuildGroupsColloquiumPerCourse(t *testing.T) {
	groups := buildGroups(boardPtrs(
		colloquiumBoard("b1", "math", "c-1A"),
		colloquiumBoard("b2", "math", "c-1B"),
		colloquiumBoard("b3", "math", "c-1A"),
	), models.BoardKindColloquium)

	require.Len(t, groups, 2, "colloquium groups never merge across courses")
	assert.Len(t, groups[0].boards, 2)
	assert.Equal(t, "COLLOQUIUM/math/c-1A", groups[0].key.String())
	assert.Equal(t, "COLLOQUIUM/math/c-1B", groups[1].key.String())
}

func TestBuildGroupsSkipsOtherKindsAndFinalized(t *testing.T) {
	finalized := finalBoard("b2", "math", "c-1B", 1)
	finalized.Status = models.BoardStatusFinalized

	groups := buildGroups(boardPtrs(
		finalBoard("b1", "math", "c-1A", 1),
		finalized,
		colloquiumBoard("b3", "math", "c-1A"),
	), models.BoardKindFinal)

	require.Len(t, groups, 1)
	require.Len(t, groups[0].boards, 1)
	assert.Equal(t, "b1", groups[0].boards[0].ID)
}

func TestGroupRoomKeyPerKind(t *testing.T) {
	final := &boardGroup{key: groupKey{Kind: models.BoardKindFinal, SubjectID: "math", Year: 1}}
	colloquium := &boardGroup{key: groupKey{Kind: models.BoardKindColloquium, SubjectID: "math", CourseID: "c-1A"}}

	assert.Equal(t, "math", final.roomKey())
	assert.Equal(t, "c-1A", colloquium.roomKey())
}

func TestGroupPriorRoomID(t *testing.T) {
	room := "r-2"
	assigned := finalBoard("b2", "math", "c-1B", 1)
	assigned.RoomID = &room

	g := &boardGroup{boards: boardPtrs(finalBoard("b1", "math", "c-1A", 1), assigned)}
	assert.Equal(t, "r-2", g.priorRoomID())

	empty := &boardGroup{boards: boardPtrs(finalBoard("b1", "math", "c-1A", 1))}
	assert.Empty(t, empty.priorRoomID())
}

func TestDistinctYearsSortedUnique(t *testing.T) {
	groups := []*boardGroup{
		{key: groupKey{Kind: models.BoardKindFinal, Year: 3}},
		{key: groupKey{Kind: models.BoardKindFinal, Year: 1}},
		{key: groupKey{Kind: models.BoardKindFinal, Year: 3}},
	}
	assert.Equal(t, []int{1, 3}, distinctYears(groups))
}
