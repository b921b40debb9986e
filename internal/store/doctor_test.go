package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jira-cli/internal/model"
)

func codes(r DoctorReport) []string {
	out := make([]string, 0, len(r.Issues))
	for _, it := range r.Issues {
		out = append(out, it.Code)
	}
	return out
}

func TestDoctor_CleanState(t *testing.T) {
	s, _ := newMemStore(t)
	epicID, err := s.CreateEpic(model.NewEpic("e", ""))
	require.NoError(t, err)
	_, err = s.CreateStory(model.NewStory("s", ""), epicID)
	require.NoError(t, err)

	st, err := s.Read()
	require.NoError(t, err)
	r := Doctor(st)
	assert.Empty(t, r.Issues)
	assert.False(t, r.HasErrors())
}

func TestDoctor_DetectsIssues(t *testing.T) {
	st := model.NewDBState()
	st.LastItemID = 3

	a := model.NewEpic("a", "")
	a.Stories = []uint32{2, 2, 9}
	b := model.NewEpic("b", "")
	b.Stories = []uint32{2}
	st.Epics[1] = a
	st.Epics[3] = b
	st.Stories[2] = model.NewStory("shared", "")
	st.Stories[5] = model.NewStory("orphan", "")

	r := Doctor(st)
	require.True(t, r.HasErrors())
	assert.ElementsMatch(t, []string{
		IssueDuplicateStoryRef,
		IssueDanglingStoryRef,
		IssueSharedStory,
		IssueOrphanStory,
		IssueLastItemIDBehind,
	}, codes(r))

	for _, it := range r.Issues {
		if it.Code == IssueDuplicateStoryRef {
			assert.Equal(t, DoctorIssueLevelWarn, it.Level)
		} else {
			assert.Equal(t, DoctorIssueLevelError, it.Level)
		}
	}
}

func TestDoctor_WarningsOnlyIsNotError(t *testing.T) {
	st := model.NewDBState()
	st.LastItemID = 2
	e := model.NewEpic("e", "")
	e.Stories = []uint32{2, 2}
	st.Epics[1] = e
	st.Stories[2] = model.NewStory("s", "")

	r := Doctor(st)
	assert.Equal(t, []string{IssueDuplicateStoryRef}, codes(r))
	assert.False(t, r.HasErrors())
}
