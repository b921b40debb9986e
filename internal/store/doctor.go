package store

import (
	"fmt"
	"sort"

	"jira-cli/internal/model"
)

type DoctorIssueLevel string

const (
	DoctorIssueLevelError DoctorIssueLevel = "error"
	DoctorIssueLevelWarn  DoctorIssueLevel = "warn"
)

const (
	IssueDanglingStoryRef  = "dangling_story_ref"
	IssueOrphanStory       = "orphan_story"
	IssueSharedStory       = "shared_story"
	IssueDuplicateStoryRef = "duplicate_story_ref"
	IssueLastItemIDBehind  = "last_item_id_behind"
)

type DoctorIssue struct {
	Level   DoctorIssueLevel `json:"level"`
	Code    string           `json:"code"`
	Message string           `json:"message"`
	EpicID  uint32           `json:"epicId,omitempty"`
	StoryID uint32           `json:"storyId,omitempty"`
}

type DoctorReport struct {
	Issues []DoctorIssue `json:"issues"`
}

func (r DoctorReport) HasErrors() bool {
	for _, it := range r.Issues {
		if it.Level == DoctorIssueLevelError {
			return true
		}
	}
	return false
}

// Doctor checks the referential integrity of st. Issues are ordered by epic
// id, then story id, then code, so reports are stable.
func Doctor(st *model.DBState) DoctorReport {
	issues := []DoctorIssue{}
	if st == nil {
		return DoctorReport{Issues: issues}
	}

	owners := map[uint32][]uint32{}
	var maxID uint32
	for _, epicID := range st.SortedEpicIDs() {
		if epicID > maxID {
			maxID = epicID
		}
		e := st.Epics[epicID]
		seen := map[uint32]bool{}
		for _, sid := range e.Stories {
			if seen[sid] {
				issues = append(issues, DoctorIssue{
					Level:   DoctorIssueLevelWarn,
					Code:    IssueDuplicateStoryRef,
					Message: fmt.Sprintf("epic %d lists story %d more than once", epicID, sid),
					EpicID:  epicID,
					StoryID: sid,
				})
				continue
			}
			seen[sid] = true
			owners[sid] = append(owners[sid], epicID)
			if _, ok := st.Stories[sid]; !ok {
				issues = append(issues, DoctorIssue{
					Level:   DoctorIssueLevelError,
					Code:    IssueDanglingStoryRef,
					Message: fmt.Sprintf("epic %d lists missing story %d", epicID, sid),
					EpicID:  epicID,
					StoryID: sid,
				})
			}
		}
	}

	for _, sid := range st.SortedStoryIDs() {
		if sid > maxID {
			maxID = sid
		}
		switch ep := owners[sid]; {
		case len(ep) == 0:
			issues = append(issues, DoctorIssue{
				Level:   DoctorIssueLevelError,
				Code:    IssueOrphanStory,
				Message: fmt.Sprintf("story %d is not listed by any epic", sid),
				StoryID: sid,
			})
		case len(ep) > 1:
			issues = append(issues, DoctorIssue{
				Level:   DoctorIssueLevelError,
				Code:    IssueSharedStory,
				Message: fmt.Sprintf("story %d is listed by epics %v", sid, ep),
				EpicID:  ep[0],
				StoryID: sid,
			})
		}
	}

	if maxID > st.LastItemID {
		issues = append(issues, DoctorIssue{
			Level:   DoctorIssueLevelError,
			Code:    IssueLastItemIDBehind,
			Message: fmt.Sprintf("last_item_id %d is below used id %d", st.LastItemID, maxID),
		})
	}

	sort.SliceStable(issues, func(i, j int) bool {
		a, b := issues[i], issues[j]
		if a.EpicID != b.EpicID {
			return a.EpicID < b.EpicID
		}
		if a.StoryID != b.StoryID {
			return a.StoryID < b.StoryID
		}
		return a.Code < b.Code
	})
	return DoctorReport{Issues: issues}
}
