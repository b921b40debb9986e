package model

import (
	"encoding/json"
	"sort"
	"testing"
)

func TestStatus_OrderAndLabels(t *testing.T) {
	all := AllStatuses()
	if !sort.SliceIsSorted(all, func(i, j int) bool { return all[i] < all[j] }) {
		t.Fatalf("expected AllStatuses in ascending order, got %v", all)
	}
	want := []string{"OPEN", "IN PROGRESS", "RESOLVED", "CLOSED"}
	for i, s := range all {
		if s.String() != want[i] {
			t.Fatalf("status %d: expected label %q, got %q", i, want[i], s.String())
		}
	}
	if !(StatusOpen < StatusInProgress && StatusInProgress < StatusResolved && StatusResolved < StatusClosed) {
		t.Fatalf("unexpected status order")
	}
}

func TestParseStatus(t *testing.T) {
	cases := []struct {
		in      string
		want    Status
		wantErr bool
	}{
		{"Open", StatusOpen, false},
		{"OPEN", StatusOpen, false},
		{"InProgress", StatusInProgress, false},
		{"in progress", StatusInProgress, false},
		{"IN-PROGRESS", StatusInProgress, false},
		{" resolved ", StatusResolved, false},
		{"closed", StatusClosed, false},
		{"done", 0, true},
		{"", 0, true},
	}
	for _, tc := range cases {
		got, err := ParseStatus(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("ParseStatus(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseStatus(%q): unexpected error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseStatus(%q): expected %v, got %v", tc.in, tc.want, got)
		}
	}
}

func TestDBState_JSONLayout(t *testing.T) {
	st := NewDBState()
	st.LastItemID = 2
	e := NewEpic("A", "")
	e.Stories = []uint32{2}
	st.Epics[1] = e
	s := NewStory("B", "")
	s.Status = StatusInProgress
	st.Stories[2] = s

	b, err := json.Marshal(st)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"last_item_id":2,"epics":{"1":{"name":"A","description":"","status":"Open","stories":[2]}},"stories":{"2":{"name":"B","description":"","status":"InProgress"}}}`
	if string(b) != want {
		t.Fatalf("unexpected json:\n got: %s\nwant: %s", b, want)
	}

	var back DBState
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.Stories[2].Status != StatusInProgress || back.Epics[1].Stories[0] != 2 {
		t.Fatalf("unexpected round trip: %+v", back)
	}
}

func TestDBState_UnmarshalRejectsUnknownStatus(t *testing.T) {
	var st DBState
	err := json.Unmarshal([]byte(`{"last_item_id":1,"epics":{"1":{"name":"A","description":"","status":"Blocked","stories":[]}},"stories":{}}`), &st)
	if err == nil {
		t.Fatalf("expected error for unknown status")
	}
}

func TestDBState_CloneIsDeep(t *testing.T) {
	st := NewDBState()
	e := NewEpic("A", "")
	e.Stories = []uint32{2}
	st.Epics[1] = e

	cp := st.Clone()
	ce := cp.Epics[1]
	ce.Stories[0] = 99
	cp.Epics[1] = ce

	if st.Epics[1].Stories[0] != 2 {
		t.Fatalf("expected clone to not share story slices")
	}
}

func TestAction_String(t *testing.T) {
	if got := DeleteStory(1, 2).String(); got != "DeleteStory{epic_id: 1, story_id: 2}" {
		t.Fatalf("unexpected action string: %q", got)
	}
	if got := Exit().String(); got != "Exit" {
		t.Fatalf("unexpected action string: %q", got)
	}
}
