package model

import (
	"fmt"
	"sort"
	"strings"
)

// Status is the lifecycle stage of an epic or story. The declaration order is
// the sort order: Open < InProgress < Resolved < Closed.
type Status int

const (
	StatusOpen Status = iota
	StatusInProgress
	StatusResolved
	StatusClosed
)

var statusNames = [...]string{"Open", "InProgress", "Resolved", "Closed"}
var statusLabels = [...]string{"OPEN", "IN PROGRESS", "RESOLVED", "CLOSED"}

func AllStatuses() []Status {
	return []Status{StatusOpen, StatusInProgress, StatusResolved, StatusClosed}
}

func (s Status) Valid() bool {
	return s >= StatusOpen && s <= StatusClosed
}

// String returns the display label (e.g. "IN PROGRESS").
func (s Status) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Status(%d)", int(s))
	}
	return statusLabels[s]
}

// Name returns the persisted name (e.g. "InProgress").
func (s Status) Name() string {
	if !s.Valid() {
		return ""
	}
	return statusNames[s]
}

// ParseStatus accepts persisted names and display labels, case-insensitively.
// Spaces, dashes and underscores are ignored, so "in-progress" also parses.
func ParseStatus(s string) (Status, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer(" ", "", "-", "", "_", "").Replace(key)
	for i, name := range statusNames {
		if strings.ToLower(name) == key {
			return Status(i), nil
		}
	}
	return 0, fmt.Errorf("invalid status: %q", s)
}

func (s Status) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid status: %d", int(s))
	}
	return []byte(statusNames[s]), nil
}

func (s *Status) UnmarshalText(b []byte) error {
	v, err := ParseStatus(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

type Epic struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Status      Status   `json:"status"`
	Stories     []uint32 `json:"stories"`
}

func NewEpic(name, description string) Epic {
	return Epic{
		Name:        name,
		Description: description,
		Status:      StatusOpen,
		Stories:     []uint32{},
	}
}

// HasStory reports whether id is in the epic's story list.
func (e Epic) HasStory(id uint32) bool {
	for _, sid := range e.Stories {
		if sid == id {
			return true
		}
	}
	return false
}

type Story struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Status      Status `json:"status"`
}

func NewStory(name, description string) Story {
	return Story{
		Name:        name,
		Description: description,
		Status:      StatusOpen,
	}
}

// DBState is the whole persisted world: the id counter and both item tables.
type DBState struct {
	LastItemID uint32           `json:"last_item_id"`
	Epics      map[uint32]Epic  `json:"epics"`
	Stories    map[uint32]Story `json:"stories"`
}

func NewDBState() *DBState {
	return &DBState{
		LastItemID: 0,
		Epics:      map[uint32]Epic{},
		Stories:    map[uint32]Story{},
	}
}

// Normalize replaces nil tables and story lists with empty ones.
func (s *DBState) Normalize() {
	if s.Epics == nil {
		s.Epics = map[uint32]Epic{}
	}
	if s.Stories == nil {
		s.Stories = map[uint32]Story{}
	}
	for id, e := range s.Epics {
		if e.Stories == nil {
			e.Stories = []uint32{}
			s.Epics[id] = e
		}
	}
}

func (s *DBState) Clone() *DBState {
	if s == nil {
		return nil
	}
	out := &DBState{
		LastItemID: s.LastItemID,
		Epics:      make(map[uint32]Epic, len(s.Epics)),
		Stories:    make(map[uint32]Story, len(s.Stories)),
	}
	for id, e := range s.Epics {
		e.Stories = append([]uint32{}, e.Stories...)
		out.Epics[id] = e
	}
	for id, st := range s.Stories {
		out.Stories[id] = st
	}
	return out
}

func (s *DBState) SortedEpicIDs() []uint32 {
	ids := make([]uint32, 0, len(s.Epics))
	for id := range s.Epics {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (s *DBState) SortedStoryIDs() []uint32 {
	ids := make([]uint32, 0, len(s.Stories))
	for id := range s.Stories {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
