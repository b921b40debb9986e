package store

import (
	"log/slog"
	"math"

	"jira-cli/internal/model"
)

// Database persists a whole DBState. Implementations never write partial
// state: Write replaces everything that Read would return.
type Database interface {
	Read() (*model.DBState, error)
	Write(st *model.DBState) error
}

// Store maps CRUD operations onto a Database. Every mutating call reads the
// full state, applies the complete change in memory, then writes once.
type Store struct {
	db  Database
	log *slog.Logger
}

type Option func(*Store)

func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

func New(db Database, opts ...Option) *Store {
	s := &Store{db: db, log: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Database() Database { return s.db }

func (s *Store) Read() (*model.DBState, error) {
	st, err := s.db.Read()
	if err != nil {
		return nil, err
	}
	st.Normalize()
	return st, nil
}

func (s *Store) CreateEpic(epic model.Epic) (uint32, error) {
	st, err := s.Read()
	if err != nil {
		return 0, err
	}
	id, err := s.nextID(st)
	if err != nil {
		return 0, err
	}
	if epic.Stories == nil {
		epic.Stories = []uint32{}
	}
	st.Epics[id] = epic
	if err := s.db.Write(st); err != nil {
		return 0, err
	}
	s.log.Debug("epic created", "epic_id", id, "name", epic.Name)
	return id, nil
}

func (s *Store) CreateStory(story model.Story, epicID uint32) (uint32, error) {
	st, err := s.Read()
	if err != nil {
		return 0, err
	}
	epic, ok := st.Epics[epicID]
	if !ok {
		return 0, errEpicNotFound(epicID)
	}
	id, err := s.nextID(st)
	if err != nil {
		return 0, err
	}
	st.Stories[id] = story
	epic.Stories = append(epic.Stories, id)
	st.Epics[epicID] = epic
	if err := s.db.Write(st); err != nil {
		return 0, err
	}
	s.log.Debug("story created", "story_id", id, "epic_id", epicID, "name", story.Name)
	return id, nil
}

func (s *Store) UpdateEpicStatus(epicID uint32, status model.Status) error {
	st, err := s.Read()
	if err != nil {
		return err
	}
	epic, ok := st.Epics[epicID]
	if !ok {
		return errEpicNotFound(epicID)
	}
	epic.Status = status
	st.Epics[epicID] = epic
	if err := s.db.Write(st); err != nil {
		return err
	}
	s.log.Debug("epic status updated", "epic_id", epicID, "status", status.Name())
	return nil
}

func (s *Store) UpdateStoryStatus(storyID uint32, status model.Status) error {
	st, err := s.Read()
	if err != nil {
		return err
	}
	story, ok := st.Stories[storyID]
	if !ok {
		return errStoryNotFound(storyID)
	}
	story.Status = status
	st.Stories[storyID] = story
	if err := s.db.Write(st); err != nil {
		return err
	}
	s.log.Debug("story status updated", "story_id", storyID, "status", status.Name())
	return nil
}

// DeleteEpic removes the epic and every story it lists.
func (s *Store) DeleteEpic(epicID uint32) error {
	st, err := s.Read()
	if err != nil {
		return err
	}
	epic, ok := st.Epics[epicID]
	if !ok {
		return errEpicNotFound(epicID)
	}
	for _, sid := range epic.Stories {
		delete(st.Stories, sid)
	}
	delete(st.Epics, epicID)
	if err := s.db.Write(st); err != nil {
		return err
	}
	s.log.Debug("epic deleted", "epic_id", epicID, "stories", len(epic.Stories))
	return nil
}

// DeleteStory unlinks storyID from the epic and removes the story record.
// A story id missing from the epic's list is not an error. Stores built
// through these operations give every story one owner; only a hand-edited
// state can have a second epic listing storyID, and then the record is kept
// for that epic (Doctor reports it as shared_story).
func (s *Store) DeleteStory(epicID, storyID uint32) error {
	st, err := s.Read()
	if err != nil {
		return err
	}
	epic, ok := st.Epics[epicID]
	if !ok {
		return errEpicNotFound(epicID)
	}
	kept := make([]uint32, 0, len(epic.Stories))
	for _, sid := range epic.Stories {
		if sid != storyID {
			kept = append(kept, sid)
		}
	}
	epic.Stories = kept
	st.Epics[epicID] = epic
	if !listedElsewhere(st, epicID, storyID) {
		delete(st.Stories, storyID)
	}
	if err := s.db.Write(st); err != nil {
		return err
	}
	s.log.Debug("story deleted", "story_id", storyID, "epic_id", epicID)
	return nil
}

// nextID allocates above both the counter and every id the state already
// uses, so a counter that fell behind its records never reissues a live id.
func (s *Store) nextID(st *model.DBState) (uint32, error) {
	base := st.LastItemID
	if used := maxUsedID(st); used > base {
		s.log.Warn("last_item_id behind stored ids", "last_item_id", st.LastItemID, "max_used_id", used)
		base = used
	}
	if base == math.MaxUint32 {
		return 0, ErrIDSpaceExhausted
	}
	st.LastItemID = base + 1
	return st.LastItemID, nil
}

// maxUsedID includes ids that epics list without a story record.
func maxUsedID(st *model.DBState) uint32 {
	var top uint32
	for id, e := range st.Epics {
		if id > top {
			top = id
		}
		for _, sid := range e.Stories {
			if sid > top {
				top = sid
			}
		}
	}
	for id := range st.Stories {
		if id > top {
			top = id
		}
	}
	return top
}

func listedElsewhere(st *model.DBState, epicID, storyID uint32) bool {
	for id, e := range st.Epics {
		if id != epicID && e.HasStory(storyID) {
			return true
		}
	}
	return false
}
