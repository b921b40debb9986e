package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	_ "modernc.org/sqlite"

	"jira-cli/internal/model"
)

const DefaultSQLitePath = "./db.sqlite"

// SQLiteDatabase keeps the DBState in a SQLite file. Writes use a
// replace-all strategy inside one transaction, so the file always holds a
// complete state. A fresh file reads as the empty state.
type SQLiteDatabase struct {
	Path string
}

func (s SQLiteDatabase) Read() (*model.DBState, error) {
	ctx := context.Background()
	db, err := s.open(ctx)
	if err != nil {
		return nil, s.classifyReadErr(err)
	}
	defer db.Close()

	st, err := loadStateFromSQLite(ctx, db)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.Path = s.Path
			return nil, pe
		}
		return nil, s.classifyReadErr(err)
	}
	return st, nil
}

func (s SQLiteDatabase) Write(st *model.DBState) error {
	if st == nil {
		return &WriteError{Path: s.Path, Err: errors.New("nil state")}
	}
	ctx := context.Background()
	db, err := s.open(ctx)
	if err != nil {
		return &WriteError{Path: s.Path, Err: err}
	}
	defer db.Close()

	if err := saveStateToSQLite(ctx, db, st); err != nil {
		return &WriteError{Path: s.Path, Err: err}
	}
	return nil
}

func (s SQLiteDatabase) open(ctx context.Context) (*sql.DB, error) {
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", s.Path)
	if err != nil {
		return nil, err
	}
	pragmas := []string{
		"PRAGMA busy_timeout=5000;",
		"PRAGMA synchronous=FULL;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := migrateSQLiteState(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// classifyReadErr reports a file that exists but is not a SQLite database as
// a parse failure, and everything else as a read failure.
func (s SQLiteDatabase) classifyReadErr(err error) error {
	if strings.Contains(strings.ToLower(err.Error()), "not a database") {
		return &ParseError{Path: s.Path, Err: err}
	}
	return &ReadError{Path: s.Path, Err: err}
}

func migrateSQLiteState(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS meta (
			k TEXT PRIMARY KEY,
			v TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS epics (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT NOT NULL,
			status TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS stories (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT NOT NULL,
			status TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS epic_stories (
			epic_id INTEGER NOT NULL,
			story_id INTEGER NOT NULL,
			position INTEGER NOT NULL,
			PRIMARY KEY (epic_id, position)
		);`,
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func loadStateFromSQLite(ctx context.Context, db *sql.DB) (*model.DBState, error) {
	st := model.NewDBState()

	var last string
	err := db.QueryRowContext(ctx, `SELECT v FROM meta WHERE k = 'last_item_id'`).Scan(&last)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return nil, err
	default:
		n, err := strconv.ParseUint(last, 10, 32)
		if err != nil {
			return nil, &ParseError{Err: fmt.Errorf("last_item_id: %w", err)}
		}
		st.LastItemID = uint32(n)
	}

	rows, err := db.QueryContext(ctx, `SELECT id, name, description, status FROM epics ORDER BY id`)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var (
			id                        int64
			name, description, status string
		)
		if err := rows.Scan(&id, &name, &description, &status); err != nil {
			rows.Close()
			return nil, err
		}
		s, err := model.ParseStatus(status)
		if err != nil {
			rows.Close()
			return nil, &ParseError{Err: fmt.Errorf("epic %d: %w", id, err)}
		}
		e := model.NewEpic(name, description)
		e.Status = s
		st.Epics[uint32(id)] = e
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	rows, err = db.QueryContext(ctx, `SELECT id, name, description, status FROM stories ORDER BY id`)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var (
			id                        int64
			name, description, status string
		)
		if err := rows.Scan(&id, &name, &description, &status); err != nil {
			rows.Close()
			return nil, err
		}
		s, err := model.ParseStatus(status)
		if err != nil {
			rows.Close()
			return nil, &ParseError{Err: fmt.Errorf("story %d: %w", id, err)}
		}
		story := model.NewStory(name, description)
		story.Status = s
		st.Stories[uint32(id)] = story
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	rows, err = db.QueryContext(ctx, `SELECT epic_id, story_id FROM epic_stories ORDER BY epic_id, position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var epicID, storyID int64
		if err := rows.Scan(&epicID, &storyID); err != nil {
			return nil, err
		}
		e, ok := st.Epics[uint32(epicID)]
		if !ok {
			return nil, &ParseError{Err: fmt.Errorf("story link references missing epic %d", epicID)}
		}
		e.Stories = append(e.Stories, uint32(storyID))
		st.Epics[uint32(epicID)] = e
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return st, nil
}

func saveStateToSQLite(ctx context.Context, db *sql.DB, st *model.DBState) error {
	tx, err := db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	// Replace-all: the state is small and always written whole.
	for _, t := range []string{"epic_stories", "stories", "epics"} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+t); err != nil {
			return err
		}
	}
	if _, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO meta(k, v) VALUES('last_item_id', ?)`,
		strconv.FormatUint(uint64(st.LastItemID), 10)); err != nil {
		return err
	}

	for _, id := range st.SortedEpicIDs() {
		e := st.Epics[id]
		if _, err := tx.ExecContext(ctx, `INSERT INTO epics(id, name, description, status) VALUES(?, ?, ?, ?)`,
			int64(id), e.Name, e.Description, e.Status.Name()); err != nil {
			return err
		}
		for pos, sid := range e.Stories {
			if _, err := tx.ExecContext(ctx, `INSERT INTO epic_stories(epic_id, story_id, position) VALUES(?, ?, ?)`,
				int64(id), int64(sid), pos); err != nil {
				return err
			}
		}
	}
	for _, id := range st.SortedStoryIDs() {
		s := st.Stories[id]
		if _, err := tx.ExecContext(ctx, `INSERT INTO stories(id, name, description, status) VALUES(?, ?, ?, ?)`,
			int64(id), s.Name, s.Description, s.Status.Name()); err != nil {
			return err
		}
	}
	return tx.Commit()
}
