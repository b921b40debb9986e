package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"jira-cli/internal/model"
)

const DefaultJSONPath = "./db.json"

// JSONFile stores the whole DBState as one JSON document.
//
// A missing file reads as the empty state. A file that exists but does not
// decode (including an empty one) is a *ParseError; it is never reset.
type JSONFile struct {
	Path string
}

func (f JSONFile) Read() (*model.DBState, error) {
	b, err := os.ReadFile(f.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return model.NewDBState(), nil
		}
		return nil, &ReadError{Path: f.Path, Err: err}
	}
	if len(bytes.TrimSpace(b)) == 0 {
		return nil, &ParseError{Path: f.Path, Err: errors.New("empty file")}
	}
	var st model.DBState
	dec := json.NewDecoder(bytes.NewReader(b))
	if err := dec.Decode(&st); err != nil {
		return nil, &ParseError{Path: f.Path, Err: err}
	}
	if dec.More() {
		return nil, &ParseError{Path: f.Path, Err: errors.New("trailing data after state")}
	}
	st.Normalize()
	return &st, nil
}

// Write replaces the file using temp-file, fsync, rename so a failed write
// leaves the previous contents in place.
func (f JSONFile) Write(st *model.DBState) error {
	if st == nil {
		return &WriteError{Path: f.Path, Err: errors.New("nil state")}
	}
	b, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return &WriteError{Path: f.Path, Err: err}
	}
	b = append(b, '\n')
	if err := writeFileAtomic(f.Path, b); err != nil {
		return &WriteError{Path: f.Path, Err: err}
	}
	return nil
}

// Backup copies the current store file to dest.
func (f JSONFile) Backup(dest string) error {
	if _, err := os.Stat(f.Path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("backup: no store file at %s", f.Path)
		}
		return &ReadError{Path: f.Path, Err: err}
	}
	return CopyFile(f.Path, dest)
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".db-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
