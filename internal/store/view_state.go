package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

const viewStateFileName = "view_state.json"

// ViewState stores the last screen of the interactive UI so a relaunch
// reopens where the user left off. Callers should tolerate missing or
// invalid data.
type ViewState struct {
	Version int `json:"version"`

	// Mode is one of: monthly|yearly|daily
	Mode string `json:"mode,omitempty"`

	// Anchor is the date-key the view was anchored on.
	Anchor string `json:"anchor,omitempty"`
}

func viewStatePath(dir string) string {
	return filepath.Join(dir, viewStateFileName)
}

// LoadViewState reads the view state under dir. Missing or corrupt files
// yield a zero state.
func LoadViewState(dir string) (*ViewState, error) {
	if strings.TrimSpace(dir) == "" {
		return &ViewState{Version: 1}, nil
	}
	b, err := os.ReadFile(viewStatePath(dir))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &ViewState{Version: 1}, nil
		}
		return nil, err
	}
	var st ViewState
	if err := json.Unmarshal(b, &st); err != nil {
		return &ViewState{Version: 1}, nil
	}
	if st.Version == 0 {
		st.Version = 1
	}
	return &st, nil
}

func SaveViewState(dir string, st *ViewState) error {
	if st == nil || strings.TrimSpace(dir) == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	if st.Version == 0 {
		st.Version = 1
	}
	b, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	return atomicWriteFile(dir, viewStateFileName+".*.tmp", viewStatePath(dir), b, 0o644)
}
