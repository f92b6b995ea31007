package store

import (
	"context"
	"encoding/json"
	"os"
)

// FilePersister keeps the whole state in one JSON file next to the binary,
// the same data.json arrangement earlier deployments used. It doubles as the
// fallback when Postgres is not configured or unreachable.
type FilePersister struct {
	Path string
}

func NewFilePersister(path string) *FilePersister {
	return &FilePersister{Path: path}
}

func (f *FilePersister) Name() string { return "file" }

func (f *FilePersister) Save(_ context.Context, st PersistedState) error {
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	tmp := f.Path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, f.Path)
}

func (f *FilePersister) Load(_ context.Context) (*PersistedState, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var st PersistedState
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, err
	}
	return &st, nil
}
