package meetings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/meetscribe/export-server/cmd/server/internal/config"
	"github.com/meetscribe/export-server/cmd/server/internal/models"
)

var (
	meetingsRootPath = "./data/meetings"
	statePath        = filepath.Join(meetingsRootPath, "meetings.json")
)

// InitPaths initializes meeting storage paths based on global config.
func InitPaths() {
	if config.GlobalConfig != nil {
		if dir := config.GlobalConfig.Data.MeetingsDir; dir != "" {
			meetingsRootPath = dir
		}
	}
	if meetingsRootPath == "" {
		meetingsRootPath = "./data/meetings"
	}
	meetingsRootPath = filepath.Clean(meetingsRootPath)
	statePath = filepath.Join(meetingsRootPath, "meetings.json")
}

// MeetingsRoot returns the configured meetings root directory.
func MeetingsRoot() string {
	if meetingsRootPath == "" {
		InitPaths()
	}
	return meetingsRootPath
}

// StatePath returns the file path for persisted meetings.
func StatePath() string {
	if statePath == "" {
		InitPaths()
	}
	return statePath
}

// SaveMeetings persists the registry to disk.
func SaveMeetings(reg *Registry) error {
	reg.mu.Lock()
	list := make([]*models.Meeting, 0, len(reg.m))
	for _, m := range reg.m {
		list = append(list, m)
	}
	reg.mu.Unlock()

	if err := os.MkdirAll(MeetingsRoot(), 0o755); err != nil {
		return fmt.Errorf("create meetings dir: %w", err)
	}

	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal meetings: %w", err)
	}

	tmp := StatePath() + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write meetings state: %w", err)
	}
	return os.Rename(tmp, StatePath())
}

// LoadMeetings restores persisted meetings into the registry. A missing
// state file is not an error: the registry starts empty.
func LoadMeetings(reg *Registry) error {
	data, err := os.ReadFile(StatePath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read meetings state: %w", err)
	}

	var list []*models.Meeting
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("parse meetings state: %w", err)
	}

	reg.mu.Lock()
	defer reg.mu.Unlock()
	for _, m := range list {
		if m != nil && m.ID != "" {
			reg.m[m.ID] = m
		}
	}
	return nil
}
