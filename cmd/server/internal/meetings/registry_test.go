package meetings

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/meetscribe/export-server/cmd/server/internal/models"
)

func newMeeting(id string, date time.Time) *models.Meeting {
	return &models.Meeting{ID: id, Title: "Meeting " + id, Date: date}
}

func TestRegistryCRUD(t *testing.T) {
	reg := NewRegistry()

	if got := reg.Get("m1"); got != nil {
		t.Fatalf("expected nil for unknown id, got %+v", got)
	}

	m := newMeeting("m1", time.Now())
	reg.Set(m)

	if got := reg.Get("m1"); got == nil || got.ID != "m1" {
		t.Fatalf("Get returned %+v", got)
	}
	if m.CreatedAt.IsZero() || m.UpdatedAt.IsZero() {
		t.Fatalf("Set should stamp timestamps: %+v", m)
	}

	if got := reg.Delete("m1"); got == nil {
		t.Fatalf("Delete should return the removed meeting")
	}
	if got := reg.Get("m1"); got != nil {
		t.Fatalf("meeting should be gone after delete")
	}
	if got := reg.Delete("m1"); got != nil {
		t.Fatalf("second delete should return nil")
	}
}

func TestRegistryListOrder(t *testing.T) {
	reg := NewRegistry()
	base := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	reg.Set(newMeeting("old", base))
	reg.Set(newMeeting("new", base.Add(48*time.Hour)))
	reg.Set(newMeeting("mid", base.Add(24*time.Hour)))

	list := reg.List()
	if len(list) != 3 {
		t.Fatalf("expected 3 meetings, got %d", len(list))
	}
	if list[0].ID != "new" || list[1].ID != "mid" || list[2].ID != "old" {
		t.Fatalf("unexpected order: %s, %s, %s", list[0].ID, list[1].ID, list[2].ID)
	}
}

func TestSaveAndLoadMeetings(t *testing.T) {
	dir := t.TempDir()
	meetingsRootPath = dir
	statePath = filepath.Join(dir, "meetings.json")
	t.Cleanup(func() {
		meetingsRootPath = "./data/meetings"
		statePath = filepath.Join(meetingsRootPath, "meetings.json")
	})

	reg := NewRegistry()
	reg.Set(newMeeting("m1", time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC)))
	reg.Set(newMeeting("m2", time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)))

	if err := SaveMeetings(reg); err != nil {
		t.Fatalf("SaveMeetings failed: %v", err)
	}

	restored := NewRegistry()
	if err := LoadMeetings(restored); err != nil {
		t.Fatalf("LoadMeetings failed: %v", err)
	}
	if len(restored.List()) != 2 {
		t.Fatalf("expected 2 restored meetings, got %d", len(restored.List()))
	}
	if m := restored.Get("m1"); m == nil || m.Title != "Meeting m1" {
		t.Fatalf("restored meeting mismatch: %+v", m)
	}
}

func TestLoadMeetingsMissingFile(t *testing.T) {
	dir := t.TempDir()
	meetingsRootPath = dir
	statePath = filepath.Join(dir, "meetings.json")
	t.Cleanup(func() {
		meetingsRootPath = "./data/meetings"
		statePath = filepath.Join(meetingsRootPath, "meetings.json")
	})

	reg := NewRegistry()
	if err := LoadMeetings(reg); err != nil {
		t.Fatalf("missing state file should not be an error: %v", err)
	}
	if len(reg.List()) != 0 {
		t.Fatalf("registry should start empty")
	}
}
