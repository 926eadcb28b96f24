// Package meetings is the meeting repository: a mutex-guarded in-memory
// registry persisted to a JSON file under the configured meetings dir.
package meetings

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/meetscribe/export-server/cmd/server/internal/models"
)

// Registry maintains a thread-safe collection of meetings.
type Registry struct {
	mu sync.Mutex
	m  map[string]*models.Meeting
}

// NewRegistry creates a new meeting registry.
func NewRegistry() *Registry {
	return &Registry{m: map[string]*models.Meeting{}}
}

// Get retrieves a meeting by ID.
func (r *Registry) Get(id string) *models.Meeting {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.m[id]
}

// GetByID resolves a meeting for the export coordinator; a nil meeting
// means the ID is unknown.
func (r *Registry) GetByID(ctx context.Context, id string) (*models.Meeting, error) {
	return r.Get(id), nil
}

// Set stores or updates a meeting.
func (r *Registry) Set(m *models.Meeting) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	m.UpdatedAt = time.Now()
	r.m[m.ID] = m
}

// List returns all meetings sorted by date, newest first.
func (r *Registry) List() []*models.Meeting {
	r.mu.Lock()
	defer r.mu.Unlock()

	list := make([]*models.Meeting, 0, len(r.m))
	for _, m := range r.m {
		list = append(list, m)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Date.Equal(list[j].Date) {
			return list[i].ID < list[j].ID
		}
		return list[i].Date.After(list[j].Date)
	})
	return list
}

// Delete removes a meeting by ID and returns it.
func (r *Registry) Delete(id string) *models.Meeting {
	r.mu.Lock()
	defer r.mu.Unlock()

	m := r.m[id]
	if m != nil {
		delete(r.m, id)
	}
	return m
}
