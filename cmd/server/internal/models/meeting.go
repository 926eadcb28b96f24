package models

import "time"

// TranscriptSegment is one attributed utterance of a meeting transcript.
type TranscriptSegment struct {
	Speaker   string `json:"speaker"`
	Timestamp string `json:"timestamp"` // mm:ss or hh:mm:ss offset
	Text      string `json:"text"`
}

// ActionItem is one follow-up recorded during a meeting.
type ActionItem struct {
	Text  string `json:"text"`
	Owner string `json:"owner,omitempty"`
	Due   string `json:"due,omitempty"`
}

// Meeting is the persisted transcript/summary/metadata bundle exports
// are projected from.
type Meeting struct {
	ID           string              `json:"id"`
	Title        string              `json:"title"`
	Date         time.Time           `json:"date"`
	DurationMin  int                 `json:"duration_min"`
	Participants []string            `json:"participants,omitempty"`
	Transcript   []TranscriptSegment `json:"transcript,omitempty"`
	Summary      string              `json:"summary,omitempty"`
	KeyPoints    []string            `json:"key_points,omitempty"`
	ActionItems  []ActionItem        `json:"action_items,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
}
