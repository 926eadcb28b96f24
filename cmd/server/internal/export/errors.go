package export

import (
	"errors"
)

// Fatal error classes of the export pipeline. Best-effort failures
// (history writes, progress subscribers) are logged, never returned.
var (
	ErrMeetingNotFound   = errors.New("meeting not found")
	ErrUnsupportedFormat = errors.New("unsupported export format")
	ErrNoDownloadSink    = errors.New("no download sink configured")
)
