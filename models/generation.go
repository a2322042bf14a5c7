package models

// Job statuses reported by the media-generation provider. Anything outside
// this set is treated as still in flight.
const (
	JobStatusQueued     = "queued"
	JobStatusInProgress = "in_progress"
	JobStatusCompleted  = "completed"
	JobStatusFailed     = "failed"
	JobStatusNSFW       = "nsfw"
)

// GenerationJob is the ephemeral view of one in-flight provider request.
// It is never persisted; the caller stores any resulting URL on a Project.
type GenerationJob struct {
	RequestID string  `json:"requestId"`
	Status    string  `json:"status"`
	URL       *string `json:"url,omitempty"`
	Error     *string `json:"error,omitempty"`
}
