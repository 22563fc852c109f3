package ipc

// StatusRequest asks for a session snapshot.
type StatusRequest struct{}

// StatusResponse mirrors session.Status for the wire.
type StatusResponse struct {
	Running      bool    `json:"running"`
	PID          int     `json:"pid"`
	SceneName    string  `json:"scene_name"`
	ScenePath    string  `json:"scene_path"`
	StartFrame   float64 `json:"start_frame"`
	EndFrame     float64 `json:"end_frame"`
	CurrentFrame float64 `json:"current_frame"`
	Playing      bool    `json:"playing"`

	ActiveRig      string  `json:"active_rig"`
	ActiveRigTitle string  `json:"active_rig_title"`
	PendingRig     string  `json:"pending_rig,omitempty"`
	PendingFrame   float64 `json:"pending_frame,omitempty"`
	Deferrals      int     `json:"deferrals,omitempty"`

	TransferCount int    `json:"transfer_count"`
	JournalPath   string `json:"journal_path"`
	LockPath      string `json:"lock_path"`
	LastError     string `json:"last_error,omitempty"`
}

// ScrubRequest moves the timeline to a frame.
type ScrubRequest struct {
	Frame float64 `json:"frame"`
}

// ScrubResponse reports the clamped landing frame and the rig driving the
// character afterwards.
type ScrubResponse struct {
	Frame     float64 `json:"frame"`
	ActiveRig string  `json:"active_rig"`
	Pending   string  `json:"pending,omitempty"`
}

// PlayRequest starts playback across a frame range.
type PlayRequest struct {
	From float64 `json:"from"`
	To   float64 `json:"to"`
}

// PlayResponse indicates whether playback was started.
type PlayResponse struct {
	Started bool   `json:"started"`
	Message string `json:"message"`
}

// StopPlaybackRequest cancels an in-progress playback.
type StopPlaybackRequest struct{}

// StopPlaybackResponse reports whether playback was running.
type StopPlaybackResponse struct {
	Stopped bool `json:"stopped"`
}

// ShutdownRequest asks the session process to stop and exit.
type ShutdownRequest struct{}

// ShutdownResponse acknowledges shutdown.
type ShutdownResponse struct {
	Stopping bool `json:"stopping"`
}

// TransferListRequest fetches journal entries. A non-positive limit returns
// everything.
type TransferListRequest struct {
	Limit int `json:"limit"`
}

// TransferEntry is one journaled rig switch.
type TransferEntry struct {
	ID         int64   `json:"id"`
	TransferID string  `json:"transfer_id"`
	Frame      float64 `json:"frame"`
	FromRig    string  `json:"from_rig"`
	ToRig      string  `json:"to_rig"`
	PoseJSON   string  `json:"pose_json,omitempty"`
	CreatedAt  string  `json:"created_at"`
}

// TransferListResponse carries journal entries oldest first.
type TransferListResponse struct {
	Entries []TransferEntry `json:"entries"`
}

// TransferClearRequest removes all journal entries.
type TransferClearRequest struct{}

// TransferClearResponse reports how many entries were removed.
type TransferClearResponse struct {
	Removed int64 `json:"removed"`
}

// JournalHealthRequest asks for journal database diagnostics.
type JournalHealthRequest struct{}

// JournalHealthResponse mirrors journal.DatabaseHealth for the wire.
type JournalHealthResponse struct {
	DBPath           string `json:"db_path"`
	DatabaseExists   bool   `json:"database_exists"`
	DatabaseReadable bool   `json:"database_readable"`
	TableExists      bool   `json:"table_exists"`
	TotalTransfers   int    `json:"total_transfers"`
	IntegrityCheck   bool   `json:"integrity_check"`
	Error            string `json:"error,omitempty"`
}
