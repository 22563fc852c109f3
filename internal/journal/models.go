package journal

import "time"

// Entry is one recorded rig switch.
type Entry struct {
	ID         int64
	TransferID string
	Frame      float64
	FromRig    string
	ToRig      string
	PoseJSON   string
	CreatedAt  time.Time
}

// Summary aggregates journal contents for status output.
type Summary struct {
	Total   int
	ByToRig map[string]int
	FirstAt time.Time
	LastAt  time.Time
}

// DatabaseHealth reports diagnostic information about the journal database.
type DatabaseHealth struct {
	DBPath           string
	DatabaseExists   bool
	DatabaseReadable bool
	TableExists      bool
	TotalTransfers   int
	IntegrityCheck   bool
	Error            string
}
