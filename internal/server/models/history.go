package models

import "time"

// HistoryEntry records one answered prompt. Prompt is kept exactly as it
// was received.
type HistoryEntry struct {
	ID        string
	Timestamp time.Time
	Prompt    string
	Answer    string
}
