package storage

import "time"

// MinutesRecord is one meeting transcript.
type MinutesRecord struct {
	ID             string
	MinutesType    string // e.g. 본회의, 상임위원회
	MinutesDate    string // as published, formatted at render time
	AssemblyNumber string
	SessionNumber  string
	SubSession     string
	SourceFile     string
	IndexedAt      time.Time
}

// StatementRecord is one indexed utterance. DocumentID is "<minutes_id>_<speech_order>"
// and PointID is the matching vector-store point.
type StatementRecord struct {
	DocumentID  string
	MinutesID   string
	SpeechOrder int
	SpeakerName string
	Position    string
	Content     string // contextual text that was embedded
	Hash        string // SHA256 hex of Content
	PointID     string
}

// StatementDetail joins a statement with its meeting metadata.
type StatementDetail struct {
	StatementRecord
	Minutes MinutesRecord
}
