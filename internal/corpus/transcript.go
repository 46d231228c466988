package corpus

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Transcript is one meeting's minutes.
type Transcript struct {
	ID             string      `json:"minutes_id"`
	Type           string      `json:"minutes_type"`
	Date           string      `json:"minutes_date"`
	AssemblyNumber string      `json:"assembly_number"`
	SessionNumber  string      `json:"session_number"`
	SubSession     string      `json:"sub_session"`
	Statements     []Statement `json:"statements"`
}

// Statement is one utterance in a transcript.
type Statement struct {
	SpeechOrder int    `json:"speech_order"`
	SpeakerName string `json:"speaker_name"`
	Position    string `json:"position"`
	Summary     string `json:"speech_summary"`
}

// Published plenary files are named like
// "국회본회의 회의록_052588_제21대_제400회_제14차_20221208.json".
var filenamePattern = regexp.MustCompile(`국회본회의\s회의록_(\d+)_제(\d+)대_제(\d+)회_제(\d+)차_(\d{8})\.json`)

// FileInfo is the meeting metadata encoded in a plenary file name.
type FileInfo struct {
	MinutesID      string
	AssemblyNumber string
	SessionNumber  string
	SubSession     string
	Date           time.Time
}

// ParseFilename extracts meeting metadata from a plenary file name.
func ParseFilename(name string) (FileInfo, bool) {
	m := filenamePattern.FindStringSubmatch(filepath.Base(name))
	if m == nil {
		return FileInfo{}, false
	}
	date, err := time.Parse("20060102", m[5])
	if err != nil {
		return FileInfo{}, false
	}
	return FileInfo{
		MinutesID:      m[1],
		AssemblyNumber: m[2],
		SessionNumber:  m[3],
		SubSession:     "제" + m[4] + "차",
		Date:           date,
	}, true
}

// Load reads a transcript file. Metadata missing from the body is filled from the
// file name when it follows the published naming scheme.
func Load(path string) (*Transcript, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read transcript %s: %w", path, err)
	}

	var t Transcript
	if err := json.Unmarshal(raw, &t); err != nil {
		return nil, fmt.Errorf("failed to parse transcript %s: %w", path, err)
	}

	if info, ok := ParseFilename(path); ok {
		if t.ID == "" {
			t.ID = info.MinutesID
		}
		if t.AssemblyNumber == "" {
			t.AssemblyNumber = info.AssemblyNumber
		}
		if t.SessionNumber == "" {
			t.SessionNumber = info.SessionNumber
		}
		if t.SubSession == "" {
			t.SubSession = info.SubSession
		}
		if t.Date == "" {
			t.Date = info.Date.Format("2006-01-02")
		}
		if t.Type == "" {
			t.Type = "본회의"
		}
	}

	if strings.TrimSpace(t.ID) == "" {
		return nil, fmt.Errorf("transcript %s has no minutes_id", path)
	}
	return &t, nil
}

// DocumentID is the stable identifier of statement s within t.
func (t *Transcript) DocumentID(s Statement) string {
	return t.ID + "_" + strconv.Itoa(s.SpeechOrder)
}
