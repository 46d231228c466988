package indexer

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"assembly-rag/internal/assemble"
	"assembly-rag/internal/corpus"
)

// TextFormatVersion identifies the contextual text layout. Bump it when
// ContextualText changes so IndexVersion changes with it.
const TextFormatVersion = "v1"

// pointNamespace seeds deterministic point IDs.
var pointNamespace = uuid.MustParse("6f1c9a52-3d1e-4b8a-9c1f-2a7d5e0b4c13")

// ContextualText is the text embedded for a statement: meeting context on the
// first line, then the utterance summary.
func ContextualText(t *corpus.Transcript, s corpus.Statement) string {
	parts := []string{
		fmt.Sprintf("%s %s %s", t.AssemblyNumber, t.SessionNumber, t.SubSession),
		assemble.FormatDate(t.Date),
		"회의유형: " + t.Type,
	}
	switch {
	case s.SpeakerName != "" && s.Position != "":
		parts = append(parts, fmt.Sprintf("발언자: %s (%s)", s.SpeakerName, s.Position))
	case s.SpeakerName != "":
		parts = append(parts, "발언자: "+s.SpeakerName)
	}
	if s.SpeechOrder != 0 {
		parts = append(parts, fmt.Sprintf("발언순서: %d", s.SpeechOrder))
	}
	return strings.Join(parts, " | ") + "\n\n발언내용: " + s.Summary
}

// PointID maps a document ID to its vector-store point ID. The same document
// always lands on the same point, so re-indexing overwrites instead of duplicating.
func PointID(documentID string) string {
	return uuid.NewSHA1(pointNamespace, []byte(documentID)).String()
}

func contentHash(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
