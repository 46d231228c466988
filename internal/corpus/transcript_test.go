package corpus

import (
	"path/filepath"
	"testing"
)

func TestParseFilename(t *testing.T) {
	info, ok := ParseFilename("/data/국회본회의 회의록_052588_제21대_제400회_제14차_20221208.json")
	if !ok {
		t.Fatal("ParseFilename() ok = false")
	}
	if info.MinutesID != "052588" || info.AssemblyNumber != "21" || info.SessionNumber != "400" {
		t.Errorf("ParseFilename() = %+v", info)
	}
	if info.SubSession != "제14차" {
		t.Errorf("SubSession = %q, want 제14차", info.SubSession)
	}
	if got := info.Date.Format("2006-01-02"); got != "2022-12-08" {
		t.Errorf("Date = %s, want 2022-12-08", got)
	}

	if _, ok := ParseFilename("minutes.json"); ok {
		t.Error("ParseFilename() ok = true for unrelated name")
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	t.Run("explicit metadata", func(t *testing.T) {
		path := filepath.Join(dir, "m1.json")
		writeFile(t, path, `{
			"minutes_id": "m1",
			"minutes_type": "상임위원회",
			"minutes_date": "2024-10-07",
			"assembly_number": "22",
			"session_number": "418",
			"sub_session": "제1차",
			"statements": [
				{"speech_order": 1, "speaker_name": "홍길동", "position": "위원장", "speech_summary": "개의를 선포합니다."},
				{"speech_order": 2, "speaker_name": "김철수", "position": "위원", "speech_summary": ""}
			]
		}`)

		tr, err := Load(path)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if tr.ID != "m1" || tr.Type != "상임위원회" || len(tr.Statements) != 2 {
			t.Errorf("Load() = %+v", tr)
		}
		if got := tr.DocumentID(tr.Statements[1]); got != "m1_2" {
			t.Errorf("DocumentID() = %q, want m1_2", got)
		}
	})

	t.Run("metadata from file name", func(t *testing.T) {
		path := filepath.Join(dir, "국회본회의 회의록_052588_제21대_제400회_제14차_20221208.json")
		writeFile(t, path, `{"statements": [{"speech_order": 3, "speaker_name": "의장", "speech_summary": "안건을 상정합니다."}]}`)

		tr, err := Load(path)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if tr.ID != "052588" || tr.Type != "본회의" || tr.Date != "2022-12-08" || tr.SubSession != "제14차" {
			t.Errorf("Load() = %+v", tr)
		}
	})

	t.Run("missing id", func(t *testing.T) {
		path := filepath.Join(dir, "anonymous.json")
		writeFile(t, path, `{"statements": []}`)
		if _, err := Load(path); err == nil {
			t.Error("Load() expected error without minutes_id")
		}
	})

	t.Run("invalid json", func(t *testing.T) {
		path := filepath.Join(dir, "broken.json")
		writeFile(t, path, `{`)
		if _, err := Load(path); err == nil {
			t.Error("Load() expected error for invalid JSON")
		}
	})
}
