package assemble

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultDateCacheSize bounds the memo table used by Render.
const DefaultDateCacheSize = 100

// NoDate is rendered for a missing meeting date.
const NoDate = "날짜 정보 없음"

const koreanDateLayout = "2006년 01월 02일"

// Parse order matters: the first layout that accepts the input wins.
// Fractional seconds are accepted after any layout with a seconds field.
var dateLayouts = []string{
	"2006-1-2",
	"2006-1-2 15:04:05",
	"2006-1-2T15:04:05",
	time.RFC3339Nano,
	"2006/1/2",
	"1/2/2006",
	"2006.1.2",
}

// FormatDate renders raw as "YYYY년 MM월 DD일". Empty input yields NoDate and
// input no layout accepts is returned unchanged.
func FormatDate(raw string) string {
	if raw == "" {
		return NoDate
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format(koreanDateLayout)
		}
	}
	return raw
}

// DateFormatter memoizes FormatDate in a bounded table.
type DateFormatter struct {
	memo *lru.Cache[string, string]
}

// NewDateFormatter creates a formatter remembering at most size inputs.
func NewDateFormatter(size int) *DateFormatter {
	if size <= 0 {
		size = DefaultDateCacheSize
	}
	memo, err := lru.New[string, string](size)
	if err != nil {
		// lru.New only fails for non-positive sizes.
		panic(err)
	}
	return &DateFormatter{memo: memo}
}

// Format is FormatDate with memoization. A nil formatter formats without caching.
func (f *DateFormatter) Format(raw string) string {
	if f == nil {
		return FormatDate(raw)
	}
	if v, ok := f.memo.Get(raw); ok {
		return v
	}
	v := FormatDate(raw)
	f.memo.Add(raw, v)
	return v
}

// Len reports the number of memoized inputs.
func (f *DateFormatter) Len() int {
	return f.memo.Len()
}
