package reclaim

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// ChunksPerHour is the number of 15-minute scheduling chunks in an hour.
const ChunksPerHour = 4

// DefaultDuration is the task duration in hours used when none, or a
// non-positive one, is supplied.
const DefaultDuration = 1.0

// apiTimeLayout is the UTC timestamp format the API expects.
const apiTimeLayout = "2006-01-02T15:04:05Z"

const dateOnlyLayout = "2006-01-02"

// offsetLayouts cover offsets written without a colon, which RFC 3339
// rejects.
var offsetLayouts = []string{
	"2006-01-02T15:04:05-0700",
	"2006-01-02T15:04:05.999999999-0700",
}

// localLayouts are accepted for strings without an explicit offset. They are
// interpreted in the local time zone.
var localLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// HoursToChunks converts hours to whole chunks. Fractional chunks are
// truncated, so 0.1h becomes 0 chunks.
func HoursToChunks(hours float64) int {
	return int(hours * ChunksPerHour)
}

// ChunksToHours converts a chunk count to hours.
func ChunksToHours(chunks int) float64 {
	return float64(chunks) / ChunksPerHour
}

// ParseDate renders a time.Time or a date/time string as ISO-8601, keeping
// the original offset. Date-only strings stay date-only. Strings that cannot
// be parsed are returned unchanged.
func ParseDate(input interface{}) string {
	switch v := input.(type) {
	case nil:
		return ""
	case time.Time:
		return v.Format(time.RFC3339)
	case *time.Time:
		if v == nil {
			return ""
		}
		return v.Format(time.RFC3339)
	case string:
		t, dateOnly, err := parseTimeString(v)
		if err != nil {
			return v
		}
		if dateOnly {
			return t.Format(dateOnlyLayout)
		}
		return t.Format(time.RFC3339)
	default:
		return fmt.Sprint(input)
	}
}

// FormatDateTimeForAPI normalizes a time.Time or date/time string to a UTC
// timestamp with a Z suffix. Unparseable input is returned stringified.
func FormatDateTimeForAPI(input interface{}) string {
	switch v := input.(type) {
	case nil:
		return ""
	case time.Time:
		return v.UTC().Format(apiTimeLayout)
	case *time.Time:
		if v == nil {
			return ""
		}
		return v.UTC().Format(apiTimeLayout)
	case string:
		t, _, err := parseTimeString(v)
		if err != nil {
			return v
		}
		return t.UTC().Format(apiTimeLayout)
	default:
		return fmt.Sprint(input)
	}
}

// parseTimeString tries RFC 3339 first, then offset-less layouts in local
// time, then a bare date at local midnight.
func parseTimeString(s string) (time.Time, bool, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, false, nil
	}
	for _, layout := range offsetLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, false, nil
		}
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, false, nil
		}
	}
	t, err := time.ParseInLocation(dateOnlyLayout, s, time.Local)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("unrecognized date %q", s)
	}
	return t, true, nil
}

// ValidatePriority normalizes any input to one of the four priorities.
// Matching is case-insensitive; anything unrecognized becomes PriorityNormal.
func ValidatePriority(value interface{}) Priority {
	var s string
	switch v := value.(type) {
	case Priority:
		s = string(v)
	case string:
		s = v
	case fmt.Stringer:
		s = v.String()
	default:
		return PriorityNormal
	}

	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	if p.IsValid() {
		return p
	}
	return PriorityNormal
}

// ValidateDuration coerces the input to hours. Missing, unparseable or
// non-positive values become DefaultDuration.
func ValidateDuration(value interface{}) float64 {
	var d float64
	switch v := value.(type) {
	case float64:
		d = v
	case float32:
		d = float64(v)
	case int:
		d = float64(v)
	case int64:
		d = float64(v)
	case *float64:
		if v == nil {
			return DefaultDuration
		}
		d = *v
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return DefaultDuration
		}
		d = parsed
	default:
		return DefaultDuration
	}

	if math.IsNaN(d) || math.IsInf(d, 0) || d <= 0 {
		return DefaultDuration
	}
	return d
}
