package utils

import (
	"log"
	"time"
)

// DateLayout is the YYYY-MM-DD layout used for trade dates.
const DateLayout = "2006-01-02"

func TimeNowWIB() time.Time {
	return time.Now().In(LocationWIB())
}

// LocationWIB returns the Asia/Jakarta location.
func LocationWIB() *time.Location {
	loc, err := time.LoadLocation("Asia/Jakarta")
	if err != nil {
		log.Fatal("Failed to load location", err)
	}
	return loc
}

// ParseDate parses a YYYY-MM-DD date in WIB.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, LocationWIB())
}

// NormalizeDate converts the date encodings produced by the spreadsheet
// (YYYY-MM-DD, RFC3339 timestamps, D/M/YYYY) into YYYY-MM-DD. Unknown input is returned as-is.
func NormalizeDate(s string) string {
	if s == "" {
		return ""
	}
	if _, err := time.Parse(DateLayout, s); err == nil {
		return s
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.In(LocationWIB()).Format(DateLayout)
	}
	if t, err := time.Parse("2006-01-02T15:04:05.000Z", s); err == nil {
		return t.In(LocationWIB()).Format(DateLayout)
	}
	for _, layout := range []string{"2/1/2006", "02/01/2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(DateLayout)
		}
	}
	return s
}
