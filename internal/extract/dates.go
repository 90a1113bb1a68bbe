package extract

import (
	"strings"
	"time"
)

// WordPressTimeLayout is the layout of wp:post_date and friends.
const WordPressTimeLayout = "2006-01-02 15:04:05"

const zeroWordPressTime = "0000-00-00 00:00:00"

// maxSiteOffset bounds the local minus GMT difference accepted as a zone.
const maxSiteOffset = 14 * time.Hour

type dateOutcome int

const (
	dateParsed dateOutcome = iota
	dateAbsent
	dateInvalid
)

// parseWordPressTime parses a WordPress timestamp as wall clock time in UTC.
// zoned is true only for values that carry their own offset. The zero date
// WordPress writes for unscheduled drafts counts as absent.
func parseWordPressTime(value string) (parsed time.Time, zoned bool, outcome dateOutcome) {
	value = strings.TrimSpace(value)
	if value == "" || value == zeroWordPressTime || strings.HasPrefix(value, "0000-00-00") {
		return time.Time{}, false, dateAbsent
	}
	parsed, err := time.ParseInLocation(WordPressTimeLayout, value, time.UTC)
	if err == nil {
		return parsed, false, dateParsed
	}
	if parsed, err = time.Parse(time.RFC3339, value); err != nil {
		return time.Time{}, false, dateInvalid
	}
	return parsed, true, dateParsed
}

// siteTime resolves a local timestamp and its GMT twin. With both present the
// result keeps the local wall clock in a fixed zone of their difference. With
// only the local value it is floating: wall clock time with an unknown offset.
// With only the GMT value it is UTC.
func siteTime(local, gmt string) (t time.Time, floating bool, outcome dateOutcome) {
	localTime, zoned, localOutcome := parseWordPressTime(local)
	if localOutcome == dateParsed && zoned {
		return localTime, false, dateParsed
	}

	gmtTime, _, gmtOutcome := parseWordPressTime(gmt)
	switch {
	case localOutcome == dateParsed && gmtOutcome == dateParsed:
		offset := localTime.Sub(gmtTime.UTC())
		if offset < -maxSiteOffset || offset > maxSiteOffset {
			return localTime, true, dateParsed
		}
		zone := time.FixedZone("", int(offset/time.Second))
		return time.Date(localTime.Year(), localTime.Month(), localTime.Day(),
			localTime.Hour(), localTime.Minute(), localTime.Second(), localTime.Nanosecond(), zone), false, dateParsed
	case localOutcome == dateParsed:
		return localTime, true, dateParsed
	case gmtOutcome == dateParsed:
		return gmtTime.UTC(), false, dateParsed
	case localOutcome == dateAbsent && gmtOutcome == dateInvalid:
		return time.Time{}, false, dateInvalid
	default:
		return time.Time{}, false, localOutcome
	}
}
