package dateutil

import (
	"strings"

	"golang.org/x/text/language"
)

// sundayFirstRegions lists regions whose calendars start the week on Sunday.
var sundayFirstRegions = map[string]bool{
	"AG": true, "AS": true, "BD": true, "BR": true, "BS": true, "BT": true,
	"BW": true, "BZ": true, "CA": true, "CN": true, "CO": true, "DM": true,
	"DO": true, "ET": true, "GT": true, "GU": true, "HK": true, "HN": true,
	"ID": true, "IL": true, "IN": true, "JM": true, "JP": true, "KE": true,
	"KH": true, "KR": true, "LA": true, "MH": true, "MM": true, "MO": true,
	"MT": true, "MX": true, "MZ": true, "NI": true, "NP": true, "PA": true,
	"PE": true, "PH": true, "PK": true, "PR": true, "PT": true, "PY": true,
	"SA": true, "SG": true, "SV": true, "TH": true, "TT": true, "TW": true,
	"UM": true, "US": true, "VE": true, "VI": true, "WS": true, "YE": true,
	"ZA": true, "ZW": true,
}

// WeekStartForLocale reports the first weekday for a BCP 47 locale tag.
// A tag without a region uses the most likely region for its language.
// Unparseable tags fall back to Monday.
func WeekStartForLocale(tag string) WeekStart {
	t, err := language.Parse(strings.TrimSpace(tag))
	if err != nil {
		return WeekStartMonday
	}
	region, _ := t.Region()
	if sundayFirstRegions[region.String()] {
		return WeekStartSunday
	}
	return WeekStartMonday
}

// ParseWeekStart resolves a configured week start. "locale" (or empty)
// defers to WeekStartForLocale.
func ParseWeekStart(value, locale string) (WeekStart, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "sunday":
		return WeekStartSunday, true
	case "monday":
		return WeekStartMonday, true
	case "", "locale":
		return WeekStartForLocale(locale), true
	default:
		return WeekStartMonday, false
	}
}
