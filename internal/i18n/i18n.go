// Package i18n provides the translated labels used by the presentation
// layer. The calendar core never depends on it.
package i18n

import (
	"fmt"

	"golang.org/x/text/language"
)

// Message keys.
const (
	KeyToday      = "today"
	KeyPrevious   = "previous"
	KeyNext       = "next"
	KeyDay        = "day"
	KeyWeek       = "week"
	KeyWorkWeek   = "work_week"
	KeyMonth      = "month"
	KeyYear       = "year"
	KeyAgenda     = "agenda"
	KeyShowMore   = "show_more"
	KeyNoEvents   = "no_events"
	KeyNoViews    = "no_views"
	KeyNoView     = "view_unavailable"
	KeyAllDay     = "all_day"
	KeyLocation   = "location"
	KeyLabels     = "labels"
	KeyLinkCopied = "link_copied"
	KeyEvents     = "events"
)

var catalogs = map[language.Tag]map[string]string{
	language.English: {
		KeyToday:      "Today",
		KeyPrevious:   "Back",
		KeyNext:       "Next",
		KeyDay:        "Day",
		KeyWeek:       "Week",
		KeyWorkWeek:   "Work Week",
		KeyMonth:      "Month",
		KeyYear:       "Year",
		KeyAgenda:     "Agenda",
		KeyShowMore:   "+%d more",
		KeyNoEvents:   "No events in range",
		KeyNoViews:    "No calendar views are configured",
		KeyNoView:     "The selected view is not available",
		KeyAllDay:     "All day",
		KeyLocation:   "Location",
		KeyLabels:     "Labels",
		KeyLinkCopied: "Link copied",
		KeyEvents:     "%d events",
	},
	language.Spanish: {
		KeyToday:    "Hoy",
		KeyPrevious: "Atrás",
		KeyNext:     "Después",
		KeyDay:      "Día",
		KeyWeek:     "Semana",
		KeyWorkWeek: "Semana de trabajo",
		KeyMonth:    "Mes",
		KeyYear:     "Año",
		KeyAgenda:   "El Diario",
		KeyShowMore: "+%d más",
		KeyNoEvents: "No hay eventos",
		KeyEvents:   "%d eventos",
	},
	language.French: {
		KeyToday:    "Aujourd'hui",
		KeyPrevious: "Antérieur",
		KeyNext:     "Prochain",
		KeyDay:      "Jour",
		KeyWeek:     "La semaine",
		KeyWorkWeek: "Semaine de travail",
		KeyMonth:    "Mois",
		KeyYear:     "Année",
		KeyAgenda:   "Ordre du jour",
		KeyShowMore: "+%d plus",
		KeyEvents:   "%d événements",
	},
	language.German: {
		KeyToday:    "Heute",
		KeyPrevious: "Vorherige",
		KeyNext:     "Nächste",
		KeyDay:      "Tag",
		KeyWeek:     "Woche",
		KeyWorkWeek: "Arbeitswoche",
		KeyMonth:    "Monat",
		KeyYear:     "Jahr",
		KeyAgenda:   "Agenda",
		KeyShowMore: "+%d mehr",
		KeyEvents:   "%d Termine",
	},
	language.Chinese: {
		KeyToday:    "今天",
		KeyPrevious: "以前的",
		KeyNext:     "下一个",
		KeyDay:      "天",
		KeyWeek:     "星期",
		KeyWorkWeek: "工作周",
		KeyMonth:    "月",
		KeyYear:     "年",
		KeyAgenda:   "议程",
		KeyShowMore: "+%d 更多的",
	},
}

var supported = []language.Tag{
	language.English,
	language.Spanish,
	language.French,
	language.German,
	language.Chinese,
}

var matcher = language.NewMatcher(supported)

// Translator resolves message keys for one locale, falling back to
// English and then to the key itself.
type Translator struct {
	Locale string
	lang   language.Tag
}

// New returns a Translator for a BCP 47 locale tag.
func New(locale string) Translator {
	tag, _ := language.MatchStrings(matcher, locale)
	base, _ := tag.Base()
	for _, s := range supported {
		if b, _ := s.Base(); b == base {
			return Translator{Locale: locale, lang: s}
		}
	}
	return Translator{Locale: locale, lang: language.English}
}

// Language returns the matched catalog language.
func (t Translator) Language() language.Tag {
	return t.lang
}

// Translate returns the message for key.
func (t Translator) Translate(key string) string {
	if msg, ok := catalogs[t.lang][key]; ok {
		return msg
	}
	if msg, ok := catalogs[language.English][key]; ok {
		return msg
	}
	return key
}

// ShowMore renders the overflow label for n hidden events.
func (t Translator) ShowMore(n int) string {
	return fmt.Sprintf(t.Translate(KeyShowMore), n)
}

// Events renders an event count.
func (t Translator) Events(n int) string {
	return fmt.Sprintf(t.Translate(KeyEvents), n)
}
