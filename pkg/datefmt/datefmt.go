// Package datefmt renders dates and times for one explicit locale and time
// zone. Every user-visible date string in the application comes from a
// Formatter; collection logic never formats dates itself.
package datefmt

import (
	"os"
	"strings"
	"time"

	"github.com/goodsign/monday"
	"golang.org/x/text/language"
)

// supported pairs BCP-47 tags with the locale tables that can render them.
// The first entry is the fallback for unrecognized locales.
var supported = []struct {
	tag    language.Tag
	locale monday.Locale
}{
	{language.AmericanEnglish, monday.LocaleEnUS},
	{language.BritishEnglish, monday.LocaleEnGB},
	{language.EuropeanSpanish, monday.LocaleEsES},
	{language.MustParse("ca-ES"), monday.LocaleCaES},
	{language.French, monday.LocaleFrFR},
	{language.CanadianFrench, monday.LocaleFrCA},
	{language.German, monday.LocaleDeDE},
	{language.Italian, monday.LocaleItIT},
	{language.EuropeanPortuguese, monday.LocalePtPT},
	{language.BrazilianPortuguese, monday.LocalePtBR},
	{language.Dutch, monday.LocaleNlNL},
	{language.Danish, monday.LocaleDaDK},
	{language.Swedish, monday.LocaleSvSE},
	{language.Finnish, monday.LocaleFiFI},
	{language.MustParse("nb-NO"), monday.LocaleNbNO},
	{language.Czech, monday.LocaleCsCZ},
	{language.Greek, monday.LocaleElGR},
	{language.Indonesian, monday.LocaleIdID},
	{language.Romanian, monday.LocaleRoRO},
	{language.Hungarian, monday.LocaleHuHU},
	{language.Turkish, monday.LocaleTrTR},
	{language.Bulgarian, monday.LocaleBgBG},
	{language.Russian, monday.LocaleRuRU},
	{language.Ukrainian, monday.LocaleUkUA},
	{language.SimplifiedChinese, monday.LocaleZhCN},
	{language.TraditionalChinese, monday.LocaleZhTW},
	{language.Korean, monday.LocaleKoKR},
	{language.Japanese, monday.LocaleJaJP},
}

var matcher language.Matcher

func init() {
	tags := make([]language.Tag, len(supported))
	for i, s := range supported {
		tags[i] = s.tag
	}
	matcher = language.NewMatcher(tags)
}

// Formatter renders dates and times for a fixed locale and location.
type Formatter struct {
	tag    language.Tag
	locale monday.Locale
	loc    *time.Location
}

// New builds a Formatter for a BCP-47 locale tag. An empty tag is resolved
// from the process environment. Unsupported locales fall back to the
// closest supported one; a malformed tag is an error.
func New(locale string, loc *time.Location) (*Formatter, error) {
	if locale == "" {
		locale = DetectLocale()
	}
	if loc == nil {
		loc = time.Local
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, err
	}
	_, idx, _ := matcher.Match(tag)
	return &Formatter{
		tag:    supported[idx].tag,
		locale: supported[idx].locale,
		loc:    loc,
	}, nil
}

// DetectLocale resolves the locale from LC_ALL, LC_TIME, and LANG, in the
// glibc precedence order. Defaults to en-US.
func DetectLocale() string {
	for _, key := range []string{"LC_ALL", "LC_TIME", "LANG"} {
		v := os.Getenv(key)
		if i := strings.IndexAny(v, ".@"); i >= 0 {
			v = v[:i]
		}
		if v == "" || v == "C" || v == "POSIX" {
			continue
		}
		return strings.ReplaceAll(v, "_", "-")
	}
	return "en-US"
}

// Locale reports the matched BCP-47 tag.
func (f *Formatter) Locale() string { return f.tag.String() }

// Location reports the formatter's time zone.
func (f *Formatter) Location() *time.Location { return f.loc }

// FullDate renders the complete date of a unix-millisecond timestamp with
// the weekday spelled out.
func (f *Formatter) FullDate(tsMillis int64) string {
	return monday.Format(time.UnixMilli(tsMillis).In(f.loc), "Monday, 2 January 2006", f.locale)
}

// Time renders the wall-clock time of a unix-millisecond timestamp.
func (f *Formatter) Time(tsMillis int64) string {
	return time.UnixMilli(tsMillis).In(f.loc).Format("15:04:05")
}

// DayLabel renders the header line for a calendar day.
func (f *Formatter) DayLabel(day time.Time) string {
	return monday.Format(day.In(f.loc), "Monday, 2 January 2006", f.locale)
}

// ShortDay renders the compact day label used on chart axes.
func (f *Formatter) ShortDay(day time.Time) string {
	return monday.Format(day.In(f.loc), "2 Jan", f.locale)
}
