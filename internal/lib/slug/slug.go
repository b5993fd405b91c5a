// Package slug строит человекочитаемые идентификаторы товаров.
package slug

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// MaxBaseLen ограничивает часть идентификатора, полученную из названия.
const MaxBaseLen = 30

// fallback используется, когда от названия ничего не осталось.
const fallback = "prod"

var (
	spaces  = regexp.MustCompile(`\s+`)
	illegal = regexp.MustCompile(`[^a-z0-9-]`)
)

// Base приводит название к нижнему регистру, заменяет пробелы дефисами,
// выбрасывает всё кроме [a-z0-9-] и обрезает до MaxBaseLen символов.
func Base(name string) string {
	s := strings.ToLower(name)
	s = spaces.ReplaceAllString(s, "-")
	s = illegal.ReplaceAllString(s, "")
	if len(s) > MaxBaseLen {
		s = s[:MaxBaseLen]
	}
	return s
}

// Generate возвращает "<base>-<unix millis>".
// Уникальность гарантируется только меткой времени.
func Generate(name string, at time.Time) string {
	base := Base(name)
	if base == "" {
		base = fallback
	}
	return base + "-" + strconv.FormatInt(at.UnixMilli(), 10)
}
