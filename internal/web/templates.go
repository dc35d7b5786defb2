package web

import (
	"embed"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/JonasLeetTheWay/fyyur-go/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	fullDateLayout   = "Monday January 2, 2006 at 3:04PM"
	mediumDateLayout = "Mon 01, 02, 2006 3:04PM"
)

// FuncMap is available in every page.
var FuncMap = template.FuncMap{
	"datetime": FormatDatetime,
	"join":     strings.Join,
}

// LoadTemplates parses every embedded page and partial.
func LoadTemplates() (*template.Template, error) {
	tmpl, err := template.New("").Funcs(FuncMap).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return tmpl, nil
}

// FormatDatetime renders a show time as "full" (the default) or "medium".
// value may be a time.Time or a string in one of the listing layouts.
// Strings that do not parse are returned unchanged.
func FormatDatetime(value any, format ...string) string {
	var t time.Time
	switch v := value.(type) {
	case time.Time:
		t = v
	case string:
		parsed, ok := parseListingTime(v)
		if !ok {
			return v
		}
		t = parsed
	default:
		return fmt.Sprint(value)
	}

	layout := fullDateLayout
	if len(format) > 0 && format[0] == "medium" {
		layout = mediumDateLayout
	}
	return t.UTC().Format(layout)
}

func parseListingTime(s string) (time.Time, bool) {
	for _, layout := range []string{models.ListingTimeLayout, models.ShowTimeLayout, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
