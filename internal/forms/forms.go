// Package forms maps submitted HTML forms onto records. Each form type reads
// its fields explicitly from url.Values, validates them, and only then builds
// a record; nothing is populated by reflection.
package forms

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

var States = []string{
	"AL", "AK", "AZ", "AR", "CA", "CO", "CT", "DE", "DC", "FL",
	"GA", "HI", "ID", "IL", "IN", "IA", "KS", "KY", "LA", "ME",
	"MT", "NE", "NV", "NH", "NJ", "NM", "NY", "NC", "ND", "OH",
	"OK", "OR", "MD", "MA", "MI", "MN", "MS", "MO", "PA", "RI",
	"SC", "SD", "TN", "TX", "UT", "VT", "VA", "WA", "WV", "WI",
	"WY",
}

var Genres = []string{
	"Alternative", "Blues", "Classical", "Country", "Electronic",
	"Folk", "Funk", "Hip-Hop", "Heavy Metal", "Instrumental",
	"Jazz", "Musical Theatre", "Pop", "Punk", "R&B",
	"Reggae", "Rock n Roll", "Soul", "Swing", "Other",
}

var phonePattern = regexp.MustCompile(`^\d{3}-\d{3}-\d{4}$`)

// ErrInvalid marks a form that failed validation. The concrete error also
// carries the per-field messages as validation.Errors.
var ErrInvalid = errors.New("invalid form")

// ValidationError wraps the field errors of one form submission.
type ValidationError struct {
	Fields validation.Errors
}

func (e *ValidationError) Error() string { return Message(e.Fields) }

func (e *ValidationError) Unwrap() error { return ErrInvalid }

// FieldErrors returns one "field message" line per failing field, sorted by
// field name.
func (e *ValidationError) FieldErrors() []string {
	return fieldLines(e.Fields)
}

// FieldErrors returns the field lines of err when it is a *ValidationError.
func FieldErrors(err error) []string {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.FieldErrors()
	}
	return nil
}

// Message flattens field errors into the single message shown to the user.
func Message(errs validation.Errors) string {
	return "Errors: " + strings.Join(fieldLines(errs), "; ")
}

func fieldLines(errs validation.Errors) []string {
	keys := make([]string, 0, len(errs))
	for k := range errs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("%s %s", k, errs[k].Error()))
	}
	return lines
}

// wrap turns the result of validation.ValidateStruct into a *ValidationError.
func wrap(err error) error {
	if err == nil {
		return nil
	}
	var fields validation.Errors
	if errors.As(err, &fields) {
		return &ValidationError{Fields: fields}
	}
	return err
}

func field(values url.Values, key string) string {
	return strings.TrimSpace(values.Get(key))
}

// checked reads an HTML checkbox, which browsers submit as "y", "on" or
// "true" when ticked and omit otherwise.
func checked(values url.Values, key string) bool {
	switch strings.ToLower(values.Get(key)) {
	case "y", "yes", "on", "true", "1":
		return true
	}
	return false
}

func multi(values url.Values, key string) []string {
	var out []string
	for _, v := range values[key] {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func choices(list []string) []interface{} {
	out := make([]interface{}, len(list))
	for i, v := range list {
		out[i] = v
	}
	return out
}

// Rules shared by the venue and artist forms.
var (
	stateRules = []validation.Rule{
		validation.Required,
		validation.In(choices(States)...).Error("is not a valid state"),
	}
	genreRules = []validation.Rule{
		validation.Required,
		validation.Each(validation.In(choices(Genres)...).Error("is not a valid genre")),
	}
	phoneRules = []validation.Rule{
		validation.Match(phonePattern).Error("must look like 123-456-7890"),
	}
	linkRules = []validation.Rule{
		is.URL.Error("must be a valid URL"),
		validation.Length(0, 500),
	}
)
