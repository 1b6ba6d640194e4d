// Package eventtime parses event dates entered as RFC 3339 timestamps or as
// natural language ("tomorrow at 8pm", "next friday 21:00").
package eventtime

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

// ErrUnrecognized is returned when no layout or rule matches the input.
var ErrUnrecognized = errors.New("unrecognized date")

var compactClock = regexp.MustCompile(`\b(\d{1,2})(\d{2})\s*(am|pm)\b`)

// Parser resolves user input to an absolute instant.
type Parser struct {
	zones map[string]string
	w     *when.Parser
}

// NewParser returns a parser with the common US and European abbreviations.
func NewParser() *Parser {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return &Parser{
		zones: map[string]string{
			"UTC":  "UTC",
			"GMT":  "UTC",
			"PST":  "America/Los_Angeles",
			"PDT":  "America/Los_Angeles",
			"MST":  "America/Denver",
			"MDT":  "America/Denver",
			"CST":  "America/Chicago",
			"CDT":  "America/Chicago",
			"EST":  "America/New_York",
			"EDT":  "America/New_York",
			"CET":  "Europe/Berlin",
			"CEST": "Europe/Berlin",
		},
		w: w,
	}
}

// Location resolves an abbreviation or IANA name. Empty means UTC.
func (p *Parser) Location(zone string) (*time.Location, error) {
	zone = strings.TrimSpace(zone)
	if zone == "" {
		return time.UTC, nil
	}
	if full, ok := p.zones[strings.ToUpper(zone)]; ok {
		zone = full
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, fmt.Errorf("unknown timezone %q", zone)
	}
	return loc, nil
}

// Parse returns input as a UTC instant. Natural language is resolved relative
// to now in the given zone.
func (p *Parser) Parse(input, zone string, now time.Time) (time.Time, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return time.Time{}, ErrUnrecognized
	}

	if t, err := time.Parse(time.RFC3339, input); err == nil {
		return t.UTC(), nil
	}

	loc, err := p.Location(zone)
	if err != nil {
		return time.Time{}, err
	}

	normalized := strings.ToLower(input)
	normalized = strings.ReplaceAll(normalized, "today ", "today at ")
	normalized = compactClock.ReplaceAllString(normalized, "$1:$2 $3")

	r, err := p.w.Parse(normalized, now.In(loc))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrUnrecognized, err)
	}
	if r == nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrUnrecognized, input)
	}
	return r.Time.Truncate(time.Minute).UTC(), nil
}
