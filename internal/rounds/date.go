package rounds

import (
	"encoding/json"
	"fmt"
	"time"
)

// DateLayout is the display format used on the wire (CSV, JSON, YAML).
const DateLayout = "Jan 2, 2006"

// Date is a calendar date. It marshals as the display format so exported
// files read the way the scorecard pages do.
type Date struct {
	time.Time
}

// Layouts Golfshot renders in formattedStartTime, most common first.
var dateLayouts = []string{
	"Jan 2, 2006",
	"January 2, 2006",
	"Jan 2 2006",
	"Monday, January 2, 2006",
	"1/2/2006",
	"2006-01-02",
}

// ParseDate parses the start-time text embedded in a scorecard payload.
func ParseDate(text string) (Date, error) {
	if text == "" {
		return Date{}, fmt.Errorf("empty date")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, text); err == nil {
			return Date{t}, nil
		}
	}
	return Date{}, fmt.Errorf("unrecognized date %q", text)
}

// String formats the date for output. Zero dates format as empty.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

// MarshalJSON writes the date in the display format.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON accepts the display format or an empty string.
func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalYAML writes the date in the display format.
func (d Date) MarshalYAML() (any, error) {
	return d.String(), nil
}

// UnmarshalYAML accepts the display format or an empty string.
func (d *Date) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	if s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
