package rosterdb

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// NoCurrentNeeds is shown for a party with an empty recruiting list.
const NoCurrentNeeds = "no current needs"

// RecruitingClasses is the ordered list of classes a party is looking for.
// Its wire and storage form is the comma-joined list.
type RecruitingClasses []string

// ParseRecruitingClasses splits s on commas, trims each entry and drops empty ones.
func ParseRecruitingClasses(s string) RecruitingClasses {
	out := RecruitingClasses{}
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Normalize trims every entry and drops the empty ones.
func (rc RecruitingClasses) Normalize() RecruitingClasses {
	return ParseRecruitingClasses(strings.Join(rc, ","))
}

func (rc RecruitingClasses) String() string {
	return strings.Join(rc, ", ")
}

// Display is String, or NoCurrentNeeds when the list is empty.
func (rc RecruitingClasses) Display() string {
	if len(rc) == 0 {
		return NoCurrentNeeds
	}
	return rc.String()
}

func (rc RecruitingClasses) MarshalJSON() ([]byte, error) {
	return json.Marshal(rc.String())
}

// UnmarshalJSON accepts the comma-joined string or a JSON array of strings.
func (rc *RecruitingClasses) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*rc = ParseRecruitingClasses(s)
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("recruiting_classes must be a string or an array of strings")
	}
	*rc = RecruitingClasses(list).Normalize()
	return nil
}

func (rc RecruitingClasses) Value() (driver.Value, error) {
	return rc.String(), nil
}

func (rc *RecruitingClasses) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*rc = RecruitingClasses{}
	case string:
		*rc = ParseRecruitingClasses(v)
	case []byte:
		*rc = ParseRecruitingClasses(string(v))
	default:
		return fmt.Errorf("cannot scan %T into RecruitingClasses", src)
	}
	return nil
}
