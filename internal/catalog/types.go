package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Catalog is the static reference data behind local answers.
type Catalog struct {
	Syllabuses  Syllabuses   `json:"syllabuses"`
	HolidayList HolidayList  `json:"holiday_list"`
	Departments []Department `json:"departments,omitempty"`
	Facilities  []Facility   `json:"facilities,omitempty"`
	Staff       Staff        `json:"staff"`
}

// Syllabuses groups syllabus links by programme level.
type Syllabuses struct {
	UG []SyllabusEntry `json:"ug_syllabus"`
	PG []SyllabusEntry `json:"pg_syllabus"`
}

// SyllabusEntry is either a single link (URL) or a named list of links (URLs).
type SyllabusEntry struct {
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
	URLs []Link `json:"urls,omitempty"`
}

// Grouped reports whether the entry carries a list of links.
func (e SyllabusEntry) Grouped() bool {
	return e.URLs != nil
}

// Link is a named hyperlink.
type Link struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// HolidayList holds the free-form holiday text.
type HolidayList struct {
	Details string `json:"details"`

	// set when decoded from a non-empty object; hasDetails when that object
	// carried a details key.
	decoded    bool
	hasDetails bool
}

// UnmarshalJSON records whether the object had any keys and a details key.
func (h *HolidayList) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("holiday list: %w", err)
	}
	*h = HolidayList{decoded: len(fields) > 0}
	raw, ok := fields["details"]
	if !ok {
		return nil
	}
	h.hasDetails = true
	if string(raw) == "null" {
		return nil
	}
	if err := json.Unmarshal(raw, &h.Details); err != nil {
		return fmt.Errorf("holiday list details: %w", err)
	}
	return nil
}

// Present reports whether the catalog carries a holiday list at all. An
// empty details text still counts when the list object was given.
func (h HolidayList) Present() bool {
	return h.decoded || h.Details != ""
}

// Summary returns the details text, or "Not available" when the list was
// given without a details key.
func (h HolidayList) Summary() string {
	if h.Details == "" && h.decoded && !h.hasDetails {
		return "Not available"
	}
	return h.Details
}

// Department describes one academic department.
type Department struct {
	Name     string `json:"name"`
	Location string `json:"location,omitempty"`
	HOD      string `json:"hod,omitempty"`
	HODName  string `json:"hod_name,omitempty"`
	HODRole  string `json:"hod_role,omitempty"`
}

// Head returns the head of department, whichever field carries it.
func (d Department) Head() string {
	if d.HOD != "" {
		return d.HOD
	}
	return d.HODName
}

// Coords is a geographic coordinate pair.
type Coords struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Facility is a campus location such as the canteen or health centre.
type Facility struct {
	Name      string  `json:"name"`
	Location  string  `json:"location,omitempty"`
	Timing    string  `json:"timing,omitempty"`
	Coords    *Coords `json:"coords,omitempty"`
	MapIframe string  `json:"map_iframe,omitempty"`
}

// Staff lists teaching staff by department and non-teaching staff by role.
type Staff struct {
	Teaching    TeachingStaff `json:"teaching,omitempty"`
	NonTeaching []StaffMember `json:"non_teaching,omitempty"`
}

// StaffMember is a non-teaching staff entry.
type StaffMember struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

// DepartmentStaff lists the teachers of one department.
type DepartmentStaff struct {
	Department string
	Members    []string
}

// TeachingStaff is a JSON object of department -> names that keeps the
// document's key order.
type TeachingStaff []DepartmentStaff

// UnmarshalJSON decodes the object key by key so department order survives.
func (t *TeachingStaff) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("teaching staff: expected object, got %v", tok)
	}

	out := TeachingStaff{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		department, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("teaching staff: unexpected key %v", keyTok)
		}
		var members []string
		if err := dec.Decode(&members); err != nil {
			return fmt.Errorf("teaching staff %q: %w", department, err)
		}
		out = append(out, DepartmentStaff{Department: department, Members: members})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*t = out
	return nil
}

// MarshalJSON writes the departments back as an object in slice order.
func (t TeachingStaff) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, dept := range t {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(dept.Department)
		if err != nil {
			return nil, err
		}
		members := dept.Members
		if members == nil {
			members = []string{}
		}
		value, err := json.Marshal(members)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
