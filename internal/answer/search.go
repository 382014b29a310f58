package answer

import (
	"fmt"
	"strings"

	"github.com/bgdnvk/campusbot/internal/backend"
	"github.com/bgdnvk/campusbot/internal/catalog"
)

const notAvailable = "Not available"

var (
	departmentKeywords  = []string{"department", "hod", "head of department", "location"}
	syllabusKeywords    = []string{"syllabus", "course", "curriculum"}
	facilityKeywords    = []string{"facility", "canteen", "health centre", "map", "kisan college"}
	holidayKeywords     = []string{"holiday", "chutti", "vacation", "list of holidays"}
	teachingKeywords    = []string{"teaching staff", "faculty"}
	nonTeachingKeywords = []string{"non-teaching staff", "non-faculty", "office staff"}
)

type staffEntry struct {
	name       string
	role       string
	department string
}

// Search looks query up in cat. query must already be lowercased. The
// second result is false when nothing local matched.
func Search(cat *catalog.Catalog, query string) (*backend.Answer, bool) {
	if cat == nil {
		return nil, false
	}
	words := strings.Fields(query)

	for _, member := range allStaff(cat) {
		if closeTo(query, strings.ToLower(member.name), staffCutoff) {
			return formatStaffMember(member), true
		}
	}

	if containsAny(query, departmentKeywords) || anyWordClose(words, departmentNames(cat)) {
		for _, dept := range cat.Departments {
			if closeTo(query, strings.ToLower(dept.Name), matchCutoff) ||
				closeTo(query, strings.ToLower(dept.HOD), matchCutoff) ||
				closeTo(query, strings.ToLower(dept.HODName), matchCutoff) {
				return formatDepartment(dept), true
			}
		}
	}

	if containsAny(query, syllabusKeywords) {
		entries := append(append([]catalog.SyllabusEntry{}, cat.Syllabuses.UG...), cat.Syllabuses.PG...)
		for _, entry := range entries {
			if entry.Name == "" {
				continue
			}
			if anyWordClose(words, strings.Fields(strings.ToLower(entry.Name))) {
				return formatSyllabus(entry), true
			}
		}
	}

	if containsAny(query, facilityKeywords) {
		for _, facility := range cat.Facilities {
			if closeTo(query, strings.ToLower(facility.Name), matchCutoff) {
				return formatFacility(facility), true
			}
		}
	}

	if containsAny(query, holidayKeywords) && cat.HolidayList.Present() {
		return &backend.Answer{Text: "**Holiday Information:**\n" + cat.HolidayList.Summary()}, true
	}

	if containsAny(query, teachingKeywords) && len(cat.Staff.Teaching) > 0 {
		return formatTeachingStaff(cat.Staff.Teaching), true
	}
	if containsAny(query, nonTeachingKeywords) && len(cat.Staff.NonTeaching) > 0 {
		return formatNonTeachingStaff(cat.Staff.NonTeaching), true
	}

	return nil, false
}

func allStaff(cat *catalog.Catalog) []staffEntry {
	var out []staffEntry
	for _, dept := range cat.Staff.Teaching {
		for _, name := range dept.Members {
			out = append(out, staffEntry{name: name, role: "Teaching staff", department: dept.Department})
		}
	}
	for _, member := range cat.Staff.NonTeaching {
		out = append(out, staffEntry{name: member.Name, role: member.Role})
	}
	return out
}

func departmentNames(cat *catalog.Catalog) []string {
	names := make([]string, 0, len(cat.Departments))
	for _, dept := range cat.Departments {
		names = append(names, strings.ToLower(dept.Name))
	}
	return names
}

func anyWordClose(words, candidates []string) bool {
	for _, word := range words {
		if anyClose(word, candidates, matchCutoff) {
			return true
		}
	}
	return false
}

func containsAny(s string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(s, keyword) {
			return true
		}
	}
	return false
}

func orNotAvailable(s string) string {
	if s == "" {
		return notAvailable
	}
	return s
}

func formatStaffMember(m staffEntry) *backend.Answer {
	var b strings.Builder
	fmt.Fprintf(&b, "**Staff Member:** %s\n", m.name)
	fmt.Fprintf(&b, "Role: %s", orNotAvailable(m.role))
	if m.department != "" {
		fmt.Fprintf(&b, "\nDepartment: %s", m.department)
	}
	return &backend.Answer{Text: b.String()}
}

func formatDepartment(d catalog.Department) *backend.Answer {
	var b strings.Builder
	fmt.Fprintf(&b, "**Department:** %s\n", orNotAvailable(d.Name))
	fmt.Fprintf(&b, "Location: %s\n", orNotAvailable(d.Location))
	head := orNotAvailable(d.Head())
	if d.Head() != "" && d.HODRole != "" {
		fmt.Fprintf(&b, "HOD: %s (%s)", head, d.HODRole)
	} else {
		fmt.Fprintf(&b, "HOD: %s", head)
	}
	return &backend.Answer{Text: b.String()}
}

func formatSyllabus(e catalog.SyllabusEntry) *backend.Answer {
	var b strings.Builder
	b.WriteString("**Syllabus:**\n")
	if e.Grouped() {
		fmt.Fprintf(&b, "**%s**\n", e.Name)
		for _, link := range e.URLs {
			fmt.Fprintf(&b, "- %s: %s\n", link.Name, link.URL)
		}
		return &backend.Answer{Text: strings.TrimRight(b.String(), "\n")}
	}
	fmt.Fprintf(&b, "**%s**: Click here for Syllabus (%s)", e.Name, e.URL)
	return &backend.Answer{Text: b.String()}
}

func formatFacility(f catalog.Facility) *backend.Answer {
	var b strings.Builder
	fmt.Fprintf(&b, "**Facility:** %s\n", orNotAvailable(f.Name))
	fmt.Fprintf(&b, "Location: %s\n", orNotAvailable(f.Location))
	fmt.Fprintf(&b, "Timing: %s", orNotAvailable(f.Timing))
	return &backend.Answer{Text: b.String(), Coords: f.Coords, MapIframe: f.MapIframe}
}

func formatTeachingStaff(staff catalog.TeachingStaff) *backend.Answer {
	var b strings.Builder
	b.WriteString("**Teaching Staff:**")
	for _, dept := range staff {
		members := "No staff listed"
		if len(dept.Members) > 0 {
			members = strings.Join(dept.Members, ", ")
		}
		fmt.Fprintf(&b, "\n- **%s:** %s", dept.Department, members)
	}
	return &backend.Answer{Text: b.String()}
}

func formatNonTeachingStaff(staff []catalog.StaffMember) *backend.Answer {
	var b strings.Builder
	b.WriteString("**Non-Teaching Staff:**")
	for _, member := range staff {
		fmt.Fprintf(&b, "\n- %s (%s)", orNotAvailable(member.Name), orNotAvailable(member.Role))
	}
	return &backend.Answer{Text: b.String()}
}
