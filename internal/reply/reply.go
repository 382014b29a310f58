// Package reply renders the locally answered intents into bot messages.
// Rendering is pure templating over the catalog; nothing here performs I/O.
package reply

import (
	"strings"

	"github.com/bgdnvk/campusbot/internal/catalog"
)

const (
	UGHeader = "UG Courses ke syllabus yahan hain:"
	PGHeader = "PG Courses ke syllabus yahan hain:"

	syllabusLinkLabel = "Click here for Syllabus"

	DepartmentOverview = "Our college offers the following departments and courses:\n\n" +
		"1. Commerce Department\n" +
		"2. Humanities\n" +
		"3. Vocational Courses\n" +
		"4. Science\n" +
		"5. Social Science\n\n" +
		"Please choose an option or type your query to know more."

	CatalogUnavailable = "Maaf kijiye, data load karne mein ek error aa gaya hai."
	RemoteUnavailable  = "Maaf kijiye, AI service se jawab lene mein ek error aa gaya hai."
)

// Link is a structured hyperlink attached to a bot message. Course is set
// when the link belongs to a multi-link syllabus entry.
type Link struct {
	Course string `json:"course,omitempty"`
	Name   string `json:"name"`
	URL    string `json:"url"`
}

// Reply is the rendered content of one bot message.
type Reply struct {
	Text   string
	Links  []Link
	Coords *catalog.Coords
}

// Empty reports whether the reply should be dropped instead of shown.
func (r Reply) Empty() bool {
	return r.Text == "" && len(r.Links) == 0
}

// UGSyllabus renders the undergraduate syllabus list.
func UGSyllabus(cat *catalog.Catalog) Reply {
	if cat == nil {
		return Syllabus(UGHeader, nil)
	}
	return Syllabus(UGHeader, cat.Syllabuses.UG)
}

// PGSyllabus renders the postgraduate syllabus list.
func PGSyllabus(cat *catalog.Catalog) Reply {
	if cat == nil {
		return Syllabus(PGHeader, nil)
	}
	return Syllabus(PGHeader, cat.Syllabuses.PG)
}

// Syllabus renders header followed by one block per entry, in entry order.
func Syllabus(header string, entries []catalog.SyllabusEntry) Reply {
	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n\n")

	links := make([]Link, 0, len(entries))
	for _, entry := range entries {
		if entry.Grouped() {
			b.WriteString("**" + entry.Name + "**:\n")
			for _, link := range entry.URLs {
				b.WriteString("- " + link.Name + ": " + link.URL + "\n")
				links = append(links, Link{Course: entry.Name, Name: link.Name, URL: link.URL})
			}
			b.WriteString("\n")
			continue
		}
		b.WriteString("**" + entry.Name + "**: " + syllabusLinkLabel + " (" + entry.URL + ")\n\n")
		links = append(links, Link{Name: entry.Name, URL: entry.URL})
	}

	return Reply{
		Text:  strings.TrimRight(b.String(), "\n"),
		Links: links,
	}
}

// Holidays returns the holiday details verbatim. Empty details yield an
// empty reply.
func Holidays(cat *catalog.Catalog) Reply {
	if cat == nil {
		return Reply{}
	}
	return Reply{Text: cat.HolidayList.Details}
}

// Departments returns the fixed department overview.
func Departments() Reply {
	return Reply{Text: DepartmentOverview}
}

// Fallback is shown when the remote answering service fails.
func Fallback() Reply {
	return Reply{Text: RemoteUnavailable}
}
