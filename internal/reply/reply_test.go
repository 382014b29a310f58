package reply

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bgdnvk/campusbot/internal/catalog"
)

func TestSyllabus_SingleLink(t *testing.T) {
	r := Syllabus(UGHeader, []catalog.SyllabusEntry{
		{Name: "B.Sc. Physics", URL: "https://x/y"},
	})

	require.Len(t, r.Links, 1)
	assert.Equal(t, Link{Name: "B.Sc. Physics", URL: "https://x/y"}, r.Links[0])
	assert.Equal(t, UGHeader+"\n\n**B.Sc. Physics**: Click here for Syllabus (https://x/y)", r.Text)
}

func TestSyllabus_GroupedLinks(t *testing.T) {
	r := Syllabus(PGHeader, []catalog.SyllabusEntry{
		{Name: "M.A. Hindi", URLs: []catalog.Link{
			{Name: "Part I", URL: "https://x/1"},
			{Name: "Part II", URL: "https://x/2"},
		}},
	})

	want := []Link{
		{Course: "M.A. Hindi", Name: "Part I", URL: "https://x/1"},
		{Course: "M.A. Hindi", Name: "Part II", URL: "https://x/2"},
	}
	if diff := cmp.Diff(want, r.Links); diff != "" {
		t.Fatalf("links mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, PGHeader+"\n\n**M.A. Hindi**:\n- Part I: https://x/1\n- Part II: https://x/2", r.Text)
}

func TestSyllabus_PreservesOrder(t *testing.T) {
	entries := []catalog.SyllabusEntry{
		{Name: "Zoology", URL: "https://x/z"},
		{Name: "Accounts", URLs: []catalog.Link{{Name: "Sem 1", URL: "https://x/a1"}}},
		{Name: "Botany", URL: "https://x/b"},
	}
	r := Syllabus(UGHeader, entries)

	var names []string
	for _, l := range r.Links {
		names = append(names, l.Name)
	}
	assert.Equal(t, []string{"Zoology", "Sem 1", "Botany"}, names)

	z := strings.Index(r.Text, "Zoology")
	a := strings.Index(r.Text, "Accounts")
	b := strings.Index(r.Text, "Botany")
	assert.True(t, z < a && a < b, "text out of order: %q", r.Text)
}

func TestSyllabus_EmptyList(t *testing.T) {
	r := UGSyllabus(&catalog.Catalog{})
	assert.Equal(t, UGHeader, r.Text)
	assert.Empty(t, r.Links)
	assert.False(t, r.Empty())
}

func TestHolidays(t *testing.T) {
	cat := &catalog.Catalog{HolidayList: catalog.HolidayList{Details: "Holi: 14 Mar"}}
	assert.Equal(t, "Holi: 14 Mar", Holidays(cat).Text)

	assert.True(t, Holidays(&catalog.Catalog{}).Empty())
	assert.True(t, Holidays(nil).Empty())
}

func TestDepartments(t *testing.T) {
	r := Departments()
	assert.True(t, strings.HasPrefix(r.Text, "Our college offers the following departments and courses:"))
	for _, dept := range []string{"Commerce Department", "Humanities", "Vocational Courses", "Science", "Social Science"} {
		assert.Contains(t, r.Text, dept)
	}
	assert.Nil(t, r.Links)
}

func TestFallback(t *testing.T) {
	assert.Equal(t, "Maaf kijiye, AI service se jawab lene mein ek error aa gaya hai.", Fallback().Text)
}
