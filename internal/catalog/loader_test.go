package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_File(t *testing.T) {
	cat, err := NewLoader().Load(context.Background(), filepath.Join("testdata", "data.json"))
	require.NoError(t, err)

	require.Len(t, cat.Syllabuses.UG, 2)
	assert.Equal(t, "B.Sc. Physics", cat.Syllabuses.UG[0].Name)
	assert.False(t, cat.Syllabuses.UG[0].Grouped())
	assert.True(t, cat.Syllabuses.UG[1].Grouped())
	assert.Equal(t, "Semester II", cat.Syllabuses.UG[1].URLs[1].Name)
	assert.Len(t, cat.Syllabuses.PG, 1)

	assert.Contains(t, cat.HolidayList.Details, "Diwali")
	assert.Equal(t, "Dr. R. Sharma", cat.Departments[0].Head())
	assert.Equal(t, "Dr. A. Singh", cat.Departments[1].Head())
	require.NotNil(t, cat.Facilities[0].Coords)
	assert.Equal(t, 85.1, cat.Facilities[0].Coords.Lng)
}

func TestLoad_TeachingStaffKeepsOrder(t *testing.T) {
	cat, err := NewLoader().Load(context.Background(), filepath.Join("testdata", "data.json"))
	require.NoError(t, err)

	var order []string
	for _, dept := range cat.Staff.Teaching {
		order = append(order, dept.Department)
	}
	assert.Equal(t, []string{"Zoology", "Botany", "Commerce"}, order)
	assert.Empty(t, cat.Staff.Teaching[2].Members)

	out, err := json.Marshal(cat.Staff.Teaching)
	require.NoError(t, err)
	assert.Equal(t, `{"Zoology":["Dr. P. Verma"],"Botany":["Dr. K. Rai","Dr. M. Das"],"Commerce":[]}`, string(out))
}

func TestLoad_URL(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "data.json"))
	require.NoError(t, err)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/data.json" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(data)
	}))
	defer server.Close()

	cat, err := NewLoaderWithClient(server.Client()).Load(context.Background(), server.URL+"/data.json")
	require.NoError(t, err)
	assert.Len(t, cat.Syllabuses.UG, 2)
}

func TestLoad_Failures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/broken.json":
			w.Write([]byte(`{"syllabuses": [`))
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer server.Close()

	badFile := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(badFile, []byte("not json"), 0o600))

	tests := []struct {
		name   string
		source string
	}{
		{name: "missing file", source: filepath.Join(t.TempDir(), "missing.json")},
		{name: "invalid file", source: badFile},
		{name: "server error", source: server.URL + "/data.json"},
		{name: "truncated body", source: server.URL + "/broken.json"},
	}

	loader := NewLoaderWithClient(server.Client())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cat, err := loader.Load(context.Background(), tt.source)
			require.Error(t, err)
			assert.Nil(t, cat)
			assert.True(t, errors.Is(err, ErrUnavailable), "got %v", err)
		})
	}
}

func TestParse_NullTeaching(t *testing.T) {
	cat, err := Parse([]byte(`{"staff":{"teaching":null}}`))
	require.NoError(t, err)
	assert.Nil(t, cat.Staff.Teaching)

	_, err = Parse([]byte(`{"staff":{"teaching":["a"]}}`))
	require.Error(t, err)
}

func TestParse_HolidayList(t *testing.T) {
	tests := []struct {
		name        string
		doc         string
		wantPresent bool
		wantSummary string
	}{
		{name: "details", doc: `{"holiday_list":{"details":"Holi: 14 Mar"}}`, wantPresent: true, wantSummary: "Holi: 14 Mar"},
		{name: "empty details", doc: `{"holiday_list":{"details":""}}`, wantPresent: true, wantSummary: ""},
		{name: "no details key", doc: `{"holiday_list":{"updated":"2026"}}`, wantPresent: true, wantSummary: "Not available"},
		{name: "empty object", doc: `{"holiday_list":{}}`, wantPresent: false, wantSummary: ""},
		{name: "null", doc: `{"holiday_list":null}`, wantPresent: false, wantSummary: ""},
		{name: "missing", doc: `{}`, wantPresent: false, wantSummary: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cat, err := Parse([]byte(tt.doc))
			require.NoError(t, err)
			assert.Equal(t, tt.wantPresent, cat.HolidayList.Present())
			assert.Equal(t, tt.wantSummary, cat.HolidayList.Summary())
		})
	}

	_, err := Parse([]byte(`{"holiday_list":{"details":42}}`))
	assert.Error(t, err)
}
