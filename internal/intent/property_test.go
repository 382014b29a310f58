package intent

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestProperty_UGBeatsEverything(t *testing.T) {
	classifier := NewClassifier()
	properties := gopter.NewProperties(nil)

	properties.Property("any ug keyword selects ug syllabus", prop.ForAll(
		func(prefix, suffix, ug, other string) bool {
			message := prefix + " " + other + " " + ug + " " + suffix
			return classifier.Classify(message).Intent == UGSyllabus
		},
		gen.AlphaString(),
		gen.AlphaString(),
		gen.OneConstOf("ug syllabus", "UG Syllabuses", "undergraduate syllabus"),
		gen.OneConstOf("pg syllabus", "mca syllabus", "holiday", "departments", "hello", ""),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestProperty_NoKeywordMeansGeneric(t *testing.T) {
	classifier := NewClassifier()
	properties := gopter.NewProperties(nil)

	properties.Property("messages without keywords are generic", prop.ForAll(
		func(words []string) bool {
			return classifier.Classify(strings.Join(words, " ")).Intent == Generic
		},
		gen.SliceOf(gen.OneConstOf("fees", "admission", "library", "timing", "kya", "hai", "2024", "42")),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestProperty_ClassifyIsCaseInsensitive(t *testing.T) {
	classifier := NewClassifier()
	properties := gopter.NewProperties(nil)

	properties.Property("upper and lower case classify alike", prop.ForAll(
		func(s string) bool {
			return classifier.Classify(strings.ToUpper(s)).Intent == classifier.Classify(s).Intent
		},
		gen.OneConstOf("ug syllabus", "pg syllabus", "holidays", "streams", "bca", "what now"),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
