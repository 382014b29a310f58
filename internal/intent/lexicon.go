package intent

// Lexicon maps each keyword group name to its keywords.
type Lexicon map[Intent][]string

var (
	// priorityOrder is the fixed evaluation order of branching groups.
	priorityOrder = []Intent{UGSyllabus, PGSyllabus, Holiday, Department}

	// topicOrder lists groups that are evaluated but never branched on.
	topicOrder = []Intent{Vocational, Humanities, SocialScience, Commerce, Science}

	defaultLexicon = Lexicon{
		UGSyllabus: {"ug syllabus", "ug syllabuses", "undergraduate syllabus"},
		PGSyllabus: {
			"pg syllabus", "pg syllabuses", "postgraduate syllabus", "master syllabus",
			"m.sc. syllabus", "m.a. syllabus", "m.com. syllabus", "mca syllabus", "m.sc. it syllabus",
		},
		Holiday:    {"holiday", "chutti", "holidays"},
		Department: {"department", "departments", "course", "courses", "stream", "streams", "subject", "subjects"},
		Vocational: {"vocational", "professional", "bba", "bca", "blis", "bsc it"},
		Humanities: {"humanities", "english", "hindi", "urdu", "pali", "philosophy", "arts"},
		SocialScience: {
			"social science", "history", "geography", "economics",
			"political science", "psychology", "sociology", "home science",
		},
		Commerce: {"commerce", "accounts", "b.com", "finance"},
		Science:  {"science", "physics", "chemistry", "maths", "biology", "botany", "zoology"},
	}
)

// DefaultLexicon returns a copy of the built-in keyword groups.
func DefaultLexicon() Lexicon {
	return cloneLexicon(defaultLexicon)
}

// Group returns the keyword group for name.
func (l Lexicon) Group(name Intent) KeywordGroup {
	keywords := make([]string, len(l[name]))
	copy(keywords, l[name])
	return KeywordGroup{Name: name, Keywords: keywords}
}

func cloneLexicon(src Lexicon) Lexicon {
	dst := make(Lexicon, len(src))
	for name, keywords := range src {
		copied := make([]string, len(keywords))
		copy(copied, keywords)
		dst[name] = copied
	}
	return dst
}
