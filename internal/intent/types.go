package intent

// Intent is the category a user message is classified into.
type Intent string

const (
	UGSyllabus    Intent = "ug_syllabus"
	PGSyllabus    Intent = "pg_syllabus"
	Holiday       Intent = "holiday"
	Department    Intent = "department"
	Vocational    Intent = "vocational"
	Humanities    Intent = "humanities"
	SocialScience Intent = "social_science"
	Commerce      Intent = "commerce"
	Science       Intent = "science"
	Generic       Intent = "generic"
)

// All lists every intent in declaration order.
func All() []Intent {
	return []Intent{
		UGSyllabus, PGSyllabus, Holiday, Department,
		Vocational, Humanities, SocialScience, Commerce, Science,
		Generic,
	}
}

// IsLocal reports whether the intent is answered without a remote call.
func (i Intent) IsLocal() bool {
	switch i {
	case UGSyllabus, PGSyllabus, Holiday, Department:
		return true
	}
	return false
}

// KeywordGroup is a named, ordered set of lowercase substrings.
type KeywordGroup struct {
	Name     Intent
	Keywords []string
}

// Matches reports whether any keyword is contained in the normalized message.
func (g KeywordGroup) Matches(normalized string) bool {
	return containsAny(normalized, g.Keywords)
}

// Rule pairs an intent with the predicate that selects it.
type Rule struct {
	Intent Intent
	Match  func(normalized string) bool
}

// Classification is the outcome of classifying one message.
//
// Topics holds the topic groups that matched. They are reported for
// logging but never used to pick a response.
type Classification struct {
	Query  string
	Intent Intent
	Topics []Intent
}

// HasTopic reports whether the topic group matched.
func (c Classification) HasTopic(topic Intent) bool {
	for _, t := range c.Topics {
		if t == topic {
			return true
		}
	}
	return false
}
