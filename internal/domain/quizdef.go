package domain

import "strings"

// QuizDefinition is an assembly spec: an ordered list of item references
// plus selection and ordering policy. Definitions are read-only inputs to
// the pipeline; resolution against the bank happens at build time.
type QuizDefinition struct {
	ID           string `yaml:"id"`
	Title        string `yaml:"title"`
	Instructions string `yaml:"instructions,omitempty"`

	ShuffleQuestions bool `yaml:"shuffle_questions,omitempty"`
	// Pick samples this many questions from the resolved pool; nil means all.
	Pick *int `yaml:"pick,omitempty"`

	// Items are reference entries: either a literal item id or a wildcard
	// pattern with a trailing '*', matched as a prefix against store ids.
	Items []string `yaml:"items"`
}

// IsWildcard reports whether a reference entry is a wildcard pattern.
func IsWildcard(entry string) bool {
	return strings.HasSuffix(entry, "*")
}

// WildcardPrefix returns the required prefix of a wildcard entry.
func WildcardPrefix(entry string) string {
	return strings.TrimSuffix(entry, "*")
}
