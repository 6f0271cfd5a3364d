package commit

import (
	"strings"
	"time"
)

// Person is a name/email pair used for commit authors and co-authors.
type Person struct {
	Name  string `json:"name" yaml:"name"`
	Email string `json:"email,omitempty" yaml:"email,omitempty"`
}

// RawCommit is a commit as read from the repository.
// Index is the position in processing order. It is assigned once by the
// producer and is the only key used to order results.
type RawCommit struct {
	ID        string    `json:"id" yaml:"id"`
	ShortID   string    `json:"short_id" yaml:"short_id"`
	Summary   string    `json:"summary" yaml:"summary"`
	Body      string    `json:"body,omitempty" yaml:"body,omitempty"`
	Author    Person    `json:"author" yaml:"author"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
	Index     int       `json:"index" yaml:"index"`
}

// Footer is a single `Key: value` trailer. Continuation lines are folded
// into Value separated by "\n".
type Footer struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

// BreakingSignals records which breaking-change forms fired.
type BreakingSignals struct {
	// Bang is set by `!` immediately before the header colon.
	Bang bool `json:"bang,omitempty" yaml:"bang,omitempty"`
	// Footer is set by a `BREAKING CHANGE` footer.
	Footer bool `json:"footer,omitempty" yaml:"footer,omitempty"`
	// HyphenFooter is set by a `BREAKING-CHANGE` footer.
	HyphenFooter bool `json:"hyphen_footer,omitempty" yaml:"hyphen_footer,omitempty"`
}

// Any reports whether at least one form fired.
func (s BreakingSignals) Any() bool {
	return s.Bang || s.Footer || s.HyphenFooter
}

// ParsedFields is the structured form of one commit message.
// Type and Scope are empty when absent.
type ParsedFields struct {
	Type        string          `json:"type,omitempty" yaml:"type,omitempty"`
	Scope       string          `json:"scope,omitempty" yaml:"scope,omitempty"`
	Description string          `json:"description" yaml:"description"`
	Body        string          `json:"body,omitempty" yaml:"body,omitempty"`
	Footers     []Footer        `json:"footers,omitempty" yaml:"footers,omitempty"`
	Breaking    bool            `json:"breaking" yaml:"breaking"`
	Signals     BreakingSignals `json:"signals" yaml:"signals"`
	Issues      []uint64        `json:"issues,omitempty" yaml:"issues,omitempty"`
	CoAuthors   []Person        `json:"co_authors,omitempty" yaml:"co_authors,omitempty"`
	// Degraded is set when the header did not match the convention.
	Degraded bool `json:"degraded,omitempty" yaml:"degraded,omitempty"`
}

// FooterValue returns the value of the first footer whose key matches
// case-insensitively.
func (f ParsedFields) FooterValue(key string) (string, bool) {
	for _, ft := range f.Footers {
		if strings.EqualFold(ft.Key, key) {
			return ft.Value, true
		}
	}
	return "", false
}

// ParsedCommit is a parsed and classified commit.
type ParsedCommit struct {
	ParsedFields `yaml:",inline"`

	Raw         RawCommit `json:"raw" yaml:"raw"`
	Index       int       `json:"index" yaml:"index"`
	Impact      Impact    `json:"impact" yaml:"impact"`
	Kept        bool      `json:"kept" yaml:"kept"`
	UnknownType bool      `json:"unknown_type,omitempty" yaml:"unknown_type,omitempty"`
	TypeTitle   string    `json:"type_title,omitempty" yaml:"type_title,omitempty"`
	TypeEmoji   string    `json:"type_emoji,omitempty" yaml:"type_emoji,omitempty"`
}
