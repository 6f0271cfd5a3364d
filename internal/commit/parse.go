package commit

import "strings"

// Parse lexes a raw commit into structured fields.
// It never fails: a summary that does not match `type(scope)!: description`
// becomes the description, with Type and Scope left empty and Degraded set.
func Parse(raw RawCommit) ParsedFields {
	summary, body := raw.Summary, raw.Body

	// A caller may hand us a whole message as the summary.
	if strings.ContainsAny(summary, "\r\n") {
		var rest string
		summary, rest = SplitMessage(summary)
		switch {
		case rest == "":
		case body == "":
			body = rest
		default:
			body = rest + "\n\n" + body
		}
	}

	return parse(summary, body)
}

// ParseMessage parses a complete commit message. The first line is the
// header; everything after it (leading blank lines dropped) is the body.
func ParseMessage(msg string) ParsedFields {
	summary, body := SplitMessage(msg)
	return parse(summary, body)
}

// SplitMessage splits a commit message into its summary line and body.
func SplitMessage(msg string) (summary, body string) {
	msg = strings.TrimLeft(msg, "\r\n")
	i := strings.IndexByte(msg, '\n')
	if i < 0 {
		return strings.TrimSpace(msg), ""
	}
	return strings.TrimSpace(msg[:i]), strings.Trim(msg[i+1:], "\r\n")
}

func parse(summary, body string) ParsedFields {
	h := parseHeader(summary)

	fields := ParsedFields{
		Type:        h.typ,
		Scope:       h.scope,
		Description: h.description,
		Degraded:    !h.ok,
	}
	fields.Signals.Bang = h.bang

	var issueBuf [8]uint64
	issues := appendIssues(issueBuf[:0], summary)

	if strings.TrimSpace(body) != "" {
		var sc bodyScan
		issues = sc.scan(body, issues)
		fields.Body = sc.body
		fields.Footers = sc.footers
	}

	for _, f := range fields.Footers {
		switch {
		case strings.EqualFold(f.Key, breakingChangeKey):
			fields.Signals.Footer = true
		case strings.EqualFold(f.Key, breakingChangeHyphenKey):
			fields.Signals.HyphenFooter = true
		case strings.EqualFold(f.Key, coAuthorKey):
			if p, ok := parsePerson(f.Value); ok {
				fields.CoAuthors = appendUniquePerson(fields.CoAuthors, p)
			}
		}
	}

	fields.Breaking = fields.Signals.Any()
	fields.Issues = normalizeIssues(issues)
	return fields
}

// header is the lexed summary line.
type header struct {
	typ         string
	scope       string
	description string
	bang        bool
	ok          bool
}

// parseHeader matches `type[(scope)][!]: description` byte by byte.
func parseHeader(s string) header {
	s = strings.TrimSpace(s)
	degraded := header{description: s}

	pos := 0
	for pos < len(s) && isLetter(s[pos]) {
		pos++
	}
	if pos == 0 {
		return degraded
	}
	typ := s[:pos]

	var scope string
	if pos < len(s) && s[pos] == '(' {
		end := strings.IndexByte(s[pos+1:], ')')
		if end < 0 {
			return degraded
		}
		scope = strings.TrimSpace(s[pos+1 : pos+1+end])
		pos += end + 2
	}

	bang := false
	if pos < len(s) && s[pos] == '!' {
		bang = true
		pos++
	}

	if pos >= len(s) || s[pos] != ':' {
		return degraded
	}

	return header{
		typ:         strings.ToLower(typ),
		scope:       scope,
		description: strings.TrimSpace(s[pos+1:]),
		bang:        bang,
		ok:          true,
	}
}

// parsePerson parses `Name <email>`. A value without angle brackets is
// treated as a bare name.
func parsePerson(v string) (Person, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return Person{}, false
	}
	if lt := strings.LastIndexByte(v, '<'); lt >= 0 {
		if gt := strings.IndexByte(v[lt:], '>'); gt > 0 {
			return Person{
				Name:  strings.TrimSpace(v[:lt]),
				Email: strings.TrimSpace(v[lt+1 : lt+gt]),
			}, true
		}
	}
	return Person{Name: v}, true
}

func appendUniquePerson(people []Person, p Person) []Person {
	for _, existing := range people {
		if existing == p {
			return people
		}
	}
	return append(people, p)
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
