package commit

import "strings"

const (
	breakingChangeKey       = "BREAKING CHANGE"
	breakingChangeHyphenKey = "BREAKING-CHANGE"
	coAuthorKey             = "Co-authored-by"
)

// line is one body line located by offsets into the body text.
// key and value are set when the line opens a footer.
type line struct {
	start  int
	blank  bool
	footer bool
	text   string
	key    string
	value  string
}

// bodyScan splits a commit body into its free-text part and its footers.
type bodyScan struct {
	lines   []line
	body    string
	footers []Footer
}

// scan walks the body once, classifying every line and collecting issue
// references into issues. It then locates the trailing footer block and
// folds continuation lines into their footers.
func (sc *bodyScan) scan(body string, issues []uint64) []uint64 {
	sc.lines = make([]line, 0, strings.Count(body, "\n")+1)

	for pos := 0; pos <= len(body); {
		end := strings.IndexByte(body[pos:], '\n')
		if end < 0 {
			end = len(body)
		} else {
			end += pos
		}

		text := strings.TrimRight(body[pos:end], " \t\r")
		ln := line{start: pos, text: text, blank: strings.TrimSpace(text) == ""}
		if !ln.blank {
			ln.key, ln.value, ln.footer = matchFooter(text)
			issues = appendIssues(issues, text)
		}
		sc.lines = append(sc.lines, ln)

		pos = end + 1
	}

	start := footerStart(sc.lines)
	if start < 0 {
		sc.body = strings.TrimSpace(body)
		return issues
	}

	sc.body = strings.TrimSpace(body[:sc.lines[start].start])
	sc.footers = foldFooters(sc.lines[start:])
	return issues
}

// footerStart returns the index of the first line of the footer block, or
// -1. The footer block is the trailing run of paragraphs that each begin
// with a footer line.
func footerStart(lines []line) int {
	start := -1
	for i := len(lines) - 1; i >= 0; i-- {
		if lines[i].blank {
			continue
		}
		p := i
		for p > 0 && !lines[p-1].blank {
			p--
		}
		if !lines[p].footer {
			break
		}
		start = p
		i = p
	}
	return start
}

// foldFooters runs the footer state machine over the footer block.
// A footer line opens a footer, a non-footer line continues the open one,
// and a blank line closes it.
func foldFooters(lines []line) []Footer {
	var footers []Footer
	open := false

	for _, ln := range lines {
		switch {
		case ln.blank:
			open = false
		case ln.footer:
			footers = append(footers, Footer{Key: ln.key, Value: ln.value})
			open = true
		case open:
			f := &footers[len(footers)-1]
			cont := strings.TrimSpace(ln.text)
			if f.Value == "" {
				f.Value = cont
			} else {
				f.Value = f.Value + "\n" + cont
			}
		}
	}

	return footers
}

// matchFooter reports whether text is a `Key: value` or `Key #value` line.
// Keys are letters and hyphens starting with a letter, or the literal
// BREAKING CHANGE in any case.
func matchFooter(text string) (key, value string, ok bool) {
	if len(text) >= len(breakingChangeKey) && strings.EqualFold(text[:len(breakingChangeKey)], breakingChangeKey) {
		if key, value, ok = matchSeparator(text, len(breakingChangeKey)); ok {
			return key, value, ok
		}
	}

	i := 0
	for i < len(text) && (isLetter(text[i]) || (i > 0 && text[i] == '-')) {
		i++
	}
	if i == 0 {
		return "", "", false
	}
	return matchSeparator(text, i)
}

func matchSeparator(text string, keyEnd int) (key, value string, ok bool) {
	rest := text[keyEnd:]
	switch {
	case rest == ":":
		return text[:keyEnd], "", true
	case len(rest) >= 2 && rest[0] == ':' && (rest[1] == ' ' || rest[1] == '\t'):
		return text[:keyEnd], strings.TrimSpace(rest[2:]), true
	case len(rest) >= 2 && rest[0] == ' ' && rest[1] == '#':
		return text[:keyEnd], strings.TrimSpace(rest[1:]), true
	}
	return "", "", false
}
