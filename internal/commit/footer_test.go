package commit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse_Footers(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		body        string
		wantBody    string
		wantFooters []Footer
	}{
		"body without footers": {
			body:     "Line one\nLine two\n\n",
			wantBody: "Line one\nLine two",
		},
		"single footer paragraph": {
			body:        "Reviewed-by: Z\nRefs #133",
			wantFooters: []Footer{{Key: "Reviewed-by", Value: "Z"}, {Key: "Refs", Value: "#133"}},
		},
		"body then footers": {
			body:        "Explain the change.\n\nSigned-off-by: A <a@x.io>",
			wantBody:    "Explain the change.",
			wantFooters: []Footer{{Key: "Signed-off-by", Value: "A <a@x.io>"}},
		},
		"continuation lines fold with newline": {
			body:     "Body text.\n\nBREAKING CHANGE: the config format\nchanged completely\n  and more\nRefs: #123",
			wantBody: "Body text.",
			wantFooters: []Footer{
				{Key: "BREAKING CHANGE", Value: "the config format\nchanged completely\nand more"},
				{Key: "Refs", Value: "#123"},
			},
		},
		"continuation of empty value": {
			body:        "Note:\nfirst line of note",
			wantFooters: []Footer{{Key: "Note", Value: "first line of note"}},
		},
		"multiple footer paragraphs": {
			body:     "Prose.\n\nAcked-by: A\n\nRefs: #1",
			wantBody: "Prose.",
			wantFooters: []Footer{
				{Key: "Acked-by", Value: "A"},
				{Key: "Refs", Value: "#1"},
			},
		},
		"footer-looking line mid body is prose": {
			body:     "Note: first paragraph\n\nJust prose here.",
			wantBody: "Note: first paragraph\n\nJust prose here.",
		},
		"paragraph starting with prose ends the block": {
			body:        "Closes: #1\n\nSome prose\nRefs: #2\n\nAcked-by: B",
			wantBody:    "Closes: #1\n\nSome prose\nRefs: #2",
			wantFooters: []Footer{{Key: "Acked-by", Value: "B"}},
		},
		"tab separator": {
			body:        "Key:\tvalue",
			wantFooters: []Footer{{Key: "Key", Value: "value"}},
		},
		"url is not a footer": {
			body:     "https://example.com/x",
			wantBody: "https://example.com/x",
		},
		"crlf body": {
			body:        "Prose.\r\n\r\nRefs: #4\r\n",
			wantBody:    "Prose.",
			wantFooters: []Footer{{Key: "Refs", Value: "#4"}},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got := Parse(RawCommit{Summary: "fix: x", Body: tt.body})
			assert.Equal(t, tt.wantBody, got.Body)
			assert.Equal(t, tt.wantFooters, got.Footers)
		})
	}
}

func TestMatchFooter(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		text      string
		wantKey   string
		wantValue string
		wantOK    bool
	}{
		"colon space":        {text: "Refs: abc", wantKey: "Refs", wantValue: "abc", wantOK: true},
		"hash form":          {text: "Fixes #42", wantKey: "Fixes", wantValue: "#42", wantOK: true},
		"hyphenated key":     {text: "Co-authored-by: A", wantKey: "Co-authored-by", wantValue: "A", wantOK: true},
		"bare colon":         {text: "Note:", wantKey: "Note", wantOK: true},
		"breaking space":     {text: "BREAKING CHANGE: x", wantKey: "BREAKING CHANGE", wantValue: "x", wantOK: true},
		"breaking hash":      {text: "BREAKING CHANGE #9", wantKey: "BREAKING CHANGE", wantValue: "#9", wantOK: true},
		"leading hyphen":     {text: "-x: y"},
		"no separator":       {text: "Refs abc"},
		"colon without gap":  {text: "Refs:abc"},
		"digit in key":       {text: "K8s: y"},
		"empty":              {text: ""},
		"space before colon": {text: "Refs : x"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			key, value, ok := matchFooter(tt.text)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantKey, key)
			assert.Equal(t, tt.wantValue, value)
		})
	}
}
