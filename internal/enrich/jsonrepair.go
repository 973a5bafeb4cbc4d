package enrich

import (
	"regexp"
	"strings"

	"github.com/tidwall/gjson"
)

var fenceRegex = regexp.MustCompile("(?s)```(?:json|JSON)?\\s*\\n?(.*?)(?:```|$)")

// ExtractJSON pulls the outermost JSON object out of model output. It
// tolerates a surrounding code fence, trailing commas and output cut off
// mid-object, in which case the longest prefix that can be closed into
// valid JSON is used.
func ExtractJSON(text string) (string, bool) {
	s := strings.TrimSpace(text)
	if m := fenceRegex.FindStringSubmatch(s); m != nil && strings.Contains(m[1], "{") {
		s = m[1]
	}

	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}
	s = s[start:]

	sc := scan(s)
	if sc.end >= 0 {
		candidate := removeTrailingCommas(s[:sc.end+1])
		if gjson.Valid(candidate) {
			return candidate, true
		}
		return "", false
	}

	// truncated: close what is open at the end, then at each earlier comma
	if candidate, ok := closeAt(s, len(s), sc.stack, sc.inString); ok {
		return candidate, true
	}
	for i := len(sc.commas) - 1; i >= 0; i-- {
		c := sc.commas[i]
		if candidate, ok := closeAt(s, c.pos, c.stack, false); ok {
			return candidate, true
		}
	}
	return "", false
}

type commaPoint struct {
	pos   int
	stack string
}

type scanResult struct {
	end      int // index of the closing brace, -1 if never closed
	stack    string
	inString bool
	commas   []commaPoint
}

// scan walks s from its opening brace, tracking nesting outside strings.
func scan(s string) scanResult {
	var (
		stack    []byte
		inString bool
		escaped  bool
		commas   []commaPoint
	)
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '{':
			stack = append(stack, '}')
		case '[':
			stack = append(stack, ']')
		case '}', ']':
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
			if len(stack) == 0 {
				return scanResult{end: i}
			}
		case ',':
			commas = append(commas, commaPoint{pos: i, stack: string(stack)})
		}
	}
	return scanResult{end: -1, stack: string(stack), inString: inString, commas: commas}
}

func closeAt(s string, pos int, stack string, inString bool) (string, bool) {
	prefix := s[:pos]
	if inString {
		prefix += `"`
	}
	prefix = strings.TrimRight(prefix, " \t\r\n,")
	if strings.HasSuffix(prefix, ":") {
		prefix += "null"
	}

	var b strings.Builder
	b.WriteString(prefix)
	for i := len(stack) - 1; i >= 0; i-- {
		b.WriteByte(stack[i])
	}
	candidate := removeTrailingCommas(b.String())
	return candidate, gjson.Valid(candidate)
}

// removeTrailingCommas drops commas that directly precede a closing
// bracket, leaving string contents alone.
func removeTrailingCommas(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inString, escaped := false, false

	for i := 0; i < len(s); i++ {
		ch := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			b.WriteByte(ch)
			continue
		}
		if ch == '"' {
			inString = true
		}
		if ch == ',' {
			j := i + 1
			for j < len(s) && strings.IndexByte(" \t\r\n", s[j]) >= 0 {
				j++
			}
			if j < len(s) && (s[j] == '}' || s[j] == ']') {
				continue
			}
		}
		b.WriteByte(ch)
	}
	return b.String()
}
