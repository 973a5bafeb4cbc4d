package parser

import (
	"regexp"
	"strings"
)

var (
	// ----- 2025년 9월 2일 화요일 -----
	dateHeaderRegex = regexp.MustCompile(`^-{5,}\s*(\d{4}년\s*\d{1,2}월\s*\d{1,2}일\s*[^\s-]+)\s*-{5,}$`)
	// 2025. 1. 2. 오후 3:05, 민수 : 안녕
	desktopRegex = regexp.MustCompile(`^(\d{4}\.\s*\d{1,2}\.\s*\d{1,2}\.)\s*(오전|오후)\s*(\d{1,2}:\d{2}),\s*([^:]+)\s*:\s*(.*)$`)
	// [2025. 1. 2. 오후 3:05] 민수 : 안녕
	desktopBracketRegex = regexp.MustCompile(`^\[(\d{4}\.\s*\d{1,2}\.\s*\d{1,2}\.)\s*(오전|오후)\s*(\d{1,2}:\d{2})\]\s*([^:]+)\s*:\s*(.*)$`)
	// [민수] [오후 3:05] 안녕, or [민수] [15:05] 안녕
	mobileRegex = regexp.MustCompile(`^\[([^\]]+)\]\s*\[(오전|오후|\d{1,2}:\d{2})\s*(\d{1,2}:\d{2})?\]\s*(.*)$`)
)

// Rule is one recognized line format. Rules are tried in order and the
// first one whose handler accepts the line wins.
type Rule struct {
	Name    string
	Pattern *regexp.Regexp

	// guard replaces Pattern for rules that are not regex-driven
	guard  func(line string) bool
	handle func(n *normalizer, line string, groups []string) bool
}

// Match reports whether line has this rule's shape. A match does not
// guarantee the line is accepted: the handler may still reject it when
// the date is impossible or no date context exists yet.
func (r Rule) Match(line string) bool {
	if r.Pattern != nil {
		return r.Pattern.MatchString(line)
	}
	return r.guard != nil && r.guard(line)
}

func (r Rule) apply(n *normalizer, line string) bool {
	var groups []string
	if r.Pattern != nil {
		groups = r.Pattern.FindStringSubmatch(line)
		if groups == nil {
			return false
		}
	} else if !r.guard(line) {
		return false
	}
	return r.handle(n, line, groups)
}

var rules = []Rule{
	{Name: "date-header", Pattern: dateHeaderRegex, handle: handleDateHeader},
	{Name: "desktop", Pattern: desktopRegex, handle: handleDesktop},
	{Name: "desktop-bracketed", Pattern: desktopBracketRegex, handle: handleDesktop},
	{Name: "mobile", Pattern: mobileRegex, handle: handleMobile},
	{Name: "continuation", guard: isContinuation, handle: handleContinuation},
}

// Rules returns the line formats in the order they are tried.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}

func handleDateHeader(n *normalizer, _ string, g []string) bool {
	if d, ok := parseLongDate(g[1]); ok {
		n.currentDate = &d
	} else {
		n.currentDate = nil
	}
	return true
}

func handleDesktop(n *normalizer, _ string, g []string) bool {
	date, ok := parseDotDate(g[1])
	if !ok {
		return false
	}
	c, ok := to24Hour(g[3], g[2])
	if !ok {
		return false
	}
	n.emit(date, c, g[4], g[5])
	return true
}

func handleMobile(n *normalizer, _ string, g []string) bool {
	if n.currentDate == nil {
		return false
	}

	var c clock
	var ok bool
	switch period := g[2]; period {
	case periodAM, periodPM:
		hm := g[3]
		if hm == "" {
			hm = "00:00"
		}
		c, ok = to24Hour(hm, period)
	default:
		c, ok = parseClock(period)
	}
	if !ok {
		return false
	}

	n.emit(*n.currentDate, c, g[1], g[4])
	return true
}

func isContinuation(line string) bool {
	return !strings.Contains(line, ":") && !strings.Contains(line, "[")
}

func handleContinuation(n *normalizer, line string, _ []string) bool {
	if len(n.messages) == 0 {
		return false
	}
	last := &n.messages[len(n.messages)-1]
	last.Text += "\n" + line
	last.IsMediaLike = IsMediaLike(last.Text)
	return true
}
