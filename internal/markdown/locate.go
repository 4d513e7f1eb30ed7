package markdown

import (
	"bytes"
	"strings"
)

// span is a link destination located in the source.
type span struct {
	start, end int
	kind       LinkKind
}

// locateDestinations finds inline, image and reference-definition
// destinations by byte offset. Fenced and indented code blocks are skipped
// and inline code spans are masked.
func locateDestinations(body []byte) []span {
	var (
		out         []span
		inFence     bool
		activeFence string
		offset      int
	)
	for _, raw := range bytes.SplitAfter(body, []byte("\n")) {
		line := string(raw)
		lineStart := offset
		offset += len(raw)

		trimmed := strings.TrimSpace(line)
		if fence := fenceMarker(trimmed); fence != "" {
			switch {
			case !inFence:
				inFence, activeFence = true, fence
			case fence == activeFence:
				inFence, activeFence = false, ""
			}
			continue
		}
		if inFence || strings.HasPrefix(line, "    ") || strings.HasPrefix(line, "\t") {
			continue
		}

		masked := maskCodeSpans(line)
		for _, s := range inlineDestinations(masked) {
			out = append(out, span{start: lineStart + s.start, end: lineStart + s.end, kind: s.kind})
		}
		if s, ok := referenceDestination(masked); ok {
			out = append(out, span{start: lineStart + s.start, end: lineStart + s.end, kind: s.kind})
		}
	}
	return out
}

func fenceMarker(trimmed string) string {
	for _, f := range []string{"```", "~~~"} {
		if strings.HasPrefix(trimmed, f) {
			return f
		}
	}
	return ""
}

// maskCodeSpans blanks out `code` spans, keeping byte offsets intact.
func maskCodeSpans(s string) string {
	if !strings.Contains(s, "`") {
		return s
	}
	b := []byte(s)
	for i := 0; i < len(b); {
		if b[i] != '`' {
			i++
			continue
		}
		run := 1
		for i+run < len(b) && b[i+run] == '`' {
			run++
		}
		closeRel := strings.Index(string(b[i+run:]), strings.Repeat("`", run))
		if closeRel == -1 {
			i += run
			continue
		}
		end := i + run + closeRel + run
		for j := i; j < end; j++ {
			b[j] = ' '
		}
		i = end
	}
	return string(b)
}

// inlineDestinations finds "](dest" and "](<dest>" occurrences.
func inlineDestinations(line string) []span {
	var out []span
	for i := 0; i+1 < len(line); i++ {
		if line[i] != ']' || line[i+1] != '(' {
			continue
		}
		kind := LinkKindInline
		if open := strings.LastIndex(line[:i], "["); open > 0 && line[open-1] == '!' {
			kind = LinkKindImage
		}

		start := i + 2
		for start < len(line) && line[start] == ' ' {
			start++
		}
		if start < len(line) && line[start] == '<' {
			end := strings.IndexByte(line[start:], '>')
			if end > 1 {
				out = append(out, span{start: start + 1, end: start + end, kind: kind})
			}
			continue
		}
		end := start
		for end < len(line) && !strings.ContainsRune(" \t\r\n)", rune(line[end])) {
			end++
		}
		if end > start {
			out = append(out, span{start: start, end: end, kind: kind})
		}
	}
	return out
}

// referenceDestination finds the destination of a "[label]: dest" line.
func referenceDestination(line string) (span, bool) {
	indent := len(line) - len(strings.TrimLeft(line, " "))
	if indent > 3 || !strings.HasPrefix(line[indent:], "[") || strings.HasPrefix(line[indent:], "[^") {
		return span{}, false
	}
	colon := strings.Index(line, "]:")
	if colon < 0 {
		return span{}, false
	}
	start := colon + 2
	for start < len(line) && (line[start] == ' ' || line[start] == '\t') {
		start++
	}
	if start < len(line) && line[start] == '<' {
		end := strings.IndexByte(line[start:], '>')
		if end <= 1 {
			return span{}, false
		}
		return span{start: start + 1, end: start + end, kind: LinkKindReferenceDefinition}, true
	}
	end := start
	for end < len(line) && !strings.ContainsRune(" \t\r\n", rune(line[end])) {
		end++
	}
	if end == start {
		return span{}, false
	}
	return span{start: start, end: end, kind: LinkKindReferenceDefinition}, true
}
