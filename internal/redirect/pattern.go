package redirect

import (
	"regexp"
	"strings"

	derrors "git.home.luguber.info/inful/docsroute/internal/foundation/errors"
)

// Params holds the named parameters captured by a Pattern.
type Params map[string]string

// Pattern is a compiled route template.
//
// Templates are "/"-separated. A segment is either a literal or a named
// parameter:
//
//	:lang                 one segment
//	:lang(dotnet|java)    one segment restricted to a regular expression
//	:rest(.*)*            zero or more trailing segments
//	:rest(.*)+            one or more trailing segments
//	:page?                an optional segment
//
// A trailing slash on the matched path is optional.
type Pattern struct {
	source string
	re     *regexp.Regexp
	names  []string
}

var paramName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*`)

// CompilePattern parses a route template.
func CompilePattern(template string) (*Pattern, error) {
	if !strings.HasPrefix(template, "/") {
		return nil, patternError("route template must start with /", template)
	}

	var expr strings.Builder
	expr.WriteString("^")
	var names []string

	for _, seg := range strings.Split(strings.Trim(template, "/"), "/") {
		if seg == "" {
			continue
		}
		if !strings.HasPrefix(seg, ":") {
			expr.WriteString("/" + regexp.QuoteMeta(seg))
			continue
		}

		name := paramName.FindString(seg[1:])
		if name == "" {
			return nil, patternError("route parameter without a name", template)
		}
		rest := seg[1+len(name):]

		inner := "[^/]+"
		if strings.HasPrefix(rest, "(") {
			end := strings.LastIndex(rest, ")")
			if end < 0 {
				return nil, patternError("unbalanced parenthesis in route parameter", template)
			}
			inner = rest[1:end]
			rest = rest[end+1:]
		}

		switch rest {
		case "":
			expr.WriteString("/(" + inner + ")")
		case "?":
			expr.WriteString("(?:/(" + inner + "))?")
		case "*":
			expr.WriteString("(?:/(" + inner + "))?")
		case "+":
			expr.WriteString("/(" + inner + ")")
		default:
			return nil, patternError("unsupported route parameter modifier "+rest, template)
		}
		if (rest == "" || rest == "?") && (inner == ".*" || inner == ".+") {
			return nil, patternError("wildcard parameter requires * or + modifier", template)
		}
		names = append(names, name)
	}
	expr.WriteString("/?$")

	re, err := regexp.Compile(expr.String())
	if err != nil {
		return nil, derrors.WrapError(err, derrors.CategoryRouting, "invalid route template").
			WithContext("template", template).
			Build()
	}
	if re.NumSubexp() != len(names) {
		return nil, patternError("capture groups are not allowed inside route parameters", template)
	}
	return &Pattern{source: template, re: re, names: names}, nil
}

// MustCompilePattern is like CompilePattern but panics on error.
func MustCompilePattern(template string) *Pattern {
	p, err := CompilePattern(template)
	if err != nil {
		panic(err)
	}
	return p
}

// String returns the template the pattern was compiled from.
func (p *Pattern) String() string { return p.source }

// Match reports whether path matches and returns the captured parameters.
// Optional parameters that did not participate in the match are empty.
func (p *Pattern) Match(path string) (Params, bool) {
	m := p.re.FindStringSubmatch(path)
	if m == nil {
		return nil, false
	}
	params := make(Params, len(p.names))
	for i, name := range p.names {
		params[name] = strings.TrimSuffix(m[i+1], "/")
	}
	return params, true
}

func patternError(msg, template string) error {
	return derrors.RoutingError(msg).WithContext("template", template).Build()
}
