// Package redirect maps incoming documentation paths to their redirect targets.
//
// Rules are evaluated in registration order and the first rule that produces
// a destination wins. A path that matches no rule has no redirect; callers
// fall through to normal content resolution.
package redirect

import (
	"regexp"

	derrors "git.home.luguber.info/inful/docsroute/internal/foundation/errors"
)

// RuleKind identifies how a rule computes its destination.
type RuleKind string

const (
	KindFixed   RuleKind = "fixed"
	KindDynamic RuleKind = "dynamic"
	KindRegexp  RuleKind = "regexp"
)

// Match is what a dynamic rule receives when its pattern matches.
type Match struct {
	Path   string
	Params Params
}

// DestinationFunc computes the destination of a dynamic rule. Returning false
// means the rule cannot serve this path (e.g. the version is unknown) and
// evaluation continues with the next rule.
type DestinationFunc func(m Match) (string, bool)

// RuleInfo describes a registered rule.
type RuleInfo struct {
	Kind        RuleKind `json:"kind"`
	Source      string   `json:"source"`
	Destination string   `json:"destination,omitempty"`
}

// Result is a resolved redirect together with the rule that produced it.
type Result struct {
	Destination string   `json:"destination"`
	Rule        RuleInfo `json:"rule"`
}

type rule struct {
	info    RuleInfo
	pattern *Pattern
	re      *regexp.Regexp
	tmpl    string
	fn      DestinationFunc
}

func (r rule) apply(path string) (string, bool) {
	switch r.info.Kind {
	case KindRegexp:
		m := r.re.FindStringSubmatchIndex(path)
		if m == nil {
			return "", false
		}
		return string(r.re.ExpandString(nil, r.tmpl, path, m)), true
	case KindFixed:
		if _, ok := r.pattern.Match(path); !ok {
			return "", false
		}
		return r.info.Destination, true
	default:
		params, ok := r.pattern.Match(path)
		if !ok {
			return "", false
		}
		return r.fn(Match{Path: path, Params: params})
	}
}

// Resolver holds an ordered list of redirect rules.
//
// Rules are registered once during startup; after that a Resolver is only
// read and may be shared between goroutines.
type Resolver struct {
	rules []rule
}

// NewResolver returns an empty resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// AddFixed registers a rule that sends every path matching source to destination.
func (r *Resolver) AddFixed(source, destination string) error {
	p, err := CompilePattern(source)
	if err != nil {
		return err
	}
	r.rules = append(r.rules, rule{
		info:    RuleInfo{Kind: KindFixed, Source: source, Destination: destination},
		pattern: p,
	})
	return nil
}

// AddDynamic registers a rule whose destination is computed from the matched parameters.
func (r *Resolver) AddDynamic(source string, fn DestinationFunc) error {
	if fn == nil {
		return derrors.RoutingError("dynamic rule without destination function").
			WithContext("template", source).
			Build()
	}
	p, err := CompilePattern(source)
	if err != nil {
		return err
	}
	r.rules = append(r.rules, rule{
		info:    RuleInfo{Kind: KindDynamic, Source: source},
		pattern: p,
		fn:      fn,
	})
	return nil
}

var positionalRef = regexp.MustCompile(`\$(\d+)`)

// AddRegexp registers a rule matching the whole path against expr. The
// template may reference capture groups as $1 or ${name}.
func (r *Resolver) AddRegexp(expr, template string) error {
	re, err := regexp.Compile("^(?:" + expr + ")$")
	if err != nil {
		return derrors.WrapError(err, derrors.CategoryRouting, "invalid redirect expression").
			WithContext("expression", expr).
			Build()
	}
	r.rules = append(r.rules, rule{
		info: RuleInfo{Kind: KindRegexp, Source: expr, Destination: template},
		re:   re,
		// "$1_v2" would otherwise be read as a group named "1_v2".
		tmpl: positionalRef.ReplaceAllString(template, "$${$1}"),
	})
	return nil
}

// Resolve returns the destination for path, or false when no rule applies.
func (r *Resolver) Resolve(path string) (string, bool) {
	res, ok := r.ResolveRule(path)
	return res.Destination, ok
}

// ResolveRule is like Resolve but also reports the rule that fired.
func (r *Resolver) ResolveRule(path string) (Result, bool) {
	for _, rl := range r.rules {
		if dest, ok := rl.apply(path); ok {
			return Result{Destination: dest, Rule: rl.info}, true
		}
	}
	return Result{}, false
}

// Rules lists the registered rules in evaluation order.
func (r *Resolver) Rules() []RuleInfo {
	out := make([]RuleInfo, len(r.rules))
	for i, rl := range r.rules {
		out[i] = rl.info
	}
	return out
}

// Len returns the number of registered rules.
func (r *Resolver) Len() int { return len(r.rules) }
