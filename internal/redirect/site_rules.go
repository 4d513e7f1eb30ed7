package redirect

import (
	"regexp"
	"strings"

	"git.home.luguber.info/inful/docsroute/internal/versioning"
)

// DefaultClientLanguages is the allow-list of client documentation languages.
var DefaultClientLanguages = []string{"dotnet", "golang", "java", "node", "python", "rust"}

// SiteOptions configures the documentation site's redirect rule set.
type SiteOptions struct {
	// Primary is the group whose latest release backs /latest and /server/latest.
	Primary string
	// Operator is the Kubernetes operator group; its rules fall through when absent.
	Operator string
	// ClientLanguages is the explicit allow-list for /clients/:lang routes.
	ClientLanguages []string
	// ClientGroupSuffix maps a language to its group: "dotnet" + "-client".
	ClientGroupSuffix string
	// ServerStartPage is used for /server/:version when the version is unknown.
	ServerStartPage string
}

func (o SiteOptions) withDefaults() SiteOptions {
	if o.Primary == "" {
		o.Primary = "server"
	}
	if o.Operator == "" {
		o.Operator = "kubernetes-operator"
	}
	if len(o.ClientLanguages) == 0 {
		o.ClientLanguages = DefaultClientLanguages
	}
	if o.ClientGroupSuffix == "" {
		o.ClientGroupSuffix = "-client"
	}
	if o.ServerStartPage == "" {
		o.ServerStartPage = "quick-start/"
	}
	return o
}

// RegisterSiteRules adds the documentation site's navigation rules to r.
//
// The primary group must have a released version: every /latest rule depends
// on it, so a missing one is returned as an error for the caller to treat as
// fatal. Other groups are looked up per request and simply do not match when
// absent.
func RegisterSiteRules(r *Resolver, cat *versioning.Catalog, opts SiteOptions) error {
	opts = opts.withDefaults()

	latest, err := cat.LatestRelease(opts.Primary)
	if err != nil {
		return err
	}
	primary, _ := cat.Group(opts.Primary)
	latestStart := "/" + latest + "/" + strings.TrimPrefix(opts.ServerStartPage, "/")

	langs := make([]string, len(opts.ClientLanguages))
	for i, l := range opts.ClientLanguages {
		langs[i] = regexp.QuoteMeta(l)
	}
	clients := "/clients/:lang(" + strings.Join(langs, "|") + ")"
	operatorBase := "/" + primary.BasePath + "/" + opts.Operator

	clientGroup := func(m Match) string { return m.Params["lang"] + opts.ClientGroupSuffix }
	clientBase := func(m Match) string { return "clients/" + m.Params["lang"] }

	operatorLatest := func() (string, bool) {
		v, err := cat.Latest(opts.Operator)
		if err != nil {
			return "", false
		}
		return v.Path, true
	}

	steps := []func() error{
		func() error { return r.AddFixed("/"+primary.BasePath+"/http-api/", "/"+latest+"/http-api/introduction") },
		func() error { return r.AddFixed("/cloud/", "/cloud/introduction.html") },

		// Kubernetes operator
		func() error {
			return r.AddDynamic(operatorBase, func(Match) (string, bool) {
				v, ok := operatorLatest()
				if !ok {
					return "", false
				}
				return operatorBase + "/" + v + "/getting-started/", true
			})
		},
		func() error {
			return r.AddDynamic(operatorBase+"/latest/:pathMatch(.*)*", func(m Match) (string, bool) {
				v, ok := operatorLatest()
				if !ok {
					return "", false
				}
				return operatorBase + "/" + v + strings.TrimPrefix(m.Path, operatorBase+"/latest"), true
			})
		},
		func() error {
			return r.AddDynamic(operatorBase+"/:version", func(m Match) (string, bool) {
				return operatorBase + "/" + m.Params["version"] + "/getting-started/", true
			})
		},

		// Clients
		func() error { return r.AddFixed("/clients/grpc/:pathMatch(.*)*", "/clients/") },
		func() error {
			return r.AddDynamic(clients+"/latest", func(m Match) (string, bool) {
				v, err := cat.Latest(clientGroup(m))
				if err != nil {
					return "", false
				}
				return versioning.StartURL(clientBase(m), v), true
			})
		},
		func() error {
			return r.AddDynamic(clients+"/latest/:pathMatch(.*)*", func(m Match) (string, bool) {
				v, err := cat.Latest(clientGroup(m))
				if err != nil {
					return "", false
				}
				return "/" + clientBase(m) + "/" + v.Path + strings.TrimPrefix(m.Path, "/"+clientBase(m)+"/latest"), true
			})
		},
		func() error {
			return r.AddDynamic(clients+"/legacy/:version", func(m Match) (string, bool) {
				v, ok := cat.VersionByPath(clientGroup(m), "legacy/"+m.Params["version"])
				if !ok {
					return "", false
				}
				return versioning.StartURL(clientBase(m), v), true
			})
		},
		func() error {
			return r.AddDynamic(clients+"/legacy", func(m Match) (string, bool) {
				v, ok := cat.FirstLegacy(clientGroup(m))
				if !ok {
					return "", false
				}
				return versioning.StartURL(clientBase(m), v), true
			})
		},
		func() error {
			return r.AddDynamic(clients+"/:version", func(m Match) (string, bool) {
				v, ok := cat.VersionByPath(clientGroup(m), m.Params["version"])
				if !ok {
					return "", false
				}
				return versioning.StartURL(clientBase(m), v), true
			})
		},
		func() error {
			return r.AddDynamic(clients, func(m Match) (string, bool) {
				v, err := cat.Latest(clientGroup(m))
				if err != nil {
					return "", false
				}
				return versioning.StartURL(clientBase(m), v), true
			})
		},

		// Primary documentation line
		func() error { return r.AddFixed("/"+primary.BasePath+"/latest", latestStart) },
		func() error {
			return r.AddDynamic("/"+primary.BasePath+"/:version", func(m Match) (string, bool) {
				if v, ok := cat.VersionByPath(opts.Primary, m.Params["version"]); ok && v.StartPage != "" {
					return versioning.StartURL(primary.BasePath, v), true
				}
				return "/" + primary.BasePath + "/" + m.Params["version"] + "/" + opts.ServerStartPage, true
			})
		},
		func() error { return r.AddFixed("/latest", latestStart) },
		func() error { return r.AddFixed("/latest.html", latestStart) },
		func() error {
			return r.AddDynamic("/latest/:pathMatch(.*)+", func(m Match) (string, bool) {
				return "/" + latest + strings.TrimPrefix(m.Path, "/latest"), true
			})
		},
	}

	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

// Move is a content relocation expressed as a regular expression over the
// whole path and a $N destination template.
type Move struct {
	From string `yaml:"from" json:"from"`
	To   string `yaml:"to" json:"to"`
}

// DefaultMoves are the tutorial relocations into the developer center.
var DefaultMoves = []Move{
	{From: `/tutorials/(.*)`, To: "/dev-center/tutorials/$1"},
	{From: `/getting-started/use-cases/(.*)/tutorial-(\d+)\.(md|html)`, To: "/dev-center/use-cases/$1/tutorial/tutorial-$2.$3"},
	{From: `/getting-started/use-cases/(.*)`, To: "/dev-center/use-cases/$1"},
}

// RegisterMoves adds regexp rules for moves, in order.
func RegisterMoves(r *Resolver, moves []Move) error {
	for _, m := range moves {
		if err := r.AddRegexp(m.From, m.To); err != nil {
			return err
		}
	}
	return nil
}
