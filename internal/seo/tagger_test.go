package seo

import (
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docsroute/internal/versioning"
)

func testCatalog() *versioning.Catalog {
	return versioning.New(
		versioning.Group{ID: "server", BasePath: "server", Versions: []versioning.Detail{
			{Version: "v26.1", Path: "v26.1", Preview: true},
			{Version: "v26.0", Path: "v26.0"},
			{Version: "v25.1", Path: "v25.1"},
		}},
		versioning.Group{ID: "dotnet-client", BasePath: "clients/dotnet", Versions: []versioning.Detail{
			{Version: "v1.0", Path: "v1.0"},
		}},
	)
}

func TestTagger_Tags(t *testing.T) {
	tagger := NewTagger(testCatalog(), NewCategories(nil), DefaultExclusions())

	tests := []struct {
		path string
		want Tags
	}{
		{"/server/v26.0/quick-start/", Tags{Version: "v26.0", Category: "Server", Latest: true}},
		{"/server/v26.1/quick-start/", Tags{Version: "v26.1", Category: "Server"}},
		{"/server/v25.1/config.html", Tags{Version: "v25.1", Category: "Server"}},
		{"/server/v5/intro.html", Tags{Version: "v5", Category: "Server", Excluded: true}},
		{"/clients/dotnet/v1.0/auth.html", Tags{Version: "v1.0", Category: ".NET Client", Latest: true}},
		{"/clients/dotnet/legacy/v23.3/auth.html", Tags{Version: "v23.3", Category: "Legacy gRPC .NET Client"}},
		{"/clients/tcp/dotnet/21.2/intro.html", Tags{Version: "21.2", Category: "Legacy TCP .NET Client"}},
		{"/cloud/introduction.html", Tags{Category: "Cloud"}},
		{"/dev-center/tutorials/", Tags{Category: "Dev Center"}},
		{"/foo-bar/page.html", Tags{Category: "Foo Bar"}},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			require.Equal(t, tt.want, tagger.Tags(tt.path))
		})
	}
}

func TestTagger_WithoutCatalog(t *testing.T) {
	tagger := NewTagger(nil, Categories{}, nil)
	tags := tagger.Tags("/server/v26.0/quick-start/")
	require.False(t, tags.Latest)
	require.Equal(t, "Server", tags.Category)
}

func TestTagger_HeadTags(t *testing.T) {
	tagger := NewTagger(testCatalog(), NewCategories(nil), DefaultExclusions())

	require.Equal(t, []HeadTag{
		{Name: MetaVersion, Content: "v26.0"},
		{Name: MetaCategory, Content: "Server"},
		{Name: MetaDocsearchProduct, Content: "Server"},
		{Name: MetaDocsearchVersion, Content: "v26.0,latest"},
	}, tagger.HeadTags("/server/v26.0/quick-start/"))

	require.Equal(t, []HeadTag{
		{Name: MetaRobots, Content: "noindex,nofollow"},
	}, tagger.HeadTags("/server/v24.6/quick-start/"))

	require.Equal(t, []HeadTag{
		{Name: MetaCategory, Content: "Cloud"},
		{Name: MetaDocsearchProduct, Content: "Cloud"},
	}, tagger.HeadTags("/cloud/introduction.html"))
}

func TestCategories(t *testing.T) {
	c := NewCategories(map[string]string{"dev-center": "Developer Center", "server": "KurrentDB"})

	require.Equal(t, "Developer Center", c.Label("dev-center"))
	require.Equal(t, "KurrentDB", c.Label("server"))
	require.Equal(t, "Kubernetes Operator", c.Label("server/kubernetes-operator"))
	require.Equal(t, "Foo Bar", c.Label("foo-bar"))
	require.Equal(t, "Clients Cpp", c.Label("clients/cpp"))
	require.True(t, c.Known("cloud"))
	require.False(t, c.Known("foo-bar"))
}

func TestTitleCase(t *testing.T) {
	require.Equal(t, "Foo Bar", TitleCase("foo-bar"))
	require.Equal(t, "Dev Center", TitleCase("dev-center"))
	require.Equal(t, "HTTP Api", TitleCase("HTTP-api"))
	require.Equal(t, "2fa Setup", TitleCase("2fa-setup"))
	require.Equal(t, "V5 Upgrade", TitleCase("v5-upgrade"))
	require.Equal(t, "", TitleCase(""))
}
