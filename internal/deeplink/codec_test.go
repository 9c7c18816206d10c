package deeplink

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/zjrosen/spherenav/internal/route"
	"github.com/zjrosen/spherenav/internal/sphere"
)

func newCodec(t *testing.T) (*Codec, *route.Table) {
	t.Helper()
	reg, err := sphere.Builtin(nil)
	require.NoError(t, err)
	table := route.NewTable(reg)
	c, err := NewCodec("app", "app.example.io", route.NewResolver(table, reg))
	require.NoError(t, err)
	return c, table
}

func TestEncode(t *testing.T) {
	c, _ := newCodec(t)

	require.Equal(t, "app://app.example.io/domain/business/tasks", c.Encode(route.SectionTarget(sphere.Business, sphere.Tasks)))
	require.Equal(t, "app://app.example.io/", c.Encode(route.Universe()))
	require.Equal(t, "app://app.example.io/overlay", c.Encode(route.Overlay()))
}

func TestDecode(t *testing.T) {
	c, _ := newCodec(t)

	tests := []struct {
		name string
		uri  string
		want route.Target
		ok   bool
	}{
		{"section", "app://app.example.io/domain/business/tasks", route.SectionTarget(sphere.Business, sphere.Tasks), true},
		{"domain", "app://app.example.io/domain/home", route.DomainTarget(sphere.Home), true},
		{"bare host", "app://app.example.io", route.Universe(), true},
		{"case insensitive scheme and host", "APP://App.Example.IO/map", route.Map(), true},
		{"query ignored", "app://app.example.io/domain/home/notes?ref=share", route.SectionTarget(sphere.Home, sphere.Notes), true},
		{"not a uri", "not-a-uri", route.Target{}, false},
		{"wrong scheme", "wrongscheme://host/domain/business", route.Target{}, false},
		{"bare host with query", "app://app.example.io?ref=share", route.Universe(), true},
		{"wrong host", "app://evil.example.io/domain/business", route.Target{}, false},
		{"userinfo", "app://evil@app.example.io/domain/business", route.Target{}, false},
		{"user and password", "app://u:p@app.example.io/domain/business", route.Target{}, false},
		{"port", "app://app.example.io:8080/domain/business", route.Target{}, false},
		{"opaque", "app:app.example.io/domain/business", route.Target{}, false},
		{"unknown domain", "app://app.example.io/domain/atlantis", route.Target{}, false},
		{"bad escape", "app://app.example.io/%zz", route.Target{}, false},
		{"empty", "", route.Target{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := c.Decode(tt.uri)
			require.Equal(t, tt.ok, ok)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestNewCodec_Defaults(t *testing.T) {
	c, err := NewCodec("", "", nil)
	require.NoError(t, err)
	require.Equal(t, DefaultScheme, c.Scheme())
	require.Equal(t, DefaultHost, c.Host())

	c, err = NewCodec("Spheres://", "", nil)
	require.NoError(t, err)
	require.Equal(t, "spheres", c.Scheme())

	_, err = NewCodec("9bad", "", nil)
	require.ErrorIs(t, err, ErrInvalidScheme)
}

func TestProperty_EncodeDecodeRoundTrip(t *testing.T) {
	c, table := newCodec(t)
	routes := table.Routes()

	rapid.Check(t, func(t *rapid.T) {
		desc := rapid.SampledFrom(routes).Draw(t, "route")
		got, ok := c.Decode(c.Encode(desc.Target()))
		require.True(t, ok)
		require.Equal(t, desc.Target(), got)
	})
}

func TestProperty_DecodeNeverPanics(t *testing.T) {
	c, _ := newCodec(t)

	rapid.Check(t, func(t *rapid.T) {
		uri := rapid.String().Draw(t, "uri")
		require.NotPanics(t, func() { c.Decode(uri) })
	})
}
