// Package deeplink encodes navigation targets as shareable URIs of the form
// {scheme}://{host}{canonical path} and decodes them back.
package deeplink

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/zjrosen/spherenav/internal/log"
	"github.com/zjrosen/spherenav/internal/route"
	"github.com/zjrosen/spherenav/internal/sphere"
)

// Defaults used when no scheme or host is configured.
const (
	DefaultScheme = "spherenav"
	DefaultHost   = "app.spherenav.io"
)

// ErrInvalidScheme is returned by NewCodec for a malformed scheme.
var ErrInvalidScheme = errors.New("invalid deep-link scheme")

// Resolver is the route lookup the codec decodes through.
type Resolver interface {
	Resolve(path string) (route.RouteDescriptor, bool)
}

// Codec converts between targets and deep links.
type Codec struct {
	scheme   string
	host     string
	resolver Resolver
}

// NewCodec creates a codec. Empty scheme or host fall back to the defaults.
func NewCodec(scheme, host string, resolver Resolver) (*Codec, error) {
	scheme = strings.ToLower(strings.TrimSuffix(strings.TrimSpace(scheme), "://"))
	if scheme == "" {
		scheme = DefaultScheme
	}
	if !sphere.ValidSlug(scheme) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidScheme, scheme)
	}
	host = strings.ToLower(strings.TrimSpace(host))
	if host == "" {
		host = DefaultHost
	}
	return &Codec{scheme: scheme, host: host, resolver: resolver}, nil
}

// Scheme returns the configured scheme.
func (c *Codec) Scheme() string { return c.scheme }

// Host returns the configured host.
func (c *Codec) Host() string { return c.host }

// Encode returns the deep link for t.
func (c *Codec) Encode(t route.Target) string {
	return c.scheme + "://" + c.host + route.Generate(t)
}

// Decode parses uri and resolves its path; a bare host means the root. It
// returns false, never an error, when uri is malformed, carries userinfo,
// the scheme or host differ (a port counts as a different host), or the
// path does not resolve.
func (c *Codec) Decode(uri string) (route.Target, bool) {
	u, err := url.Parse(strings.TrimSpace(uri))
	if err != nil {
		log.Debug(log.CatLink, "malformed link", "uri", uri, "error", err)
		return route.Target{}, false
	}
	if !strings.EqualFold(u.Scheme, c.scheme) {
		log.Debug(log.CatLink, "scheme mismatch", "uri", uri, "scheme", u.Scheme)
		return route.Target{}, false
	}
	if u.Opaque != "" || u.User != nil {
		log.Debug(log.CatLink, "link has userinfo or no authority", "uri", uri)
		return route.Target{}, false
	}
	if !strings.EqualFold(u.Host, c.host) {
		log.Debug(log.CatLink, "host mismatch", "uri", uri, "host", u.Host)
		return route.Target{}, false
	}

	p := u.Path
	if p == "" {
		p = route.RootPath
	}
	desc, ok := c.resolver.Resolve(p)
	if !ok {
		log.Debug(log.CatLink, "unresolved link", "uri", uri, "path", u.Path)
		return route.Target{}, false
	}
	return desc.Target(), true
}
