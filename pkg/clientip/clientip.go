package clientip

import (
	"fmt"
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// Config lists the proxies whose forwarding headers are believed.
type Config struct {
	TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:","`
	// TrustCloudflare honours CF-Connecting-IP from a trusted peer.
	TrustCloudflare bool `env:"TRUST_CLOUDFLARE"`
}

// Resolver picks the client address out of a request. Forwarding headers
// are read only when the immediate peer is a trusted proxy; otherwise the
// peer itself is the client.
type Resolver struct {
	trusted    []netip.Prefix
	cloudflare bool
}

type Option func(*Resolver)

// WithTrustedProxies trusts peers inside the given prefixes.
func WithTrustedProxies(prefixes ...netip.Prefix) Option {
	return func(r *Resolver) {
		r.trusted = append(r.trusted, prefixes...)
	}
}

// WithCloudflare reads CF-Connecting-IP when the peer is trusted.
func WithCloudflare() Option {
	return func(r *Resolver) {
		r.cloudflare = true
	}
}

func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NewResolverFromConfig parses cfg.TrustedProxies as CIDRs or single
// addresses.
func NewResolverFromConfig(cfg Config) (*Resolver, error) {
	prefixes, err := ParsePrefixes(cfg.TrustedProxies)
	if err != nil {
		return nil, err
	}
	opts := []Option{WithTrustedProxies(prefixes...)}
	if cfg.TrustCloudflare {
		opts = append(opts, WithCloudflare())
	}
	return NewResolver(opts...), nil
}

// ParsePrefixes accepts "10.0.0.0/8" style prefixes and bare addresses.
func ParsePrefixes(values []string) ([]netip.Prefix, error) {
	prefixes := make([]netip.Prefix, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if strings.Contains(v, "/") {
			p, err := netip.ParsePrefix(v)
			if err != nil {
				return nil, fmt.Errorf("%w: %q", ErrInvalidProxy, v)
			}
			prefixes = append(prefixes, p.Masked())
			continue
		}
		addr, err := netip.ParseAddr(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidProxy, v)
		}
		addr = addr.Unmap()
		prefixes = append(prefixes, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return prefixes, nil
}

var defaultResolver = NewResolver()

// GetIP returns the peer address of r, ignoring forwarding headers.
func GetIP(r *http.Request) string {
	return defaultResolver.GetIP(r)
}

// GetIP returns the normalized client IP, or "" if none is usable.
//
// Behind trusted proxies X-Forwarded-For is walked right to left and the
// first hop outside the trusted set wins, so a client-supplied prefix of the
// header is never used.
func (res *Resolver) GetIP(r *http.Request) string {
	peer, ok := peerAddr(r.RemoteAddr)
	if !ok {
		return ""
	}
	if !res.isTrusted(peer) {
		return peer.String()
	}

	if res.cloudflare {
		if addr, ok := parseAddr(r.Header.Get("CF-Connecting-IP")); ok {
			return addr.String()
		}
	}

	if hops := r.Header.Values("X-Forwarded-For"); len(hops) > 0 {
		entries := strings.Split(strings.Join(hops, ","), ",")
		for i := len(entries) - 1; i >= 0; i-- {
			addr, ok := parseAddr(entries[i])
			if !ok {
				// A malformed hop ends the trusted chain.
				break
			}
			if !res.isTrusted(addr) {
				return addr.String()
			}
		}
	}

	if addr, ok := parseAddr(r.Header.Get("X-Real-IP")); ok {
		return addr.String()
	}
	return peer.String()
}

func (res *Resolver) isTrusted(addr netip.Addr) bool {
	for _, p := range res.trusted {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}

func peerAddr(remote string) (netip.Addr, bool) {
	host, _, err := net.SplitHostPort(remote)
	if err != nil {
		host = remote
	}
	return parseAddr(host)
}

func parseAddr(s string) (netip.Addr, bool) {
	addr, err := netip.ParseAddr(strings.TrimSpace(s))
	if err != nil {
		return netip.Addr{}, false
	}
	return addr.Unmap(), true
}
