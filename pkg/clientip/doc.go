// Package clientip resolves the caller's IP address behind proxies.
//
// A Resolver believes forwarding headers only when the immediate peer
// (RemoteAddr) falls inside its trusted prefixes. From a trusted peer it
// reads CF-Connecting-IP (when enabled), then walks X-Forwarded-For right to
// left and takes the first untrusted hop, then X-Real-IP. Any other peer is
// itself the client. GetIP and Middleware use a resolver with no trusted
// proxies, which suits API Gateway where RemoteAddr is the source IP.
//
//	res, err := clientip.NewResolverFromConfig(cfg)
//	r.Use(res.Middleware)
package clientip
