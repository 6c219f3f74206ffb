package lambdaproxy

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/aws/aws-lambda-go/events"

	"github.com/dmitrymomot/userkit/pkg/logger"
	"github.com/dmitrymomot/userkit/pkg/requestid"
)

// Option configures a Proxy.
type Option func(*Proxy)

// WithLogger sets the logger for conversion failures.
func WithLogger(log *slog.Logger) Option {
	return func(p *Proxy) {
		if log != nil {
			p.log = log
		}
	}
}

// WithStripPrefix removes a stage or base path prefix from incoming paths.
func WithStripPrefix(prefix string) Option {
	return func(p *Proxy) {
		p.stripPrefix = strings.TrimSuffix(prefix, "/")
	}
}

// Proxy adapts an http.Handler to the API Gateway proxy integration.
type Proxy struct {
	handler     http.Handler
	log         *slog.Logger
	stripPrefix string
}

func New(h http.Handler, opts ...Option) *Proxy {
	p := &Proxy{
		handler: h,
		log:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Handle serves a single proxy event. Conversion failures produce a 400
// response rather than an invocation error, so API Gateway returns them to
// the caller as-is.
func (p *Proxy) Handle(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	req, err := p.Request(ctx, event)
	if err != nil {
		p.log.WarnContext(ctx, "failed to convert proxy request",
			logger.Error(err),
			logger.Component("lambdaproxy"),
		)
		return events.APIGatewayProxyResponse{
			StatusCode: http.StatusBadRequest,
			Headers:    map[string]string{"Content-Type": "application/json; charset=utf-8"},
			Body:       `{"msg":"Invalid request"}`,
		}, nil
	}

	rec := httptest.NewRecorder()
	p.handler.ServeHTTP(rec, req)
	return Response(rec.Result().StatusCode, rec.Header(), rec.Body.Bytes()), nil
}

// Request builds the *http.Request for event.
func (p *Proxy) Request(ctx context.Context, event events.APIGatewayProxyRequest) (*http.Request, error) {
	if event.HTTPMethod == "" {
		return nil, fmt.Errorf("%w: missing http method", ErrInvalidRequest)
	}

	body := []byte(event.Body)
	if event.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(event.Body)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidBody, err)
		}
		body = decoded
	}

	path := event.Path
	if p.stripPrefix != "" {
		path = strings.TrimPrefix(path, p.stripPrefix)
	}
	if path == "" || path[0] != '/' {
		path = "/" + path
	}

	u := &url.URL{Path: path, RawQuery: query(event).Encode()}

	req, err := http.NewRequestWithContext(ctx, event.HTTPMethod, u.String(), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	for k, vs := range event.MultiValueHeaders {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	for k, v := range event.Headers {
		if req.Header.Get(k) == "" {
			req.Header.Set(k, v)
		}
	}

	if id := event.RequestContext.RequestID; id != "" && req.Header.Get(requestid.Header) == "" {
		req.Header.Set(requestid.Header, id)
	}
	if ip := event.RequestContext.Identity.SourceIP; ip != "" {
		req.RemoteAddr = net.JoinHostPort(ip, "0")
	}
	if host := req.Header.Get("Host"); host != "" {
		req.Host = host
	}
	req.ContentLength = int64(len(body))

	return req, nil
}

func query(event events.APIGatewayProxyRequest) url.Values {
	q := url.Values{}
	for k, vs := range event.MultiValueQueryStringParameters {
		q[k] = append(q[k], vs...)
	}
	for k, v := range event.QueryStringParameters {
		if _, ok := q[k]; !ok {
			q.Set(k, v)
		}
	}
	return q
}

// Response converts a recorded response. Bodies that are not valid UTF-8 are
// base64 encoded.
func Response(status int, header http.Header, body []byte) events.APIGatewayProxyResponse {
	resp := events.APIGatewayProxyResponse{
		StatusCode:        status,
		Headers:           make(map[string]string, len(header)),
		MultiValueHeaders: make(map[string][]string, len(header)),
	}

	for k, vs := range header {
		if len(vs) == 0 {
			continue
		}
		resp.Headers[k] = vs[len(vs)-1]
		resp.MultiValueHeaders[k] = vs
	}

	if utf8.Valid(body) {
		resp.Body = string(body)
	} else {
		resp.Body = base64.StdEncoding.EncodeToString(body)
		resp.IsBase64Encoded = true
	}

	return resp
}
