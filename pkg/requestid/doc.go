// Package requestid attaches a correlation id to every request.
//
// Middleware reuses a well-formed X-Request-ID header from the client (or from
// the Lambda proxy adapter, which fills it with the API Gateway request id),
// otherwise it generates a UUIDv4. The id is stored in the request context,
// echoed in the response header and picked up by the logger through
// LoggerExtractor.
package requestid
