// Package lambdaproxy serves an http.Handler behind API Gateway.
//
// Handler converts an events.APIGatewayProxyRequest into an *http.Request,
// runs it through the wrapped handler with an in-memory recorder and returns
// the recorded status, headers and body as an events.APIGatewayProxyResponse.
// The API Gateway request id becomes the X-Request-ID header and the caller's
// source IP becomes RemoteAddr, so requestid and clientip work unchanged.
//
//	lambda.Start(lambdaproxy.New(router).Handle)
package lambdaproxy
