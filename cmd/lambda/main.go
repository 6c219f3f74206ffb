package main

import (
	"context"
	"os"
	_ "time/tzdata"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/dmitrymomot/userkit/internal/app"
	"github.com/dmitrymomot/userkit/pkg/lambdaproxy"
	"github.com/dmitrymomot/userkit/pkg/logger"
)

func main() {
	// Collaborators are built once per cold start and reused by every
	// invocation of this execution environment.
	a, err := app.New(context.Background())
	if err != nil {
		logger.New().Error("failed to initialize app", logger.Error(err))
		os.Exit(1)
	}

	proxy := lambdaproxy.New(a.Handler,
		lambdaproxy.WithLogger(a.Log),
		lambdaproxy.WithStripPrefix(os.Getenv("API_BASE_PATH")),
	)
	lambda.Start(proxy.Handle)
}
