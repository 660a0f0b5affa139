package listservice

import (
	"context"

	"github.com/asecurityteam/logevent/v2"
	"github.com/aws/aws-lambda-go/events"
	"github.com/rs/xstats"
)

// APIGatewayHandlerFunc is the signature of the Lambda entry point consumed
// by the aws-lambda-go runtime.
type APIGatewayHandlerFunc func(context.Context, events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error)

// withLogger wraps the handler in a decorator that injects a logger into the
// invocation context. Each invocation receives a copy so request-scoped
// fields do not leak between invocations.
func withLogger(logger Logger, next APIGatewayHandlerFunc) APIGatewayHandlerFunc {
	return func(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		ctx = logevent.NewContext(ctx, logger.Copy())
		return next(ctx, event)
	}
}

// withStat wraps the handler in a decorator that injects a stat client into
// the invocation context.
func withStat(stat Stat, next APIGatewayHandlerFunc) APIGatewayHandlerFunc {
	return func(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		ctx = xstats.NewContext(ctx, stat)
		return next(ctx, event)
	}
}
