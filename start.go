package listservice

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/asecurityteam/logevent/v2"
	"github.com/asecurityteam/runhttp"
	"github.com/asecurityteam/settings/v2"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/rs/xstats"
)

const (
	// BuildModeLambda runs the official lambda server using the lambda
	// SDK. This is the mode used in production deployments.
	BuildModeLambda = "lambda"
	// BuildModeHTTP runs a standard HTTP server exposing the same REST
	// surface, for local development and testing.
	BuildModeHTTP = "http"
)

// BuildMode determines the behavior of the Start method. There
// are several ways to use this value. The suggested way is through
// build variables by adding `-ldflags "-X github.com/hpkhanhloc/list-service.BuildMode=<value>"`
// to `go build` or `go run` commands. If you want to use environment variables
// instead then you can set this variable in code before calling Start
// like `listservice.BuildMode=os.Getenv("MYENVVAR")`.
//
// Alternatively, the StartMode() method may be used if you prefer to pass in
// parameters via code rather than toggling the global setting.
var BuildMode = BuildModeLambda

// Start runs the service in the mode selected by BuildMode.
func Start(ctx context.Context, s settings.Source, h *Handler) error {
	return StartMode(ctx, s, h, BuildMode)
}

// StartMode works just like Start but allows for explicit passing of the
// build mode.
func StartMode(ctx context.Context, s settings.Source, h *Handler, mode string) error {
	switch {
	case strings.EqualFold(mode, BuildModeLambda):
		return StartLambda(ctx, h)
	case strings.EqualFold(mode, BuildModeHTTP):
		return StartHTTP(ctx, s, h)
	default:
		return fmt.Errorf("unknown build mode %s", mode)
	}
}

func newHTTPRuntime(ctx context.Context, s settings.Source, h *Handler) (*runhttp.Runtime, error) {
	conf := &RouterConfig{
		Handler: h,
	}
	router := NewRouter(conf)
	rtC := &runhttp.Component{Handler: router}
	rt := new(runhttp.Runtime)
	err := settings.NewComponent(
		ctx,
		&settings.PrefixSource{Source: s, Prefix: []string{"LISTSERVICE"}},
		rtC,
		rt,
	)
	return rt, err
}

// StartHTTP runs the HTTP API.
func StartHTTP(ctx context.Context, s settings.Source, h *Handler) error {
	rt, err := newHTTPRuntime(ctx, s, h)
	if err != nil {
		return err
	}
	return rt.Run()
}

// StartLambda runs the official lambda server. The handler is wrapped in
// decorators that inject a logger and stat client into each invocation
// context before it reaches the routing code.
func StartLambda(ctx context.Context, h *Handler) error {
	logger := logevent.New(logevent.Config{Output: os.Stdout})
	handle := withStat(xstats.FromContext(ctx), withLogger(logger, h.Handle))
	lambda.StartWithOptions(handle, lambda.WithContext(ctx))
	return nil
}

// Help generates the example environment configuration for the service.
func Help() (string, error) {
	rtGroup, err := settings.GroupFromComponent(&runhttp.Component{})
	if err != nil {
		return "", err
	}
	storageGroup, err := settings.GroupFromComponent(&StorageComponent{})
	if err != nil {
		return "", err
	}
	return settings.ExampleEnvGroups([]settings.Group{&settings.SettingGroup{
		NameValue:   "LISTSERVICE",
		GroupValues: []settings.Group{rtGroup, storageGroup},
	}}), nil
}
