package listservice

import (
	"fmt"
	"io"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// RouterConfig is used to alter the behavior of the default router
// and the HTTP endpoint handlers that it manages.
type RouterConfig struct {
	// HealthCheck defines the route on which the service will respond
	// with automatic 200s. This is here to integrate with systems that
	// poll for liveliness. The default value is /healthcheck
	HealthCheck string

	// Handler is the Lambda handler that will serve every route. There
	// is no default for this value.
	Handler *Handler

	// URLParamFn is used to extract URL parameters from the request.
	// The default value is chi.URLParamFromCtx to match the usage of chi
	// as a mux in the default case.
	URLParamFn URLParamFn
}

func applyDefaults(conf *RouterConfig) *RouterConfig {
	if conf.HealthCheck == "" {
		conf.HealthCheck = "/healthcheck"
	}
	if conf.URLParamFn == nil {
		conf.URLParamFn = chi.URLParamFromCtx
	}
	return conf
}

// NewRouter generates a mux with the list API routes bound. Each route
// adapts the plain HTTP request into the API Gateway envelope and delegates
// to the Lambda handler so both build modes share one code path. This
// version returns a mux from the chi project as a convenience for cases
// where custom middleware or additional routes need to be configured.
func NewRouter(conf *RouterConfig) *chi.Mux {
	conf = applyDefaults(conf)
	router := chi.NewMux()
	router.Use(middleware.Heartbeat(conf.HealthCheck))

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeGatewayResponse(w, errorResponse(http.StatusNotFound, errorTypeNotFound, fmt.Sprintf("Resource not found: %s", r.URL.Path)))
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeGatewayResponse(w, methodNotAllowedResponse(r.Method))
	})

	routes := []struct {
		method   string
		pattern  string
		resource string
	}{
		{http.MethodGet, "/lists", ResourceLists},
		{http.MethodPost, "/lists", ResourceLists},
		{http.MethodGet, "/lists/{list_id}", ResourceList},
		{http.MethodPut, "/lists/{list_id}", ResourceList},
		{http.MethodDelete, "/lists/{list_id}", ResourceList},
		{http.MethodGet, "/lists/{list_id}/head", ResourceHead},
		{http.MethodGet, "/lists/{list_id}/tail", ResourceTail},
	}
	for _, route := range routes {
		router.Method(route.method, route.pattern, &gatewayResource{
			resource:   route.resource,
			handler:    conf.Handler,
			urlParamFn: conf.URLParamFn,
		})
	}

	return router
}

// gatewayResource serves one resource template by converting the incoming
// request into an events.APIGatewayProxyRequest and invoking the Lambda
// handler.
type gatewayResource struct {
	resource   string
	handler    *Handler
	urlParamFn URLParamFn
}

func (g *gatewayResource) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	event := events.APIGatewayProxyRequest{
		Resource:   g.resource,
		Path:       r.URL.Path,
		HTTPMethod: r.Method,
	}

	if listID := g.urlParamFn(r.Context(), "list_id"); listID != "" {
		event.PathParameters = map[string]string{"list_id": listID}
	}

	if query := r.URL.Query(); len(query) > 0 {
		event.QueryStringParameters = make(map[string]string, len(query))
		for name := range query {
			event.QueryStringParameters[name] = query.Get(name)
		}
	}

	if r.Body != nil {
		b, err := io.ReadAll(r.Body)
		if err != nil {
			writeGatewayResponse(w, errorResponse(http.StatusBadRequest, errorTypeBadRequest, "Unable to read request body"))
			return
		}
		event.Body = string(b)
	}

	response, err := g.handler.Handle(r.Context(), event)
	if err != nil {
		writeGatewayResponse(w, errorResponse(http.StatusInternalServerError, errorTypeInternalServerError, genericErrorMessage))
		return
	}
	writeGatewayResponse(w, response)
}

func writeGatewayResponse(w http.ResponseWriter, response events.APIGatewayProxyResponse) {
	for name, value := range response.Headers {
		w.Header().Set(name, value)
	}
	w.WriteHeader(response.StatusCode)
	if response.Body != "" && response.StatusCode != http.StatusNoContent {
		_, _ = io.WriteString(w, response.Body)
	}
}
