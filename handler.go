package listservice

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/aws/aws-lambda-go/events"
)

// API Gateway resource templates served by the handler.
const (
	ResourceLists = "/lists"
	ResourceList  = "/lists/{list_id}"
	ResourceHead  = "/lists/{list_id}/head"
	ResourceTail  = "/lists/{list_id}/tail"
)

// Error type names reported in the error response envelope.
const (
	errorTypeBadRequest          = "BadRequest"
	errorTypeNotFound            = "NotFound"
	errorTypeMethodNotAllowed    = "MethodNotAllowed"
	errorTypeInternalServerError = "InternalServerError"
)

const genericErrorMessage = "An unexpected error occurred"

const statRequest = "listservice.request"

type requestStarted struct {
	Message   string `logevent:"message,default=request-started"`
	RequestID string `logevent:"request_id"`
	Method    string `logevent:"method"`
	Resource  string `logevent:"resource"`
}

type requestCompleted struct {
	Message   string `logevent:"message,default=request-completed"`
	RequestID string `logevent:"request_id"`
	Status    int    `logevent:"status"`
}

type validationRejected struct {
	Message string `logevent:"message,default=validation-rejected"`
	Reason  string `logevent:"reason"`
}

type unexpectedFailure struct {
	Message string `logevent:"message,default=unexpected-failure"`
	Reason  string `logevent:"reason"`
}

type errorResponseBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type allListsResponseBody struct {
	Lists []Record `json:"lists"`
	Count int      `json:"count"`
}

// Handler routes API Gateway requests to list operations. Dispatch is a
// stateless per-request mapping of (resource template, method) pairs;
// unknown resources yield 404 and unsupported methods yield 405. Validation
// runs before any persistence call.
type Handler struct {
	// Service executes the list operations. There is no default.
	Service *Service
	// LogFn is used to extract the request logger from the request
	// context. The default value is runhttp.LoggerFromContext.
	LogFn LogFn
	// StatFn is used to extract the request stat client from the
	// request context. The default value is runhttp.StatFromContext.
	StatFn StatFn
}

// NewHandler creates a Handler for the given service with default log and
// stat extractors.
func NewHandler(service *Service) *Handler {
	return &Handler{
		Service: service,
		LogFn:   LoggerFromContext,
		StatFn:  StatFromContext,
	}
}

// Handle is the Lambda entry point. It logs request start and completion
// with the gateway request id, dispatches on resource and method, and emits
// a request counter tagged with the outcome. It never returns a non-nil
// error; every failure is rendered as an HTTP status.
func (h *Handler) Handle(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	logger := h.LogFn(ctx)

	requestID := event.RequestContext.RequestID
	if requestID == "" {
		requestID = "local"
	}
	logger.Info(requestStarted{RequestID: requestID, Method: event.HTTPMethod, Resource: event.Resource})

	response := h.route(ctx, event)

	h.StatFn(ctx).Count(statRequest, 1,
		"method:"+event.HTTPMethod,
		"resource:"+event.Resource,
		"status:"+strconv.Itoa(response.StatusCode),
	)
	logger.Info(requestCompleted{RequestID: requestID, Status: response.StatusCode})

	return response, nil
}

func (h *Handler) route(ctx context.Context, event events.APIGatewayProxyRequest) events.APIGatewayProxyResponse {
	switch event.Resource {
	case ResourceLists:
		switch event.HTTPMethod {
		case http.MethodGet:
			return h.getAllLists(ctx)
		case http.MethodPost:
			return h.postList(ctx, event)
		default:
			return methodNotAllowedResponse(event.HTTPMethod)
		}
	case ResourceList:
		listID, err := ValidateListID(event.PathParameters["list_id"])
		if err != nil {
			return h.badRequest(ctx, err)
		}
		switch event.HTTPMethod {
		case http.MethodGet:
			return h.getList(ctx, listID)
		case http.MethodPut:
			return h.putList(ctx, event, listID)
		case http.MethodDelete:
			return h.deleteList(ctx, listID)
		default:
			return methodNotAllowedResponse(event.HTTPMethod)
		}
	case ResourceHead:
		return h.getSlice(ctx, event, OperationHead)
	case ResourceTail:
		return h.getSlice(ctx, event, OperationTail)
	default:
		return errorResponse(http.StatusNotFound, errorTypeNotFound, fmt.Sprintf("Resource not found: %s", event.Resource))
	}
}

func (h *Handler) getAllLists(ctx context.Context) events.APIGatewayProxyResponse {
	records, err := h.Service.GetAllLists(ctx)
	if err != nil {
		return h.internalError(ctx, err)
	}
	return jsonResponse(http.StatusOK, allListsResponseBody{Lists: records, Count: len(records)})
}

func (h *Handler) postList(ctx context.Context, event events.APIGatewayProxyRequest) events.APIGatewayProxyResponse {
	items, err := itemsFromBody(event.Body)
	if err != nil {
		return h.badRequest(ctx, err)
	}

	record, err := h.Service.CreateList(ctx, items)
	if err != nil {
		return h.internalError(ctx, err)
	}
	return jsonResponse(http.StatusCreated, record)
}

func (h *Handler) getList(ctx context.Context, listID string) events.APIGatewayProxyResponse {
	record, err := h.Service.GetFullList(ctx, listID)
	if err != nil {
		return h.internalError(ctx, err)
	}
	if record == nil {
		return notFoundResponse(listID)
	}
	return jsonResponse(http.StatusOK, record)
}

func (h *Handler) putList(ctx context.Context, event events.APIGatewayProxyRequest, listID string) events.APIGatewayProxyResponse {
	items, err := itemsFromBody(event.Body)
	if err != nil {
		return h.badRequest(ctx, err)
	}

	record, err := h.Service.UpdateList(ctx, listID, items)
	if err != nil {
		return h.internalError(ctx, err)
	}
	if record == nil {
		return notFoundResponse(listID)
	}
	return jsonResponse(http.StatusOK, record)
}

func (h *Handler) deleteList(ctx context.Context, listID string) events.APIGatewayProxyResponse {
	deleted, err := h.Service.DeleteList(ctx, listID)
	if err != nil {
		return h.internalError(ctx, err)
	}
	if !deleted {
		return notFoundResponse(listID)
	}
	return events.APIGatewayProxyResponse{
		StatusCode: http.StatusNoContent,
		Headers:    responseHeaders(),
	}
}

func (h *Handler) getSlice(ctx context.Context, event events.APIGatewayProxyRequest, operation string) events.APIGatewayProxyResponse {
	if event.HTTPMethod != http.MethodGet {
		return methodNotAllowedResponse(event.HTTPMethod)
	}

	listID, err := ValidateListID(event.PathParameters["list_id"])
	if err != nil {
		return h.badRequest(ctx, err)
	}
	n, err := ValidateSliceSize(event.QueryStringParameters["n"])
	if err != nil {
		return h.badRequest(ctx, err)
	}

	var slice *ListSlice
	if operation == OperationHead {
		slice, err = h.Service.GetHead(ctx, listID, n)
	} else {
		slice, err = h.Service.GetTail(ctx, listID, n)
	}
	if err != nil {
		return h.internalError(ctx, err)
	}
	if slice == nil {
		return notFoundResponse(listID)
	}
	return jsonResponse(http.StatusOK, slice)
}

// itemsFromBody runs the body and items validators in order so the first
// failure is reported.
func itemsFromBody(rawBody string) ([]string, error) {
	body, err := ValidateBody(rawBody)
	if err != nil {
		return nil, err
	}
	return ValidateItems(body["items"])
}

func (h *Handler) badRequest(ctx context.Context, err error) events.APIGatewayProxyResponse {
	h.LogFn(ctx).Warn(validationRejected{Reason: err.Error()})
	return errorResponse(http.StatusBadRequest, errorTypeBadRequest, err.Error())
}

// internalError logs the backend failure and renders a generic 500 response
// that leaks no internal detail to the caller.
func (h *Handler) internalError(ctx context.Context, err error) events.APIGatewayProxyResponse {
	h.LogFn(ctx).Error(unexpectedFailure{Reason: err.Error()})
	return errorResponse(http.StatusInternalServerError, errorTypeInternalServerError, genericErrorMessage)
}

func notFoundResponse(listID string) events.APIGatewayProxyResponse {
	return errorResponse(http.StatusNotFound, errorTypeNotFound, fmt.Sprintf("List '%s' not found", listID))
}

func methodNotAllowedResponse(method string) events.APIGatewayProxyResponse {
	return errorResponse(http.StatusMethodNotAllowed, errorTypeMethodNotAllowed, fmt.Sprintf("Method %s not allowed", method))
}

func errorResponse(status int, errorType string, message string) events.APIGatewayProxyResponse {
	return jsonResponse(status, errorResponseBody{Error: errorType, Message: message})
}

func jsonResponse(status int, body interface{}) events.APIGatewayProxyResponse {
	b, err := json.Marshal(body)
	if err != nil {
		return events.APIGatewayProxyResponse{
			StatusCode: http.StatusInternalServerError,
			Headers:    responseHeaders(),
			Body:       fmt.Sprintf(`{"error":%q,"message":%q}`, errorTypeInternalServerError, genericErrorMessage),
		}
	}
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    responseHeaders(),
		Body:       string(b),
	}
}

// responseHeaders returns the JSON content type plus the permissive CORS
// headers carried on every response, success or failure.
func responseHeaders() map[string]string {
	return map[string]string{
		"Content-Type":                 "application/json",
		"Access-Control-Allow-Origin":  "*",
		"Access-Control-Allow-Headers": "Content-Type",
		"Access-Control-Allow-Methods": "GET,PUT,DELETE,OPTIONS,POST",
	}
}
