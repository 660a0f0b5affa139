// Package listservice implements a serverless REST API exposing CRUD
// operations over named lists of strings stored in DynamoDB, plus two
// read-only projections (head and tail slices).
//
// # Overview
//
// The service is a single Lambda handler behind API Gateway. Each request is
// routed on its resource template and HTTP method:
//
//	GET    /lists                  all lists
//	POST   /lists                  create a list with a generated identifier
//	GET    /lists/{list_id}        full list
//	PUT    /lists/{list_id}        full replacement of items
//	DELETE /lists/{list_id}        remove a list
//	GET    /lists/{list_id}/head   first n items (default 10, max 100)
//	GET    /lists/{list_id}/tail   last n items (default 10, max 100)
//
// Every record is keyed by its list identifier (partition key "list_id") and
// stores the ordered items, a derived item count, and creation/update
// timestamps. Writes are full replacements with last-write-wins semantics
// between concurrent writers.
//
// # Build Modes
//
// The runtime supports two build modes selected via the BuildMode variable
// or build flags:
//
//   - lambda: the native AWS Lambda runtime consuming API Gateway events.
//   - http: a local HTTP server that adapts plain HTTP requests into the
//     same API Gateway envelope and drives the identical handler path.
//
// # Getting Started
//
// Create a Storage with [NewStorage] (or [NewDynamoDBStorage] directly),
// wrap it in a [Service] and [Handler], and pass the handler to [Start]:
//
//	source, _ := settings.NewEnvSource(os.Environ())
//	storage, _ := listservice.NewStorage(ctx, source)
//	handler := listservice.NewHandler(listservice.NewService(storage))
//	_ = listservice.Start(ctx, source, handler)
//
// # Concurrency
//
// Requests are handled independently and statelessly. The only shared state
// is the long-lived DynamoDB client, which is safe for concurrent use.
package listservice
