package listservice

import (
	"time"

	"github.com/google/uuid"
)

// Option is a functional option for configuring a DynamoDBStorage.
type Option func(*Options)

// Options holds the configuration for a DynamoDBStorage. Use Option
// functions (such as WithAPI or WithClock) to customise the defaults.
type Options struct {
	dynamoDBAPI API
	endpoint    string
	clock       func() time.Time
	newID       func() string
}

func newOptions() *Options {
	return &Options{
		clock: time.Now,
		newID: uuid.NewString,
	}
}

// WithAPI sets a custom API implementation. This is useful when a custom
// DynamoDB configuration is required, or for injecting mocks in tests.
func WithAPI(api API) Option {
	return func(o *Options) {
		o.dynamoDBAPI = api
	}
}

// WithEndpoint overrides the DynamoDB endpoint. This is useful for pointing
// the client at a local DynamoDB instance.
func WithEndpoint(endpoint string) Option {
	return func(o *Options) {
		o.endpoint = endpoint
	}
}

// WithClock sets a custom clock function used when computing record
// timestamps. Defaults to time.Now. This is useful for controlling time in
// tests.
func WithClock(clock func() time.Time) Option {
	return func(o *Options) {
		o.clock = clock
	}
}

// WithIDGenerator sets a custom generator for created list identifiers.
// Defaults to random UUIDs. This is useful for fixing identifiers in tests.
func WithIDGenerator(newID func() string) Option {
	return func(o *Options) {
		o.newID = newID
	}
}
