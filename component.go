package listservice

import (
	"context"
	"errors"
	"fmt"

	"github.com/asecurityteam/settings/v2"
	"github.com/aws/aws-sdk-go-v2/config"
)

// StorageConfig contains the environment driven settings for the DynamoDB
// storage adapter.
type StorageConfig struct {
	TableName string `description:"Name of the DynamoDB table storing lists."`
	Region    string `description:"AWS region of the DynamoDB table. Defaults to the ambient AWS configuration."`
	Endpoint  string `description:"Optional DynamoDB endpoint override for local development."`
}

// Name of the configuration root.
func (*StorageConfig) Name() string {
	return "storage"
}

// StorageComponent implements the settings.Component interface for the
// DynamoDB storage adapter.
type StorageComponent struct{}

// Settings generates a config populated with defaults.
func (*StorageComponent) Settings() *StorageConfig {
	return &StorageConfig{TableName: "lists"}
}

// New generates a connected DynamoDBStorage from the config.
func (*StorageComponent) New(ctx context.Context, conf *StorageConfig) (*DynamoDBStorage, error) {
	if conf.TableName == "" {
		return nil, errors.New("storage table name is required")
	}

	var loadOpts []func(*config.LoadOptions) error
	if conf.Region != "" {
		loadOpts = append(loadOpts, config.WithRegion(conf.Region))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	var opts []Option
	if conf.Endpoint != "" {
		opts = append(opts, WithEndpoint(conf.Endpoint))
	}

	storage := NewDynamoDBStorage(&awsCfg, conf.TableName, opts...)
	if err := storage.Connect(); err != nil {
		return nil, err
	}
	return storage, nil
}

// NewStorage builds a connected DynamoDBStorage from a settings source
// using the LISTSERVICE prefix.
func NewStorage(ctx context.Context, s settings.Source) (*DynamoDBStorage, error) {
	storage := new(DynamoDBStorage)
	err := settings.NewComponent(
		ctx,
		&settings.PrefixSource{Source: s, Prefix: []string{"LISTSERVICE"}},
		&StorageComponent{},
		storage,
	)
	if err != nil {
		return nil, err
	}
	return storage, nil
}
