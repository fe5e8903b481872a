package database

import (
	"context"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"golang.org/x/sync/singleflight"

	"amat_hosting/internal/config"
)

// DynamoDBProvider lazily builds one process-wide DynamoDB client. Concurrent
// first callers share a single initialisation; a failed attempt is retried on
// the next call.
type DynamoDBProvider struct {
	cfg config.Store

	mu     sync.RWMutex
	client *dynamodb.Client
	group  singleflight.Group
}

func NewDynamoDBProvider(cfg config.Store) *DynamoDBProvider {
	return &DynamoDBProvider{cfg: cfg}
}

// Client returns the shared client, creating it on first use.
func (p *DynamoDBProvider) Client(ctx context.Context) (*dynamodb.Client, error) {
	p.mu.RLock()
	c := p.client
	p.mu.RUnlock()
	if c != nil {
		return c, nil
	}

	v, err, _ := p.group.Do("dynamodb", func() (any, error) {
		p.mu.RLock()
		existing := p.client
		p.mu.RUnlock()
		if existing != nil {
			return existing, nil
		}

		awsCfg, err := NewDynamoDBConfig(ctx, p.cfg)
		if err != nil {
			return nil, err
		}
		client := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
			if p.cfg.DynamoDBEndpoint != "" {
				o.BaseEndpoint = aws.String(p.cfg.DynamoDBEndpoint)
			}
		})

		p.mu.Lock()
		p.client = client
		p.mu.Unlock()
		return client, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*dynamodb.Client), nil
}

// NewDynamoDBConfig builds the AWS config. Local DynamoDB does not validate
// credentials, but the SDK requires them.
func NewDynamoDBConfig(ctx context.Context, cfg config.Store) (aws.Config, error) {
	creds := credentials.NewStaticCredentialsProvider(cfg.AWSAccessKeyID, cfg.AWSSecretAccessKey, "")

	return awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
		awsconfig.WithCredentialsProvider(creds),
	)
}
