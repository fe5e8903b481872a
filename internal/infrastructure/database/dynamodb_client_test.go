package database

import (
	"context"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"amat_hosting/internal/config"
)

func TestDynamoDBProvider_SingleClient(t *testing.T) {
	p := NewDynamoDBProvider(config.Store{
		AWSRegion:          "us-east-1",
		AWSAccessKeyID:     "local",
		AWSSecretAccessKey: "local",
		DynamoDBEndpoint:   "http://localhost:8000",
	})

	var wg sync.WaitGroup
	clients := make([]*dynamodb.Client, 16)
	errs := make([]error, 16)
	for i := range clients {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			clients[i], errs[i] = p.Client(context.Background())
		}(i)
	}
	wg.Wait()

	for i := range clients {
		if errs[i] != nil {
			t.Fatalf("unexpected error: %v", errs[i])
		}
		if clients[i] == nil || clients[i] != clients[0] {
			t.Fatalf("expected every caller to share one client")
		}
	}
}
