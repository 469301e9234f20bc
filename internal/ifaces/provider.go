package ifaces

import "context"

// Provider answers questions about the deployment target.
//
//go:generate mockery --inpackage --name Provider --filename mock_provider.go
type Provider interface {
	Stage() string
	Region() string
	AccountID(ctx context.Context) (string, error)
}
