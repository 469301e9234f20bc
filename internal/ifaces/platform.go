package ifaces

import (
	"context"

	"github.com/lex00/wetwire-sls-go/internal/platform"
)

// Platform is the subset of the platform client the injectors depend on.
//
//go:generate mockery --inpackage --name Platform --filename mock_platform.go
type Platform interface {
	AccessKeyForTenant(ctx context.Context, tenant string) (string, error)
	Metadata(ctx context.Context, accessKey string) (*platform.Metadata, error)
	LogDestination(ctx context.Context, req platform.DestinationRequest) (string, error)
	DeployProfile(ctx context.Context, req platform.DeployProfileRequest) (*platform.DeployProfile, error)
}
