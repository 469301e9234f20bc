package ifaces

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// STS is the subset of the STS client used to resolve the deployment account.
//
//go:generate mockery --inpackage --name STS --filename mock_sts.go
type STS interface {
	GetCallerIdentity(context.Context, *sts.GetCallerIdentityInput, ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}
