// Package provider answers deployment target questions against AWS.
package provider

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"go.opentelemetry.io/contrib/instrumentation/github.com/aws/aws-sdk-go-v2/otelaws"

	"github.com/lex00/wetwire-sls-go/internal/ifaces"
	"github.com/lex00/wetwire-sls-go/internal/platform"
)

// AWS is the AWS deployment provider.
type AWS struct {
	stage  string
	region string

	// STS resolves the caller account.
	STS ifaces.STS

	accountID string
}

// Options configures the AWS provider.
type Options struct {
	Stage  string
	Region string
	// Credentials replace the default credential chain when set
	Credentials *platform.AWSCredentials
}

// New loads the AWS configuration and creates the provider.
func New(ctx context.Context, opts Options) (*AWS, error) {
	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(opts.Region)}
	if creds := opts.Credentials; creds != nil {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(creds.AccessKeyID, creds.SecretAccessKey, creds.SessionToken),
		))
	}

	awsConfig, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("could not load AWS configuration: %w", err)
	}

	otelaws.AppendMiddlewares(&awsConfig.APIOptions)

	return &AWS{
		stage:  opts.Stage,
		region: opts.Region,
		STS:    sts.NewFromConfig(awsConfig),
	}, nil
}

// NewWithClient creates a provider around an existing STS client.
func NewWithClient(stage, region string, client ifaces.STS) *AWS {
	return &AWS{stage: stage, region: region, STS: client}
}

// Stage returns the deployment stage.
func (p *AWS) Stage() string { return p.stage }

// Region returns the deployment region.
func (p *AWS) Region() string { return p.region }

// AccountID returns the account the credentials belong to. The result is cached.
func (p *AWS) AccountID(ctx context.Context) (string, error) {
	if p.accountID != "" {
		return p.accountID, nil
	}

	out, err := p.STS.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return "", fmt.Errorf("could not get caller identity: %w", err)
	} else if out.Account == nil {
		return "", errors.New("caller identity has no account")
	}

	p.accountID = aws.ToString(out.Account)
	return p.accountID, nil
}
