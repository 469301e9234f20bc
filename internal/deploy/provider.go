package deploy

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/lex00/wetwire-sls-go/internal/ifaces"
	"github.com/lex00/wetwire-sls-go/internal/platform"
	"github.com/lex00/wetwire-sls-go/internal/provider"
	"github.com/lex00/wetwire-sls-go/internal/service"
)

// NewProvider creates the AWS provider for id. Credentials from the dashboard deploy
// profile are used when one is configured; otherwise the default credential chain is.
func NewProvider(ctx context.Context, p ifaces.Platform, id service.Identity, log logrus.FieldLogger) (*provider.AWS, error) {
	return provider.New(ctx, provider.Options{
		Stage:       id.Stage,
		Region:      id.Region,
		Credentials: profileCredentials(ctx, p, id, log),
	})
}

// profileCredentials returns the deploy profile credentials, or nil when there are none.
// Lookup failures are not fatal.
func profileCredentials(ctx context.Context, p ifaces.Platform, id service.Identity, log logrus.FieldLogger) *platform.AWSCredentials {
	accessKey, err := p.AccessKeyForTenant(ctx, id.Tenant)
	if err != nil {
		log.WithError(err).Debug("no access key, using default AWS credentials")
		return nil
	}

	profile, err := p.DeployProfile(ctx, platform.DeployProfileRequest{
		AccessKey: accessKey,
		Tenant:    id.Tenant,
		App:       id.App,
		Service:   id.Service,
		Stage:     id.Stage,
	})
	if err != nil {
		log.WithError(err).Debug("no deploy profile, using default AWS credentials")
		return nil
	}
	if profile.ProviderCredentials == nil || profile.ProviderCredentials.SecretValue.AccessKeyID == "" {
		return nil
	}

	log.Debug("using deploy profile credentials")
	return &profile.ProviderCredentials.SecretValue
}
