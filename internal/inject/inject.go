// Package inject patches compiled CloudFormation templates with the resources the
// Serverless Dashboard needs to collect logs.
package inject

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/lex00/wetwire-sls-go/internal/ifaces"
	"github.com/lex00/wetwire-sls-go/internal/service"
)

// Injector adds log subscription filters and the log access role to a template.
type Injector struct {
	Service  *service.Service
	Identity service.Identity
	Platform ifaces.Platform
	Provider ifaces.Provider
	Logger   logrus.FieldLogger

	accessKey string
}

func (i *Injector) key(ctx context.Context) (string, error) {
	if i.accessKey != "" {
		return i.accessKey, nil
	}
	key, err := i.Platform.AccessKeyForTenant(ctx, i.Identity.Tenant)
	if err != nil {
		return "", fmt.Errorf("resolving access key: %w", err)
	}
	i.accessKey = key
	return key, nil
}

func (i *Injector) logger() logrus.FieldLogger {
	if i.Logger == nil {
		return logrus.StandardLogger()
	}
	return i.Logger
}
