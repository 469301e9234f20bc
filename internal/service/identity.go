package service

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Defaults applied when neither the declaration nor the caller sets a value.
const (
	DefaultStage  = "dev"
	DefaultRegion = "us-east-1"
)

// Identity is the deployment identity threaded through every hook. It is built once per
// run and never mutated.
type Identity struct {
	Tenant        string
	App           string
	AppUID        string
	TenantUID     string
	DeploymentUID string
	Service       string
	Stage         string
	Region        string
	PluginVersion string
}

// Overrides are identity values supplied by the caller (flags or environment). Empty
// fields fall back to the service declaration.
type Overrides struct {
	Stage         string
	Region        string
	AppUID        string
	TenantUID     string
	DeploymentUID string
	PluginVersion string
}

// NewIdentity resolves the deployment identity for svc.
func NewIdentity(svc *Service, o Overrides) Identity {
	id := Identity{
		Tenant:        svc.TenantName(),
		App:           svc.App,
		AppUID:        first(o.AppUID, svc.AppUID),
		TenantUID:     first(o.TenantUID, svc.TenantUID),
		DeploymentUID: o.DeploymentUID,
		Service:       svc.Service,
		Stage:         first(o.Stage, svc.Provider.Stage, DefaultStage),
		Region:        first(o.Region, svc.Provider.Region, DefaultRegion),
		PluginVersion: o.PluginVersion,
	}
	if id.DeploymentUID == "" {
		id.DeploymentUID = uuid.NewString()
	}
	return id
}

// Validate checks the fields every hook depends on.
func (id Identity) Validate() error {
	var missing []string
	if id.Tenant == "" {
		missing = append(missing, "org/tenant")
	}
	if id.App == "" {
		missing = append(missing, "app")
	}
	if id.Service == "" {
		missing = append(missing, "service")
	}
	if id.Stage == "" {
		missing = append(missing, "stage")
	}
	if len(missing) > 0 {
		return &ConfigError{
			Field:   strings.Join(missing, ", "),
			Message: "required for the Serverless Dashboard",
		}
	}
	return nil
}

// FunctionName returns the default deployed name of the function with the given key.
func (id Identity) FunctionName(key string) string {
	return fmt.Sprintf("%s-%s-%s", id.Service, id.Stage, key)
}

func first(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
