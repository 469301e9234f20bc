// Package service models a resolved Serverless Framework service declaration.
//
// The declaration is read from serverless.yml after variable resolution (the output of
// `sls print` works too). Keys this package does not model are kept in the Extra maps so
// that Save writes them back unchanged.
package service

import (
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// Service is the top level of a service declaration.
type Service struct {
	Service   string               `yaml:"service"`
	Org       string               `yaml:"org,omitempty"`
	Tenant    string               `yaml:"tenant,omitempty"`
	App       string               `yaml:"app,omitempty"`
	AppUID    string               `yaml:"appUid,omitempty"`
	TenantUID string               `yaml:"tenantUid,omitempty"`
	Provider  Provider             `yaml:"provider"`
	Package   *Package             `yaml:"package,omitempty"`
	Functions map[string]*Function `yaml:"functions,omitempty"`
	Custom    *Custom              `yaml:"custom,omitempty"`
	Extra     map[string]any       `yaml:",inline"`
}

// Provider holds the provider settings relevant to instrumentation.
type Provider struct {
	Name    string         `yaml:"name,omitempty"`
	Runtime string         `yaml:"runtime,omitempty"`
	Stage   string         `yaml:"stage,omitempty"`
	Region  string         `yaml:"region,omitempty"`
	Timeout *int           `yaml:"timeout,omitempty"`
	Extra   map[string]any `yaml:",inline"`
}

// Package is a service or function level packaging override.
type Package struct {
	Individually bool           `yaml:"individually,omitempty"`
	Include      []string       `yaml:"include,omitempty"`
	Exclude      []string       `yaml:"exclude,omitempty"`
	Artifact     string         `yaml:"artifact,omitempty"`
	Extra        map[string]any `yaml:",inline"`
}

// Function is a single function declaration.
type Function struct {
	Handler string         `yaml:"handler,omitempty"`
	Runtime string         `yaml:"runtime,omitempty"`
	Name    string         `yaml:"name,omitempty"`
	Timeout *int           `yaml:"timeout,omitempty"`
	Package *Package       `yaml:"package,omitempty"`
	Extra   map[string]any `yaml:",inline"`
}

// Custom is the custom section; only the enterprise block is modelled.
type Custom struct {
	Enterprise *Enterprise    `yaml:"enterprise,omitempty"`
	Extra      map[string]any `yaml:",inline"`
}

// Enterprise configures the dashboard integration.
type Enterprise struct {
	CollectLambdaLogs *bool          `yaml:"collectLambdaLogs,omitempty"`
	LogAccessIamRole  string         `yaml:"logAccessIamRole,omitempty"`
	Extra             map[string]any `yaml:",inline"`
}

// Load reads a service declaration from a YAML (or JSON) file.
func Load(path string) (*Service, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes a service declaration.
func Parse(data []byte) (*Service, error) {
	var svc Service
	if err := yaml.Unmarshal(data, &svc); err != nil {
		return nil, fmt.Errorf("parsing service declaration: %w", err)
	}
	return &svc, nil
}

// Marshal encodes the service declaration as YAML.
func (s *Service) Marshal() ([]byte, error) {
	return yaml.Marshal(s)
}

// Save writes the service declaration to path.
func (s *Service) Save(path string) error {
	data, err := s.Marshal()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// TenantName returns the tenant, falling back to the newer "org" key.
func (s *Service) TenantName() string {
	if s.Tenant != "" {
		return s.Tenant
	}
	return s.Org
}

// FunctionKeys returns the function keys in sorted order.
func (s *Service) FunctionKeys() []string {
	keys := make([]string, 0, len(s.Functions))
	for key := range s.Functions {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}

// Individually reports whether fn is packaged on its own.
func (s *Service) Individually(fn *Function) bool {
	if fn != nil && fn.Package != nil && fn.Package.Individually {
		return true
	}
	return s.Package != nil && s.Package.Individually
}

// CollectLogs reports whether log collection is enabled. Only an explicit
// collectLambdaLogs: false disables it.
func (s *Service) CollectLogs() bool {
	if s.Custom == nil || s.Custom.Enterprise == nil || s.Custom.Enterprise.CollectLambdaLogs == nil {
		return true
	}
	return *s.Custom.Enterprise.CollectLambdaLogs
}

// LogAccessRole returns the externally managed log access role, if any.
func (s *Service) LogAccessRole() string {
	if s.Custom == nil || s.Custom.Enterprise == nil {
		return ""
	}
	return s.Custom.Enterprise.LogAccessIamRole
}

// MergeIncludes appends entries to include, skipping ones already present.
func MergeIncludes(include []string, entries ...string) []string {
	for _, entry := range entries {
		if !slices.Contains(include, entry) {
			include = append(include, entry)
		}
	}
	return include
}
