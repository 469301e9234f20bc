package service

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleService = `service: service
org: tenant
app: app
appUid: appUid
tenantUid: tenantUid
provider:
  name: aws
  runtime: nodejs8.10
  stage: dev
  memorySize: 512
package:
  individually: true
  exclude:
    - node_modules/aws-sdk/**
functions:
  func:
    handler: handlerFile.handlerFunc
    events:
      - http: GET /
  punc:
    handler: path.to.some.handlerFunc
    runtime: python3.6
    timeout: 30
custom:
  enterprise:
    collectLambdaLogs: false
  other: value
`

func TestParse(t *testing.T) {
	svc, err := Parse([]byte(sampleService))
	require.NoError(t, err)

	assert.Equal(t, "service", svc.Service)
	assert.Equal(t, "tenant", svc.TenantName())
	assert.Equal(t, "nodejs8.10", svc.Provider.Runtime)
	assert.Equal(t, 512, svc.Provider.Extra["memorySize"])
	assert.Equal(t, []string{"func", "punc"}, svc.FunctionKeys())
	require.NotNil(t, svc.Functions["punc"].Timeout)
	assert.Equal(t, 30, *svc.Functions["punc"].Timeout)
	assert.Contains(t, svc.Functions["func"].Extra, "events")
	assert.False(t, svc.CollectLogs())
	assert.Equal(t, "value", svc.Custom.Extra["other"])
}

func TestSave_PreservesUnknownKeys(t *testing.T) {
	svc, err := Parse([]byte(sampleService))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "serverless.yml")
	require.NoError(t, svc.Save(path))

	reloaded, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, svc.Provider.Extra, reloaded.Provider.Extra)
	assert.Equal(t, svc.Functions["func"].Extra, reloaded.Functions["func"].Extra)
	assert.Equal(t, []string{"node_modules/aws-sdk/**"}, reloaded.Package.Exclude)
	assert.True(t, reloaded.Package.Individually)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}

func TestIndividually(t *testing.T) {
	svc := &Service{}
	fn := &Function{}
	assert.False(t, svc.Individually(fn))

	fn.Package = &Package{Individually: true}
	assert.True(t, svc.Individually(fn))

	svc.Package = &Package{Individually: true}
	assert.True(t, svc.Individually(&Function{}))
}

func TestCollectLogs_DefaultsToEnabled(t *testing.T) {
	enabled := true

	tests := []struct {
		name   string
		custom *Custom
		want   bool
	}{
		{"no custom", nil, true},
		{"no enterprise", &Custom{}, true},
		{"unset", &Custom{Enterprise: &Enterprise{}}, true},
		{"explicit true", &Custom{Enterprise: &Enterprise{CollectLambdaLogs: &enabled}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &Service{Custom: tt.custom}
			assert.Equal(t, tt.want, svc.CollectLogs())
		})
	}
}

func TestLogAccessRole(t *testing.T) {
	svc := &Service{}
	assert.Empty(t, svc.LogAccessRole())

	svc.Custom = &Custom{Enterprise: &Enterprise{LogAccessIamRole: "arn:aws:iam::123:role/logs"}}
	assert.Equal(t, "arn:aws:iam::123:role/logs", svc.LogAccessRole())
}

func TestMergeIncludes(t *testing.T) {
	tests := []struct {
		name     string
		include  []string
		entries  []string
		expected []string
	}{
		{
			name:     "empty",
			entries:  []string{"s_*.js", "serverless_sdk/**"},
			expected: []string{"s_*.js", "serverless_sdk/**"},
		},
		{
			name:     "keeps existing",
			include:  []string{"lib/**"},
			entries:  []string{"s_func.js", "serverless_sdk/**"},
			expected: []string{"lib/**", "s_func.js", "serverless_sdk/**"},
		},
		{
			name:     "no duplicates",
			include:  []string{"serverless_sdk/**"},
			entries:  []string{"s_func.js", "serverless_sdk/**"},
			expected: []string{"serverless_sdk/**", "s_func.js"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MergeIncludes(tt.include, tt.entries...))
		})
	}
}

func TestNewIdentity(t *testing.T) {
	svc, err := Parse([]byte(sampleService))
	require.NoError(t, err)

	id := NewIdentity(svc, Overrides{Region: "eu-west-1", PluginVersion: "v1.0.0"})

	assert.Equal(t, "tenant", id.Tenant)
	assert.Equal(t, "app", id.App)
	assert.Equal(t, "appUid", id.AppUID)
	assert.Equal(t, "tenantUid", id.TenantUID)
	assert.Equal(t, "dev", id.Stage)
	assert.Equal(t, "eu-west-1", id.Region)
	assert.Equal(t, "v1.0.0", id.PluginVersion)
	assert.NotEmpty(t, id.DeploymentUID)
	assert.Equal(t, "service-dev-func", id.FunctionName("func"))
}

func TestNewIdentity_Defaults(t *testing.T) {
	id := NewIdentity(&Service{Service: "svc"}, Overrides{DeploymentUID: "deploymentUid"})

	assert.Equal(t, DefaultStage, id.Stage)
	assert.Equal(t, DefaultRegion, id.Region)
	assert.Equal(t, "deploymentUid", id.DeploymentUID)
}

func TestIdentity_Validate(t *testing.T) {
	valid := Identity{Tenant: "tenant", App: "app", Service: "service", Stage: "dev"}
	require.NoError(t, valid.Validate())

	err := Identity{Service: "service", Stage: "dev"}.Validate()
	require.Error(t, err)

	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "org/tenant, app", cfgErr.Field)
	assert.Contains(t, err.Error(), "configuration error")
}
