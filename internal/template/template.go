// Package template reads, writes and queries compiled CloudFormation templates.
package template

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	wetwire "github.com/lex00/wetwire-sls-go"
)

// Resource types the injectors look for or produce.
const (
	TypeLogGroup           = "AWS::Logs::LogGroup"
	TypeSubscriptionFilter = "AWS::Logs::SubscriptionFilter"
	TypeIAMRole            = "AWS::IAM::Role"
)

// gatewayLogPrefix marks log groups written by API Gateway access logging.
const gatewayLogPrefix = "/aws/api-gateway/"

// LogKind classifies a log group by what writes to it.
type LogKind int

const (
	// FunctionLogs are Lambda function log groups.
	FunctionLogs LogKind = iota
	// GatewayLogs are API Gateway access log groups.
	GatewayLogs
)

func (k LogKind) String() string {
	if k == GatewayLogs {
		return "gateway"
	}
	return "function"
}

// LogGroup is a log group resource found in a template.
type LogGroup struct {
	// LogicalID is the resource's key in the Resources section
	LogicalID string
	// Name is the LogGroupName property; it may be an intrinsic
	Name any
	// Kind is derived from the name
	Kind LogKind
}

// Load reads a CloudFormation template from a JSON or YAML file.
func Load(path string) (*wetwire.Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes a template, trying JSON first and YAML second. Short-form YAML
// intrinsics are expanded to their long form.
func Parse(data []byte) (*wetwire.Template, error) {
	var template wetwire.Template

	if err := json.Unmarshal(data, &template); err != nil {
		template = wetwire.Template{}
		if err := parseYAML(data, &template); err != nil {
			return nil, fmt.Errorf("failed to parse as JSON or YAML: %w", err)
		}
	}

	if template.Resources == nil {
		template.Resources = make(map[string]wetwire.ResourceDef)
	}
	return &template, nil
}

// Save writes the template to path, as YAML for .yml/.yaml files and JSON otherwise.
func Save(path string, t *wetwire.Template) error {
	var data []byte
	var err error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		data, err = ToYAML(t)
	default:
		data, err = ToJSON(t)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ToJSON serializes the template to indented JSON.
func ToJSON(t *wetwire.Template) ([]byte, error) {
	return json.MarshalIndent(t, "", "  ")
}

// ToYAML serializes the template to YAML. Values are normalized through JSON first so
// intrinsic types render with their CloudFormation keys.
func ToYAML(t *wetwire.Template) ([]byte, error) {
	data, err := json.Marshal(t)
	if err != nil {
		return nil, err
	}
	var generic map[string]any
	if err := json.Unmarshal(data, &generic); err != nil {
		return nil, err
	}
	return yaml.Marshal(generic)
}

// Clone returns a deep copy of the template with intrinsics normalized to plain maps.
func Clone(t *wetwire.Template) (*wetwire.Template, error) {
	data, err := json.Marshal(t)
	if err != nil {
		return nil, err
	}
	var clone wetwire.Template
	if err := json.Unmarshal(data, &clone); err != nil {
		return nil, err
	}
	if clone.Resources == nil {
		clone.Resources = make(map[string]wetwire.ResourceDef)
	}
	return &clone, nil
}

// LogGroups returns the template's log group resources sorted by logical id.
func LogGroups(t *wetwire.Template) []LogGroup {
	var groups []LogGroup
	for id, res := range t.Resources {
		if res.Type != TypeLogGroup {
			continue
		}
		name := res.Properties["LogGroupName"]
		groups = append(groups, LogGroup{
			LogicalID: id,
			Name:      name,
			Kind:      kindOf(name),
		})
	}

	sort.Slice(groups, func(i, j int) bool {
		return groups[i].LogicalID < groups[j].LogicalID
	})
	return groups
}

// HasResource reports whether a resource with the logical id exists.
func HasResource(t *wetwire.Template, logicalID string) bool {
	_, ok := t.Resources[logicalID]
	return ok
}

// SetOutput adds or replaces a template output.
func SetOutput(t *wetwire.Template, name string, output wetwire.Output) {
	if t.Outputs == nil {
		t.Outputs = make(map[string]wetwire.Output)
	}
	t.Outputs[name] = output
}

// kindOf classifies a log group by its name. Names built from intrinsics are treated
// as function logs.
func kindOf(name any) LogKind {
	if s, ok := name.(string); ok && strings.HasPrefix(s, gatewayLogPrefix) {
		return GatewayLogs
	}
	return FunctionLogs
}
