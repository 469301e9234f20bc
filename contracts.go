// Package wetwire_sls instruments Serverless Framework services for the Serverless
// Dashboard.
//
// At deploy time the wetwire-sls CLI rewrites each function's entry point so that every
// invocation runs through the monitoring SDK, and patches the compiled CloudFormation
// template with log forwarding resources:
//
//	wetwire-sls wrap --service serverless.yml      # before packaging
//	wetwire-sls inject --template .serverless/cloudformation-template-update-stack.json
//	wetwire-sls clean                              # after deploy, or on failure
//
// This package holds the types shared between the CLI and the internal packages.
package wetwire_sls

// WrapperRecord describes how a single function's entry point was rewritten.
//
// For a function "func" with handler "handlerFile.handlerFunc" on nodejs the record is:
//
//	{EntryNew: "s_func", EntryOrig: "handlerFile", Extension: "js",
//	 HandlerNew: "handler", HandlerOrig: "handlerFunc"}
type WrapperRecord struct {
	// Key is the function's key in the service declaration
	Key string `json:"key"`
	// Name is the deployed function name (<service>-<stage>-<key> unless overridden)
	Name string `json:"name"`
	// Runtime is the resolved runtime string (e.g., "nodejs8.10", "python3.6")
	Runtime string `json:"runtime"`
	// Timeout is the resolved timeout in seconds
	Timeout int `json:"timeout"`
	// Extension is the source file extension of the runtime family ("js" or "py")
	Extension string `json:"extension"`
	// EntryOrig is the original module path, without extension
	EntryOrig string `json:"entryOrig"`
	// HandlerOrig is the original exported handler name
	HandlerOrig string `json:"handlerOrig"`
	// EntryNew is the generated wrapper module name
	EntryNew string `json:"entryNew"`
	// HandlerNew is the exported symbol of the generated wrapper
	HandlerNew string `json:"handlerNew"`
}

// Handler returns the handler reference that points at the generated wrapper.
func (r WrapperRecord) Handler() string {
	return r.EntryNew + "." + r.HandlerNew
}

// FileName returns the wrapper's file name relative to the service directory.
func (r WrapperRecord) FileName() string {
	return r.EntryNew + "." + r.Extension
}

// Template represents a CloudFormation template as compiled by the framework.
type Template struct {
	AWSTemplateFormatVersion string                 `json:"AWSTemplateFormatVersion,omitempty" yaml:"AWSTemplateFormatVersion,omitempty"`
	Description              string                 `json:"Description,omitempty" yaml:"Description,omitempty"`
	Transform                any                    `json:"Transform,omitempty" yaml:"Transform,omitempty"`
	Metadata                 map[string]any         `json:"Metadata,omitempty" yaml:"Metadata,omitempty"`
	Parameters               map[string]any         `json:"Parameters,omitempty" yaml:"Parameters,omitempty"`
	Mappings                 map[string]any         `json:"Mappings,omitempty" yaml:"Mappings,omitempty"`
	Conditions               map[string]any         `json:"Conditions,omitempty" yaml:"Conditions,omitempty"`
	Resources                map[string]ResourceDef `json:"Resources" yaml:"Resources"`
	Outputs                  map[string]Output      `json:"Outputs,omitempty" yaml:"Outputs,omitempty"`
}

// ResourceDef is a single resource in the CloudFormation template.
type ResourceDef struct {
	Type                string         `json:"Type" yaml:"Type"`
	Properties          map[string]any `json:"Properties,omitempty" yaml:"Properties,omitempty"`
	DependsOn           any            `json:"DependsOn,omitempty" yaml:"DependsOn,omitempty"`
	Condition           string         `json:"Condition,omitempty" yaml:"Condition,omitempty"`
	DeletionPolicy      string         `json:"DeletionPolicy,omitempty" yaml:"DeletionPolicy,omitempty"`
	UpdateReplacePolicy string         `json:"UpdateReplacePolicy,omitempty" yaml:"UpdateReplacePolicy,omitempty"`
	Metadata            map[string]any `json:"Metadata,omitempty" yaml:"Metadata,omitempty"`
}

// Output is a CloudFormation template output.
type Output struct {
	Description string `json:"Description,omitempty" yaml:"Description,omitempty"`
	Value       any    `json:"Value" yaml:"Value"`
	Condition   string `json:"Condition,omitempty" yaml:"Condition,omitempty"`
	Export      *struct {
		Name any `json:"Name" yaml:"Name"`
	} `json:"Export,omitempty" yaml:"Export,omitempty"`
}

// WrapResult is the JSON output from `wetwire-sls wrap`.
type WrapResult struct {
	Success   bool                     `json:"success"`
	Functions map[string]WrapperRecord `json:"functions,omitempty"`
	Skipped   []string                 `json:"skipped,omitempty"`
	Written   []string                 `json:"written,omitempty"`
	Errors    []string                 `json:"errors,omitempty"`
}

// InjectResult is the JSON output from `wetwire-sls inject`.
type InjectResult struct {
	Success bool        `json:"success"`
	Summary DiffSummary `json:"summary"`
	Added   []DiffEntry `json:"added,omitempty"`
	Lint    []string    `json:"lint,omitempty"`
	Errors  []string    `json:"errors,omitempty"`
}

// CleanResult is the JSON output from `wetwire-sls clean`.
type CleanResult struct {
	Success bool     `json:"success"`
	Removed []string `json:"removed,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

// TemplateDiff lists resources that differ between two templates.
type TemplateDiff struct {
	Added    []DiffEntry `json:"added,omitempty"`
	Removed  []DiffEntry `json:"removed,omitempty"`
	Modified []DiffEntry `json:"modified,omitempty"`
}

// DiffEntry is a single resource difference.
type DiffEntry struct {
	Resource string   `json:"resource"`
	Type     string   `json:"type"`
	Changes  []string `json:"changes,omitempty"`
}

// DiffSummary counts the differences between two templates.
type DiffSummary struct {
	Added    int `json:"added"`
	Removed  int `json:"removed"`
	Modified int `json:"modified"`
	Total    int `json:"total"`
}
