package validation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lex00/cfn-lint-go/pkg/lint"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	wetwire "github.com/lex00/wetwire-sls-go"
	"github.com/lex00/wetwire-sls-go/intrinsics"
)

func TestCfnLintResult_TotalIssues(t *testing.T) {
	tests := []struct {
		name     string
		result   CfnLintResult
		expected int
	}{
		{
			name:     "empty result",
			result:   CfnLintResult{},
			expected: 0,
		},
		{
			name: "errors only",
			result: CfnLintResult{
				Errors: []string{"error1", "error2"},
			},
			expected: 2,
		},
		{
			name: "mixed issues",
			result: CfnLintResult{
				Errors:        []string{"error1"},
				Warnings:      []string{"warning1", "warning2"},
				Informational: []string{"info1"},
			},
			expected: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.result.TotalIssues())
			assert.Len(t, tt.result.Issues(), tt.expected)
		})
	}
}

func TestCfnLintResult_IssuesOrder(t *testing.T) {
	result := CfnLintResult{
		Errors:        []string{"E1"},
		Warnings:      []string{"W1"},
		Informational: []string{"I1"},
	}
	assert.Equal(t, []string{"E1", "W1", "I1"}, result.Issues())
}

func TestFormatMatch(t *testing.T) {
	tests := []struct {
		name     string
		match    lint.Match
		expected string
	}{
		{
			name: "simple match",
			match: lint.Match{
				Rule:    lint.MatchRule{ID: "E1234"},
				Message: "Something is wrong",
			},
			expected: "E1234: Something is wrong",
		},
		{
			name: "match with path",
			match: lint.Match{
				Rule:    lint.MatchRule{ID: "W5678"},
				Message: "Warning message",
				Location: lint.MatchLocation{
					Path: []any{"Resources", "CloudWatchLogsSubscriptionFilterFuncLogGroup", "Properties"},
				},
			},
			expected: "W5678: Warning message (at Resources/CloudWatchLogsSubscriptionFilterFuncLogGroup/Properties)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatMatch(tt.match))
		})
	}
}

func TestRunCfnLint_FileNotFound(t *testing.T) {
	result, err := RunCfnLint("/nonexistent/template.yaml")
	require.NoError(t, err)
	assert.False(t, result.Passed)
	assert.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "Template file not found")
}

func TestRunCfnLint_ValidTemplate(t *testing.T) {
	templatePath := filepath.Join(t.TempDir(), "template.yaml")

	validTemplate := `AWSTemplateFormatVersion: '2010-09-09'
Description: Test template
Resources:
  FuncLogGroup:
    Type: AWS::Logs::LogGroup
    Properties:
      LogGroupName: /aws/lambda/service-dev-func
`
	require.NoError(t, os.WriteFile(templatePath, []byte(validTemplate), 0644))

	result, err := RunCfnLint(templatePath)
	require.NoError(t, err)
	assert.NotNil(t, result)
}

func TestLintTemplate(t *testing.T) {
	tmpl := &wetwire.Template{
		AWSTemplateFormatVersion: "2010-09-09",
		Resources: map[string]wetwire.ResourceDef{
			"FuncLogGroup": {
				Type:       "AWS::Logs::LogGroup",
				Properties: map[string]any{"LogGroupName": "/aws/lambda/service-dev-func"},
			},
			"CloudWatchLogsSubscriptionFilterFuncLogGroup": {
				Type: "AWS::Logs::SubscriptionFilter",
				Properties: map[string]any{
					"DestinationArn": "arn:aws:logs:us-east-1:111111111111:destination:dest",
					"FilterPattern":  `"SLS_ACCESS_LOG"`,
					"LogGroupName":   intrinsics.RefTo("FuncLogGroup"),
				},
			},
		},
	}

	result, err := LintTemplate(tmpl)
	require.NoError(t, err)
	assert.NotNil(t, result)
}
