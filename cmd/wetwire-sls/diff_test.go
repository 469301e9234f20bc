package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDiffCmd(t *testing.T) {
	cmd := newDiffCmd()

	if cmd.Use != "diff <template1> <template2>" {
		t.Errorf("Use = %q, want 'diff <template1> <template2>'", cmd.Use)
	}

	if cmd.Short == "" {
		t.Error("Short description should not be empty")
	}

	// Check flags exist
	if cmd.Flags().Lookup("format") == nil {
		t.Error("missing --format flag")
	}

	if cmd.Flags().Lookup("ignore-order") == nil {
		t.Error("missing --ignore-order flag")
	}
}

const beforeTemplate = `{
  "Resources": {
    "FuncLogGroup": {"Type": "AWS::Logs::LogGroup", "Properties": {"LogGroupName": "/aws/lambda/service-dev-func"}}
  }
}`

const afterTemplate = `Resources:
  FuncLogGroup:
    Type: AWS::Logs::LogGroup
    Properties:
      LogGroupName: /aws/lambda/service-dev-func
  CloudWatchLogsSubscriptionFilterFuncLogGroup:
    Type: AWS::Logs::SubscriptionFilter
    Properties:
      DestinationArn: arn:aws:logs:us-east-1:111111111111:destination:abc
      FilterPattern: '?"REPORT RequestId: " ?"SERVERLESS_ENTERPRISE"'
      LogGroupName:
        Ref: FuncLogGroup
`

func writeTemplates(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	before := filepath.Join(dir, "before.json")
	after := filepath.Join(dir, "after.yml")
	require.NoError(t, os.WriteFile(before, []byte(beforeTemplate), 0644))
	require.NoError(t, os.WriteFile(after, []byte(afterTemplate), 0644))
	return before, after
}

func TestRunDiff_Text(t *testing.T) {
	before, after := writeTemplates(t)

	var out bytes.Buffer
	require.NoError(t, runDiff(&out, before, after, "text", false))

	assert.Contains(t, out.String(), "+ CloudWatchLogsSubscriptionFilterFuncLogGroup (AWS::Logs::SubscriptionFilter)")
	assert.Contains(t, out.String(), "Summary: 1 added, 0 removed, 0 modified")
}

func TestRunDiff_JSON(t *testing.T) {
	before, after := writeTemplates(t)

	var out bytes.Buffer
	require.NoError(t, runDiff(&out, before, after, "json", false))

	var got struct {
		Added []struct {
			Resource string `json:"resource"`
		} `json:"added"`
		Summary struct {
			Total int `json:"total"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	require.Len(t, got.Added, 1)
	assert.Equal(t, "CloudWatchLogsSubscriptionFilterFuncLogGroup", got.Added[0].Resource)
	assert.Equal(t, 1, got.Summary.Total)
}

func TestRunDiff_Identical(t *testing.T) {
	before, _ := writeTemplates(t)

	var out bytes.Buffer
	require.NoError(t, runDiff(&out, before, before, "text", false))
	assert.Equal(t, "Templates are identical\n", out.String())
}

func TestRunDiff_UnknownFormat(t *testing.T) {
	before, after := writeTemplates(t)

	err := runDiff(&bytes.Buffer{}, before, after, "xml", false)
	assert.EqualError(t, err, "unknown format: xml")
}
