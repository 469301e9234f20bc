package wetwire_sls

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapperRecord_Names(t *testing.T) {
	tests := []struct {
		name        string
		record      WrapperRecord
		wantHandler string
		wantFile    string
	}{
		{
			name:        "nodejs",
			record:      WrapperRecord{EntryNew: "s_func", HandlerNew: "handler", Extension: "js"},
			wantHandler: "s_func.handler",
			wantFile:    "s_func.js",
		},
		{
			name:        "python",
			record:      WrapperRecord{EntryNew: "s_dunc", HandlerNew: "handler", Extension: "py"},
			wantHandler: "s_dunc.handler",
			wantFile:    "s_dunc.py",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantHandler, tt.record.Handler())
			assert.Equal(t, tt.wantFile, tt.record.FileName())
		})
	}
}

func TestWrapperRecord_JSONFieldNames(t *testing.T) {
	record := WrapperRecord{
		Key:         "func",
		Name:        "service-dev-func",
		Runtime:     "nodejs8.10",
		Timeout:     6,
		Extension:   "js",
		EntryOrig:   "handlerFile",
		HandlerOrig: "handlerFunc",
		EntryNew:    "s_func",
		HandlerNew:  "handler",
	}

	data, err := json.Marshal(record)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"key": "func",
		"name": "service-dev-func",
		"runtime": "nodejs8.10",
		"timeout": 6,
		"extension": "js",
		"entryOrig": "handlerFile",
		"handlerOrig": "handlerFunc",
		"entryNew": "s_func",
		"handlerNew": "handler"
	}`, string(data))
}

func TestTemplate_RoundTripKeepsResourceAttributes(t *testing.T) {
	input := `{
		"AWSTemplateFormatVersion": "2010-09-09",
		"Description": "The AWS CloudFormation template for this Serverless application",
		"Resources": {
			"ServerlessDeploymentBucket": {
				"Type": "AWS::S3::Bucket",
				"DeletionPolicy": "Retain",
				"Properties": {"BucketEncryption": {}}
			},
			"FuncLambdaFunction": {
				"Type": "AWS::Lambda::Function",
				"DependsOn": ["FuncLogGroup"],
				"Properties": {"Handler": "s_func.handler"}
			}
		},
		"Outputs": {
			"ServerlessDeploymentBucketName": {"Value": {"Ref": "ServerlessDeploymentBucket"}}
		}
	}`

	var tmpl Template
	require.NoError(t, json.Unmarshal([]byte(input), &tmpl))

	assert.Equal(t, "Retain", tmpl.Resources["ServerlessDeploymentBucket"].DeletionPolicy)
	assert.Equal(t, []any{"FuncLogGroup"}, tmpl.Resources["FuncLambdaFunction"].DependsOn)

	out, err := json.Marshal(tmpl)
	require.NoError(t, err)
	assert.JSONEq(t, input, string(out))
}

func TestDiffEntry_Fields(t *testing.T) {
	entry := DiffEntry{
		Resource: "CloudWatchLogsSubscriptionFilterFuncLogGroup",
		Type:     "AWS::Logs::SubscriptionFilter",
	}

	data, err := json.Marshal(entry)
	require.NoError(t, err)
	assert.JSONEq(t, `{"resource":"CloudWatchLogsSubscriptionFilterFuncLogGroup","type":"AWS::Logs::SubscriptionFilter"}`, string(data))
}
