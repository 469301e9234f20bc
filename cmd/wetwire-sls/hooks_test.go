package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	wetwire "github.com/lex00/wetwire-sls-go"
	"github.com/lex00/wetwire-sls-go/internal/service"
)

const nodeService = `service: service
org: tenant
app: app
provider:
  runtime: nodejs18.x
functions:
  func:
    handler: handlerFile.handlerFunc
`

// setupService writes a service with one node function and isolates the environment.
func setupService(t *testing.T, declaration string) hookOptions {
	t.Helper()
	dir := t.TempDir()

	t.Setenv("WETWIRE_SLS_STATE_DIR", filepath.Join(dir, "state"))
	t.Setenv("WETWIRE_SLS_LOG_LEVEL", "error")
	sdk := filepath.Join(dir, "sdk")
	require.NoError(t, os.MkdirAll(sdk, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(sdk, "index.js"), []byte("module.exports = class ServerlessSDK {}\n"), 0644))
	t.Setenv("WETWIRE_SLS_SDK_DIR", sdk)
	t.Setenv("WETWIRE_SLS_TRACE", "false")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "serverless.yml"), []byte(declaration), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "handlerFile.js"), []byte("module.exports.handlerFunc = async () => {}\n"), 0644))

	return hookOptions{
		servicePath: filepath.Join(dir, "serverless.yml"),
		format:      "json",
	}
}

func TestRunWrap_ThenClean(t *testing.T) {
	opts := setupService(t, nodeService)
	dir := filepath.Dir(opts.servicePath)

	var out bytes.Buffer
	require.NoError(t, runWrap(t.Context(), &out, opts, "", "", false))

	var wrapResult wetwire.WrapResult
	require.NoError(t, json.Unmarshal(out.Bytes(), &wrapResult))
	assert.True(t, wrapResult.Success)
	require.Contains(t, wrapResult.Functions, "func")
	assert.Equal(t, "s_func.handler", wrapResult.Functions["func"].Handler())
	assert.FileExists(t, filepath.Join(dir, "s_func.js"))

	wrapped, err := service.Load(filepath.Join(dir, ".serverless", "serverless.wrapped.yml"))
	require.NoError(t, err)
	assert.Equal(t, "s_func.handler", wrapped.Functions["func"].Handler)

	original, err := service.Load(opts.servicePath)
	require.NoError(t, err)
	assert.Equal(t, "handlerFile.handlerFunc", original.Functions["func"].Handler)

	out.Reset()
	require.NoError(t, runClean(t.Context(), &out, opts))

	var cleanResult wetwire.CleanResult
	require.NoError(t, json.Unmarshal(out.Bytes(), &cleanResult))
	assert.True(t, cleanResult.Success)
	assert.NotEmpty(t, cleanResult.Removed)
	assert.NoFileExists(t, filepath.Join(dir, "s_func.js"))
	assert.FileExists(t, filepath.Join(dir, "handlerFile.js"))

	out.Reset()
	opts.format = "text"
	require.NoError(t, runClean(t.Context(), &out, opts))
	assert.Equal(t, "Nothing to clean\n", out.String())
}

func TestRunWrap_TextOutput(t *testing.T) {
	opts := setupService(t, nodeService)
	opts.format = "text"

	var out bytes.Buffer
	require.NoError(t, runWrap(t.Context(), &out, opts, filepath.Join(t.TempDir(), "out.yml"), "", false))

	assert.Equal(t, "Wrapped 1 functions\n  func: handlerFile.handlerFunc -> s_func.handler (nodejs18.x)\n", out.String())
}

func TestRunWrap_StagesSDK(t *testing.T) {
	opts := setupService(t, nodeService)
	dir := filepath.Dir(opts.servicePath)

	sdk := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(sdk, "index.js"), []byte("module.exports = {}\n"), 0644))

	require.NoError(t, runWrap(t.Context(), &bytes.Buffer{}, opts, "", sdk, false))
	assert.FileExists(t, filepath.Join(dir, "serverless_sdk", "index.js"))

	require.NoError(t, runClean(t.Context(), &bytes.Buffer{}, opts))
	assert.NoDirExists(t, filepath.Join(dir, "serverless_sdk"))
}

func TestRunWrap_WithoutSDKIsConfigError(t *testing.T) {
	opts := setupService(t, nodeService)
	t.Setenv("WETWIRE_SLS_SDK_DIR", "")
	dir := filepath.Dir(opts.servicePath)

	var out bytes.Buffer
	err := runWrap(t.Context(), &out, opts, "", "", false)

	var cfgErr *service.ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "sdk-dir", cfgErr.Field)
	assert.NoFileExists(t, filepath.Join(dir, "s_func.js"))
	assert.NoFileExists(t, filepath.Join(dir, ".serverless", "serverless.wrapped.yml"))
}

func TestRunWrap_MissingTenantIsConfigError(t *testing.T) {
	opts := setupService(t, "service: service\napp: app\nfunctions:\n  func:\n    handler: handlerFile.handlerFunc\n")

	err := runWrap(t.Context(), &bytes.Buffer{}, opts, "", "", false)

	var cfgErr *service.ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Contains(t, cfgErr.Field, "org/tenant")
}

func TestRunWrap_InvalidHandlerReportsFailure(t *testing.T) {
	opts := setupService(t, nodeService+"  other:\n    handler: noDot\n")
	dir := filepath.Dir(opts.servicePath)

	var out bytes.Buffer
	err := runWrap(t.Context(), &out, opts, "", "", false)

	var cfgErr *service.ConfigError
	require.True(t, errors.As(err, &cfgErr))

	var wrapResult wetwire.WrapResult
	require.NoError(t, json.Unmarshal(out.Bytes(), &wrapResult))
	assert.False(t, wrapResult.Success)
	assert.Len(t, wrapResult.Errors, 1)
	assert.NoFileExists(t, filepath.Join(dir, "s_func.js"))
}

func TestRunInject_MissingTenantIsConfigError(t *testing.T) {
	opts := setupService(t, "service: service\napp: app\n")

	err := runInject(t.Context(), &bytes.Buffer{}, opts, "", "", false)

	var cfgErr *service.ConfigError
	assert.True(t, errors.As(err, &cfgErr))
}

func TestHookOptions_StatePath(t *testing.T) {
	opts := setupService(t, nodeService)
	env, err := newRuntimeEnv()
	require.NoError(t, err)
	defer env.close()

	path, err := opts.statePath(env.cfg)
	require.NoError(t, err)
	assert.Equal(t, os.Getenv("WETWIRE_SLS_STATE_DIR"), filepath.Dir(path))

	opts.stateFile = "explicit.json"
	path, err = opts.statePath(env.cfg)
	require.NoError(t, err)
	assert.Equal(t, "explicit.json", path)
}
