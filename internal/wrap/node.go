package wrap

import (
	"io"
	"strings"
)

// DefaultRuntime is assumed when neither the function nor the provider sets one.
const DefaultRuntime = "nodejs12.x"

var nodeSource = newSource("node", `var serverlessSDK = require('./serverless_sdk/index.js')
serverlessSDK = new serverlessSDK({
tenantId: '{{str .Identity.Tenant}}',
applicationName: '{{str .Identity.App}}',
appUid: '{{str .Identity.AppUID}}',
tenantUid: '{{str .Identity.TenantUID}}',
deploymentUid: '{{str .Identity.DeploymentUID}}',
serviceName: '{{str .Identity.Service}}',
stageName: '{{str .Identity.Stage}}',
pluginVersion: '{{str .Identity.PluginVersion}}'})
const handlerWrapperArgs = { functionName: '{{str .Record.Name}}', timeout: {{.Record.Timeout}}}
{{if .Target.Failed -}}
module.exports.handler = serverlessSDK.handler(() => { throw new Error('{{str .Target.LoadError}}') }, handlerWrapperArgs)
{{else -}}
try {
  const userHandler = require('./{{str .Target.Entry}}.js')
  module.exports.handler = serverlessSDK.handler(userHandler.{{.Target.Handler}}, handlerWrapperArgs)
} catch (error) {
  module.exports.handler = serverlessSDK.handler(() => { throw error }, handlerWrapperArgs)
}
{{end -}}
`)

// Node renders wrappers for the nodejs runtimes.
type Node struct{}

func (Node) Name() string      { return "nodejs" }
func (Node) Extension() string { return "js" }

func (Node) Matches(runtime string) bool {
	return strings.HasPrefix(runtime, "nodejs")
}

func (Node) ValidHandler(name string) bool {
	return identifier.MatchString(name)
}

func (Node) Module(entry string) string {
	return entry + ".js"
}

func (Node) Render(w io.Writer, in Input) error {
	return nodeSource.Execute(w, in)
}
