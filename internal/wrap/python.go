package wrap

import (
	"io"
	"regexp"
	"strings"
)

var pythonIdentifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

var pythonSource = newSource("python", `import serverless_sdk
sdk = serverless_sdk.SDK(
    tenant_id='{{str .Identity.Tenant}}',
    application_name='{{str .Identity.App}}',
    app_uid='{{str .Identity.AppUID}}',
    tenant_uid='{{str .Identity.TenantUID}}',
    deployment_uid='{{str .Identity.DeploymentUID}}',
    service_name='{{str .Identity.Service}}',
    stage_name='{{str .Identity.Stage}}',
    plugin_version='{{str .Identity.PluginVersion}}'
)
handler_wrapper_kwargs = {'function_name': '{{str .Record.Name}}', 'timeout': {{.Record.Timeout}}}
{{if .Target.Failed -}}
def error_handler(event, context):
    raise Exception('{{str .Target.LoadError}}')
handler = sdk.handler(error_handler, **handler_wrapper_kwargs)
{{else -}}
try:
    user_handler = serverless_sdk.get_user_handler('{{str .Target.Entry}}.{{str .Target.Handler}}')
    handler = sdk.handler(user_handler, **handler_wrapper_kwargs)
except Exception as error:
    e = error
    def error_handler(event, context):
        raise e
    handler = sdk.handler(error_handler, **handler_wrapper_kwargs)
{{end -}}
`)

// Python renders wrappers for the python runtimes.
type Python struct{}

func (Python) Name() string      { return "python" }
func (Python) Extension() string { return "py" }

func (Python) Matches(runtime string) bool {
	return strings.HasPrefix(runtime, "python")
}

func (Python) ValidHandler(name string) bool {
	return pythonIdentifier.MatchString(name)
}

// Module resolves dotted module paths (path.to.some) to their file.
func (Python) Module(entry string) string {
	return strings.ReplaceAll(entry, ".", "/") + ".py"
}

func (Python) Render(w io.Writer, in Input) error {
	return pythonSource.Execute(w, in)
}
