package wrap

import (
	"io"
	"strings"
	"text/template"

	wetwire "github.com/lex00/wetwire-sls-go"
	"github.com/lex00/wetwire-sls-go/internal/service"
)

// Target is where a wrapper forwards invocations: either the user's handler or a
// recorded load failure that is raised when the function is invoked.
type Target struct {
	// Entry is the user module path, without extension
	Entry string
	// Handler is the exported handler name
	Handler string
	// LoadError is set when the user module could not be resolved
	LoadError string
}

// Ok targets the user handler exported by entry.
func Ok(entry, handler string) Target {
	return Target{Entry: entry, Handler: handler}
}

// LoadFailure targets a handler that raises message on every invocation.
func LoadFailure(message string) Target {
	return Target{LoadError: message}
}

// Failed reports whether the target is a load failure.
func (t Target) Failed() bool {
	return t.LoadError != ""
}

// Input is everything a renderer needs to produce one wrapper.
type Input struct {
	Identity service.Identity
	Record   wetwire.WrapperRecord
	Target   Target
}

// Family is a supported runtime family.
type Family interface {
	// Name identifies the family in logs
	Name() string
	// Extension is the source file extension, without the dot
	Extension() string
	// Matches reports whether the runtime string belongs to the family
	Matches(runtime string) bool
	// ValidHandler reports whether name can be exported by a user module
	ValidHandler(name string) bool
	// Module returns the user module file for entry, relative to the service
	Module(entry string) string
	// Render writes the wrapper source
	Render(w io.Writer, in Input) error
}

// Families lists the supported runtime families in match order.
var Families = []Family{Node{}, Python{}}

// ForRuntime returns the family handling runtime.
func ForRuntime(runtime string) (Family, bool) {
	for _, f := range Families {
		if f.Matches(runtime) {
			return f, true
		}
	}
	return nil, false
}

// singleQuoted escapes s for a single-quoted string literal. The same rules hold for
// JavaScript and Python.
var singleQuoted = strings.NewReplacer(
	`\`, `\\`,
	`'`, `\'`,
	"\n", `\n`,
	"\r", `\r`,
)

func newSource(name, text string) *template.Template {
	return template.Must(template.New(name).Funcs(template.FuncMap{
		"str": singleQuoted.Replace,
	}).Parse(text))
}
