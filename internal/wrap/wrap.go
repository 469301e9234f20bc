// Package wrap rewrites function entry points so that every invocation runs through the
// monitoring SDK.
//
// For each function whose runtime family is supported the generator renders a wrapper
// module named s_<key> that loads the user's handler and hands it to the SDK, points the
// function's handler at the wrapper and extends the packaging so the wrapper and the SDK
// are deployed with it:
//
//	functions:
//	  func:
//	    handler: handlerFile.handlerFunc   →   handler: s_func.handler
package wrap

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"

	wetwire "github.com/lex00/wetwire-sls-go"
	"github.com/lex00/wetwire-sls-go/internal/service"
)

const (
	// AssetsDir is the directory the SDK is staged into, relative to the service.
	AssetsDir = "serverless_sdk"
	// HandlerName is the symbol every wrapper exports.
	HandlerName = "handler"
	// EntryPrefix prefixes every wrapper module name.
	EntryPrefix = "s_"
	// DefaultTimeout is the function timeout in seconds when none is configured.
	DefaultTimeout = 6
)

// identifier matches the handler names any supported family can export.
var identifier = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// Generator produces wrappers for a service.
type Generator struct {
	// Identity is embedded in every wrapper
	Identity service.Identity
	// ServiceDir is the directory holding the service declaration and sources
	ServiceDir string
	// SDK is the bundled SDK tree; required once any function is wrapped
	SDK fs.FS
	// VerifyHandlers checks that user modules exist and wraps missing ones as load failures
	VerifyHandlers bool
	// Logger receives warnings
	Logger logrus.FieldLogger
}

// Result describes what a run produced.
type Result struct {
	// Records holds one record per wrapped function
	Records map[string]wetwire.WrapperRecord
	// Written lists wrapper files written to disk, relative to the service directory
	Written []string
	// Archives lists the artifacts wrappers were injected into
	Archives []string
	// AssetsDir is the staged SDK directory, empty when nothing was staged
	AssetsDir string
	// Skipped lists function keys whose runtime is not supported
	Skipped []string
}

// Wrap instruments every supported function of svc and updates svc in place. On error
// the returned result still lists everything written so far.
func (g *Generator) Wrap(svc *service.Service) (*Result, error) {
	result := &Result{Records: make(map[string]wetwire.WrapperRecord)}

	if g.SDK != nil {
		dst := filepath.Join(g.ServiceDir, AssetsDir)
		result.AssetsDir = dst
		if err := stageAssets(g.SDK, dst); err != nil {
			return result, err
		}
	}

	wrapped := make(map[string]bool)
	for _, key := range svc.FunctionKeys() {
		fn := svc.Functions[key]
		if fn == nil {
			continue
		}

		runtime := firstNonEmpty(fn.Runtime, svc.Provider.Runtime, DefaultRuntime)
		family, ok := ForRuntime(runtime)
		if !ok {
			g.logger().WithField("function", key).
				Warnf("Warning the Serverless Dashboard doesn't support the following runtime: %s", runtime)
			result.Skipped = append(result.Skipped, key)
			continue
		}

		if g.SDK == nil {
			return result, &service.ConfigError{
				Field:   "sdk-dir",
				Message: "monitoring SDK directory is required",
			}
		}

		record, err := g.record(svc, key, fn, runtime, family)
		if err != nil {
			return result, err
		}

		if err := g.emit(svc, fn, record, family, result); err != nil {
			return result, err
		}

		fn.Handler = record.Handler()
		result.Records[key] = record
		wrapped[family.Extension()] = true
	}

	if len(result.Records) > 0 && !svc.Individually(nil) {
		entries := []string{EntryPrefix + "*.js"}
		if wrapped[Python{}.Extension()] {
			entries = append(entries, EntryPrefix+"*.py")
		}
		entries = append(entries, AssetsDir+"/**")

		if svc.Package == nil {
			svc.Package = &service.Package{}
		}
		svc.Package.Include = service.MergeIncludes(svc.Package.Include, entries...)
	}

	return result, nil
}

// record builds the wrapper record for one function.
func (g *Generator) record(svc *service.Service, key string, fn *service.Function, runtime string, family Family) (wetwire.WrapperRecord, error) {
	entry, handler, err := ParseHandler(key, fn.Handler)
	if err != nil {
		return wetwire.WrapperRecord{}, err
	}
	if !family.ValidHandler(handler) {
		return wetwire.WrapperRecord{}, &service.ConfigError{
			Field:   "functions." + key + ".handler",
			Message: fmt.Sprintf("invalid %s handler function name %q", family.Name(), handler),
		}
	}

	timeout := DefaultTimeout
	switch {
	case fn.Timeout != nil:
		timeout = *fn.Timeout
	case svc.Provider.Timeout != nil:
		timeout = *svc.Provider.Timeout
	}

	name := fn.Name
	if name == "" {
		name = g.Identity.FunctionName(key)
	}

	return wetwire.WrapperRecord{
		Key:         key,
		Name:        name,
		Runtime:     runtime,
		Timeout:     timeout,
		Extension:   family.Extension(),
		EntryOrig:   entry,
		HandlerOrig: handler,
		EntryNew:    EntryPrefix + key,
		HandlerNew:  HandlerName,
	}, nil
}

// emit renders the wrapper and places it on disk or inside the function's artifact.
func (g *Generator) emit(svc *service.Service, fn *service.Function, record wetwire.WrapperRecord, family Family, result *Result) error {
	artifact := ""
	if fn.Package != nil {
		artifact = fn.Package.Artifact
	}

	target := Ok(record.EntryOrig, record.HandlerOrig)
	if g.VerifyHandlers && artifact == "" {
		target = g.verify(record, family)
	}

	var src bytes.Buffer
	if err := family.Render(&src, Input{Identity: g.Identity, Record: record, Target: target}); err != nil {
		return fmt.Errorf("rendering wrapper for %s: %w", record.Key, err)
	}

	if artifact != "" {
		path := g.resolve(artifact)
		files := map[string][]byte{record.FileName(): src.Bytes()}
		if err := InjectArchive(path, files, g.SDK); err != nil {
			return fmt.Errorf("injecting wrapper into %s: %w", artifact, err)
		}
		result.Archives = append(result.Archives, path)
		return nil
	}

	path := filepath.Join(g.ServiceDir, record.FileName())
	if err := os.WriteFile(path, src.Bytes(), 0644); err != nil {
		return fmt.Errorf("writing wrapper for %s: %w", record.Key, err)
	}
	result.Written = append(result.Written, record.FileName())

	if svc.Individually(fn) {
		if fn.Package == nil {
			fn.Package = &service.Package{}
		}
		fn.Package.Include = service.MergeIncludes(fn.Package.Include, record.FileName(), AssetsDir+"/**")
	}
	return nil
}

// verify checks that the user module exists beside the service declaration.
func (g *Generator) verify(record wetwire.WrapperRecord, family Family) Target {
	module := family.Module(record.EntryOrig)
	if _, err := os.Stat(filepath.Join(g.ServiceDir, filepath.FromSlash(module))); errors.Is(err, fs.ErrNotExist) {
		message := fmt.Sprintf("Cannot find module '%s' for handler %s.%s", module, record.EntryOrig, record.HandlerOrig)
		g.logger().WithField("function", record.Key).Warn(message)
		return LoadFailure(message)
	}
	return Ok(record.EntryOrig, record.HandlerOrig)
}

func (g *Generator) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(g.ServiceDir, path)
}

func (g *Generator) logger() logrus.FieldLogger {
	if g.Logger == nil {
		return logrus.StandardLogger()
	}
	return g.Logger
}

// ParseHandler splits a handler reference at its last dot into the module path and the
// exported handler name.
func ParseHandler(key, handler string) (entry, name string, err error) {
	i := strings.LastIndex(handler, ".")
	if handler == "" || i <= 0 || i == len(handler)-1 {
		return "", "", &service.ConfigError{
			Field:   "functions." + key + ".handler",
			Message: fmt.Sprintf("invalid handler %q, expected <module>.<function>", handler),
		}
	}

	entry, name = handler[:i], handler[i+1:]
	if !identifier.MatchString(name) {
		return "", "", &service.ConfigError{
			Field:   "functions." + key + ".handler",
			Message: fmt.Sprintf("invalid handler function name %q", name),
		}
	}
	return entry, name, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
