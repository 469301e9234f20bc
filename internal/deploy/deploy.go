// Package deploy runs the instrumentation hooks of one deployment.
package deploy

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	wetwire "github.com/lex00/wetwire-sls-go"
	"github.com/lex00/wetwire-sls-go/internal/ifaces"
	"github.com/lex00/wetwire-sls-go/internal/inject"
	"github.com/lex00/wetwire-sls-go/internal/service"
	"github.com/lex00/wetwire-sls-go/internal/state"
	"github.com/lex00/wetwire-sls-go/internal/tracing"
	"github.com/lex00/wetwire-sls-go/internal/wrap"
)

// Deployment holds everything the hooks of one deployment share.
type Deployment struct {
	Identity service.Identity
	Service  *service.Service

	// ServiceDir holds the service sources; wrappers are written here
	ServiceDir string
	// Output receives the updated service declaration; empty skips writing it
	Output string
	// StatePath is the run state file
	StatePath string
	// SDK is the bundled monitoring SDK
	SDK fs.FS
	// VerifyHandlers turns missing user modules into load failures
	VerifyHandlers bool

	// Clients.
	Platform ifaces.Platform
	Provider ifaces.Provider

	Logger logrus.FieldLogger
	Tracer trace.Tracer
}

// Wrap generates the handler wrappers and records them in the run state. When wrapping
// fails everything written so far is cleaned up before the error is returned.
func (d *Deployment) Wrap(ctx context.Context) (result *wrap.Result, err error) {
	_, span := d.tracer().Start(ctx, "wetwire.wrap")
	defer span.End()
	defer func() { recordError(span, err) }()

	span.SetAttributes(
		attribute.String("service", d.Identity.Service),
		attribute.String("stage", d.Identity.Stage),
		attribute.String("deployment_uid", d.Identity.DeploymentUID),
	)

	gen := &wrap.Generator{
		Identity:       d.Identity,
		ServiceDir:     d.ServiceDir,
		SDK:            d.SDK,
		VerifyHandlers: d.VerifyHandlers,
		Logger:         d.logger(),
	}

	result, err = gen.Wrap(d.Service)
	if err == nil {
		err = d.persist(result)
	}
	if err != nil {
		d.rollback(result)
		return result, err
	}

	span.SetAttributes(
		attribute.Int("functions.wrapped", len(result.Records)),
		attribute.Int("functions.skipped", len(result.Skipped)),
	)
	return result, nil
}

// persist saves the run state and the updated declaration.
func (d *Deployment) persist(result *wrap.Result) error {
	st, err := result.State(d.ServiceDir)
	if err != nil {
		return err
	}
	if err := state.Save(d.StatePath, st); err != nil {
		return err
	}

	if d.Output == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(d.Output), 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := d.Service.Save(d.Output); err != nil {
		return fmt.Errorf("writing service declaration: %w", err)
	}
	return nil
}

// rollback removes whatever a failed wrap left behind.
func (d *Deployment) rollback(result *wrap.Result) {
	if result == nil {
		return
	}
	st, err := result.State(d.ServiceDir)
	if err == nil {
		_, err = wrap.Clean(st, d.logger())
	}
	if err == nil {
		err = state.Remove(d.StatePath)
	}
	if err != nil {
		d.logger().WithError(err).Warn("could not clean up after failed wrap")
	}
}

// Inject adds the log subscription filters and the log access role to t. It returns
// the logical ids of the added resources.
func (d *Deployment) Inject(ctx context.Context, t *wetwire.Template) (added []string, err error) {
	ctx, span := d.tracer().Start(ctx, "wetwire.inject")
	defer span.End()
	defer func() { recordError(span, err) }()

	injector := &inject.Injector{
		Service:  d.Service,
		Identity: d.Identity,
		Platform: d.Platform,
		Provider: d.Provider,
		Logger:   d.logger(),
	}

	filters, err := injector.Logs(ctx, t)
	if err != nil {
		return nil, fmt.Errorf("injecting log subscriptions: %w", err)
	}
	role, err := injector.Role(ctx, t)
	if err != nil {
		return filters, fmt.Errorf("injecting log access role: %w", err)
	}

	added = append(filters, role...)
	span.SetAttributes(attribute.StringSlice("resources.added", added))
	return added, nil
}

// Clean removes the artifacts recorded in the run state and the state itself. Calling
// it again is a no-op.
func (d *Deployment) Clean(ctx context.Context) (removed []string, err error) {
	_, span := d.tracer().Start(ctx, "wetwire.clean")
	defer span.End()
	defer func() { recordError(span, err) }()

	st, err := state.Load(d.StatePath)
	if err != nil {
		return nil, err
	}
	if st.Empty() {
		d.logger().Debug("nothing to clean")
		return nil, state.Remove(d.StatePath)
	}

	removed, err = wrap.Clean(st, d.logger())
	if err != nil {
		return removed, err
	}

	span.SetAttributes(attribute.Int("paths.removed", len(removed)))
	return removed, state.Remove(d.StatePath)
}

func (d *Deployment) tracer() trace.Tracer {
	if d.Tracer == nil {
		return otel.Tracer(tracing.Name)
	}
	return d.Tracer
}

func (d *Deployment) logger() logrus.FieldLogger {
	if d.Logger == nil {
		return logrus.StandardLogger()
	}
	return d.Logger
}

func recordError(span trace.Span, err error) {
	if err == nil {
		return
	}
	span.RecordError(err)

	var cfgErr *service.ConfigError
	if errors.As(err, &cfgErr) {
		span.SetAttributes(attribute.String("error.kind", "configuration"))
	}
	span.SetStatus(codes.Error, err.Error())
}
