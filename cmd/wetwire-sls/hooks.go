package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/lex00/wetwire-sls-go/internal/config"
	"github.com/lex00/wetwire-sls-go/internal/deploy"
	"github.com/lex00/wetwire-sls-go/internal/platform"
	"github.com/lex00/wetwire-sls-go/internal/service"
	"github.com/lex00/wetwire-sls-go/internal/state"
	"github.com/lex00/wetwire-sls-go/internal/tracing"
)

// hookOptions are the flags shared by the deploy hook commands.
type hookOptions struct {
	servicePath string
	stage       string
	region      string
	stateFile   string
	format      string
}

func (o *hookOptions) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.servicePath, "service", "c", "serverless.yml", "Resolved service declaration")
	cmd.Flags().StringVarP(&o.stage, "stage", "s", "", "Deployment stage (default: provider.stage or dev)")
	cmd.Flags().StringVarP(&o.region, "region", "r", "", "Deployment region (default: provider.region, AWS_REGION or us-east-1)")
	cmd.Flags().StringVar(&o.stateFile, "state-file", "", "Run state file (default: per-service file in the user cache directory)")
	cmd.Flags().StringVarP(&o.format, "format", "f", "text", "Output format: text or json")
}

// serviceDir returns the absolute directory of the service declaration.
func (o *hookOptions) serviceDir() (string, error) {
	abs, err := filepath.Abs(o.servicePath)
	if err != nil {
		return "", err
	}
	return filepath.Dir(abs), nil
}

// statePath resolves the run state file.
func (o *hookOptions) statePath(cfg *config.Config) (string, error) {
	if o.stateFile != "" {
		return o.stateFile, nil
	}
	dir, err := o.serviceDir()
	if err != nil {
		return "", err
	}
	return state.DefaultPath(cfg.StateDir, dir)
}

// runtimeEnv is the ambient setup every command needs.
type runtimeEnv struct {
	cfg      *config.Config
	logger   *logrus.Logger
	shutdown func(context.Context) error
}

func newRuntimeEnv() (*runtimeEnv, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger, err := cfg.NewLogger(os.Stderr)
	if err != nil {
		return nil, err
	}
	shutdown, err := tracing.Init(cfg.Trace, os.Stderr)
	if err != nil {
		return nil, err
	}
	return &runtimeEnv{cfg: cfg, logger: logger, shutdown: shutdown}, nil
}

func (e *runtimeEnv) close() {
	if err := e.shutdown(context.Background()); err != nil {
		e.logger.WithError(err).Warn("error shutting down tracer provider")
	}
}

// newDeployment loads the service declaration and builds the deployment for a hook.
func newDeployment(ctx context.Context, env *runtimeEnv, opts hookOptions, sdkDir string, withProvider bool) (*deploy.Deployment, error) {
	svc, err := service.Load(opts.servicePath)
	if err != nil {
		return nil, fmt.Errorf("loading service declaration: %w", err)
	}

	region := opts.region
	if region == "" && svc.Provider.Region == "" {
		region = env.cfg.Region
	}

	id := service.NewIdentity(svc, service.Overrides{
		Stage:         opts.stage,
		Region:        region,
		AppUID:        env.cfg.AppUID,
		TenantUID:     env.cfg.TenantUID,
		DeploymentUID: env.cfg.DeploymentUID,
		PluginVersion: getVersion(),
	})
	if err := id.Validate(); err != nil {
		return nil, err
	}

	dir, err := opts.serviceDir()
	if err != nil {
		return nil, err
	}
	statePath, err := opts.statePath(env.cfg)
	if err != nil {
		return nil, err
	}

	var sdk fs.FS
	if sdkDir == "" {
		sdkDir = env.cfg.SDKDir
	}
	if sdkDir != "" {
		sdk = os.DirFS(sdkDir)
	}

	client := platform.NewClient(platform.Options{
		BaseURL:   env.cfg.PlatformURL,
		AccessKey: env.cfg.AccessKey,
		RCFile:    env.cfg.RCFile,
		Timeout:   env.cfg.PlatformTimeout,
		Logger:    env.logger,
	})

	d := &deploy.Deployment{
		Identity:   id,
		Service:    svc,
		ServiceDir: dir,
		StatePath:  statePath,
		SDK:        sdk,
		Platform:   client,
		Logger:     env.logger.WithField("service", id.Service),
	}

	if withProvider {
		p, err := deploy.NewProvider(ctx, client, id, env.logger)
		if err != nil {
			return nil, err
		}
		d.Provider = p
	}
	return d, nil
}

func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
