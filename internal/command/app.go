// Where: internal/command/app.go
// What: CLI entrypoint logic.
// Why: Provide a testable command runner.
package command

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/sciurus/dockhub/internal/domain/registry"
	"github.com/sciurus/dockhub/internal/envutil"
	"github.com/sciurus/dockhub/internal/infra/audit"
	"github.com/sciurus/dockhub/internal/infra/config"
	"github.com/sciurus/dockhub/internal/infra/hubapi"
	"github.com/sciurus/dockhub/internal/infra/interaction"
	"github.com/sciurus/dockhub/internal/infra/render"
	"github.com/sciurus/dockhub/internal/infra/ui"
	"github.com/sciurus/dockhub/internal/meta"
	"github.com/sciurus/dockhub/internal/usecase/admin"
	"github.com/sciurus/dockhub/internal/version"
	"github.com/sirupsen/logrus"
)

// Dependencies holds all injected dependencies required for CLI command execution.
// Nil fields fall back to the process defaults.
type Dependencies struct {
	Out         io.Writer
	ErrOut      io.Writer
	In          *os.File
	Getenv      envutil.Getenv
	HTTPClient  *http.Client
	Confirmer   interaction.Confirmer
	NewRecorder RecorderFactory
	Now         func() time.Time
}

// RecorderFactory builds the audit recorder for the loaded config.
type RecorderFactory func(ctx context.Context, cfg config.AuditConfig, getenv envutil.Getenv) (audit.Recorder, error)

// CLI defines the command-line interface structure parsed by Kong.
type CLI struct {
	Repo    string `short:"r" help:"Repository to act on"`
	Group   string `short:"g" help:"Group to act on"`
	User    string `short:"u" help:"User to act on"`
	Action  string `short:"a" enum:"list,add,remove" default:"list" help:"Action to take (list/add/remove)"`
	Force   bool   `short:"f" help:"With --action remove and --repo but no --user, detach the group from the repository"`
	Yes     bool   `short:"y" help:"Do not ask for confirmation before removing"`
	Verbose bool   `short:"v" help:"Trace every API call on stderr"`
	EnvFile string `name:"env-file" help:"Path to .env file"`
	Org     string `help:"Organization to manage (overrides config and ${env_org})"`
	BaseURL string `name:"base-url" help:"Registry API base URL (overrides config and ${env_base_url})"`
	Output  string `short:"o" help:"Output format for list (json/yaml)"`
	Format  string `help:"Go template applied to each document printed by list"`

	Version kong.VersionFlag `help:"Show version information"`
}

func (c CLI) request() registry.OperationRequest {
	return registry.OperationRequest{
		Repo:   strings.TrimSpace(c.Repo),
		Group:  strings.TrimSpace(c.Group),
		User:   strings.TrimSpace(c.User),
		Action: registry.Action(c.Action),
		Force:  c.Force,
		Yes:    c.Yes,
	}
}

// Run parses args, wires the workflow, and executes one request.
// Returns 0 on success, 1 on error.
func Run(ctx context.Context, args []string, deps Dependencies) int {
	deps = withDefaults(deps)
	diag := diagnosticUI(deps.ErrOut)

	cli := CLI{}
	exited := false
	exitCode := 0
	parser, err := kong.New(&cli,
		kong.Name(cliName()),
		kong.Description("Manage registry group membership and repository access."),
		kong.Writers(deps.Out, deps.ErrOut),
		kong.Vars{
			"version":      version.GetVersion(),
			"env_org":      envName("ORG"),
			"env_base_url": envName("BASE_URL"),
		},
		kong.Exit(func(code int) {
			exited = true
			exitCode = code
		}),
	)
	if err != nil {
		return exitWithError(deps.ErrOut, err)
	}

	if _, err := parser.Parse(args); err != nil {
		if exited {
			return exitCode
		}
		return handleParseError(err, deps.ErrOut)
	}
	if exited {
		return exitCode
	}

	loadEnvFile(cli.EnvFile, diag)

	cfg, err := loadConfig(cli, deps.Getenv)
	if err != nil {
		return exitWithError(deps.ErrOut, err)
	}

	logger := newLogger(deps.ErrOut, cli.Verbose)
	if cli.Verbose {
		diag.Block("🔧", "Configuration", configRows(cfg))
	}

	workflow, err := buildWorkflow(ctx, cli, cfg, deps, logger, diag)
	if err != nil {
		return exitWithError(deps.ErrOut, err)
	}
	if err := workflow.Run(ctx, cli.request()); err != nil {
		return exitWithError(deps.ErrOut, err)
	}
	return 0
}

func withDefaults(deps Dependencies) Dependencies {
	if deps.Out == nil {
		deps.Out = os.Stdout
	}
	if deps.ErrOut == nil {
		deps.ErrOut = os.Stderr
	}
	if deps.Getenv == nil {
		deps.Getenv = os.Getenv
	}
	if deps.NewRecorder == nil {
		deps.NewRecorder = audit.NewRecorder
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return deps
}

// loadEnvFile loads --env-file, or .env in the current directory when it
// exists. Variables already set in the process win.
func loadEnvFile(path string, diag ui.UserInterface) {
	if path != "" {
		if err := godotenv.Load(path); err != nil {
			diag.Warn(fmt.Sprintf("Warning: failed to load env file %s: %v", path, err))
		}
		return
	}
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			diag.Warn(fmt.Sprintf("Warning: failed to load .env: %v", err))
		}
	}
}

// loadConfig layers the config file, DH_* overrides, and flags, then
// validates the result.
func loadConfig(cli CLI, getenv envutil.Getenv) (config.GlobalConfig, error) {
	configErr := func(err error) error {
		return registry.NewError(registry.KindConfig, "load config", "Invalid configuration", err)
	}

	path, err := config.GlobalConfigPath(getenv)
	if err != nil {
		return config.GlobalConfig{}, configErr(err)
	}
	cfg, err := config.LoadGlobalConfig(path)
	if err != nil {
		return config.GlobalConfig{}, configErr(err)
	}
	cfg = cfg.WithEnv(getenv)
	if v := strings.TrimSpace(cli.Org); v != "" {
		cfg.Org = v
	}
	if v := strings.TrimSpace(cli.BaseURL); v != "" {
		cfg.BaseURL = v
	}
	if v := strings.TrimSpace(cli.Output); v != "" {
		cfg.Output = strings.ToLower(v)
	}
	if err := cfg.Validate(); err != nil {
		return config.GlobalConfig{}, configErr(err)
	}
	return cfg, nil
}

func buildWorkflow(
	ctx context.Context,
	cli CLI,
	cfg config.GlobalConfig,
	deps Dependencies,
	logger logrus.FieldLogger,
	diag ui.UserInterface,
) (admin.Workflow, error) {
	timeout, err := cfg.RequestTimeout()
	if err != nil {
		return admin.Workflow{}, registry.NewError(registry.KindConfig, "load config", "Invalid configuration", err)
	}
	httpClient := deps.HTTPClient
	if httpClient != nil && timeout > 0 {
		withTimeout := *httpClient
		withTimeout.Timeout = timeout
		httpClient = &withTimeout
	}
	client, err := hubapi.New(hubapi.Options{
		BaseURL:    cfg.BaseURL,
		Org:        cfg.Org,
		HTTPClient: httpClient,
		Timeout:    timeout,
		Logger:     logger,
	})
	if err != nil {
		return admin.Workflow{}, registry.NewError(registry.KindConfig, "build client", "Invalid configuration", err)
	}

	renderer, err := render.New(cfg.Output, cli.Format)
	if err != nil {
		return admin.Workflow{}, registry.NewError(registry.KindUsage, "parse format", "Invalid --format template", err)
	}

	recorder, err := deps.NewRecorder(ctx, cfg.Audit, deps.Getenv)
	if err != nil {
		diag.Warn(fmt.Sprintf("Warning: audit trail disabled: %v", err))
		recorder = audit.Nop{}
	}

	return admin.Workflow{
		API:           client,
		Org:           client.Org(),
		UserInterface: legacyUI(deps.Out),
		Diagnostics:   diag,
		Out:           deps.Out,
		Renderer:      renderer,
		Recorder:      recorder,
		Confirm:       interaction.ConfirmFunc(deps.Confirmer, deps.In, cli.Yes),
		Getenv:        deps.Getenv,
		Now:           deps.Now,
	}, nil
}

func newLogger(out io.Writer, verbose bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	logger.SetLevel(logrus.WarnLevel)
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	}
	return logger
}

func configRows(cfg config.GlobalConfig) []ui.KeyValue {
	timeout := cfg.Timeout
	if timeout == "" {
		timeout = "default"
	}
	return []ui.KeyValue{
		{Key: "Base URL", Value: cfg.BaseURL},
		{Key: "Org", Value: cfg.Org},
		{Key: "Output", Value: cfg.Output},
		{Key: "Timeout", Value: timeout},
		{Key: "Audit", Value: cfg.Audit.Enabled()},
	}
}

// handleParseError provides user-friendly error messages for parse failures.
func handleParseError(err error, errOut io.Writer) int {
	msg := err.Error()
	if strings.Contains(msg, "expected string value") {
		ui := legacyUI(errOut)
		for _, flag := range []struct{ name, example string }{
			{"--group", "-g devs"},
			{"--user", "-u alice"},
			{"--repo", "-r app"},
			{"--env-file", "--env-file .env.prod"},
		} {
			if strings.Contains(msg, flag.name) {
				ui.Warn(fmt.Sprintf("✗ `%s` expects a value.", flag.name))
				ui.Info(fmt.Sprintf("Example: %s %s", cliName(), flag.example))
				return 1
			}
		}
	}
	return exitWithError(errOut, registry.NewError(registry.KindUsage, "parse arguments", msg, nil))
}

func envName(suffix string) string {
	return meta.EnvPrefix + "_" + suffix
}
