package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/MoMoCaTMeow/contract-news-rss/pkg/api"
	"github.com/MoMoCaTMeow/contract-news-rss/pkg/classify"
	"github.com/MoMoCaTMeow/contract-news-rss/pkg/logging"
	"github.com/MoMoCaTMeow/contract-news-rss/pkg/pipeline"
	"github.com/MoMoCaTMeow/contract-news-rss/pkg/ratelimit"
	"github.com/MoMoCaTMeow/contract-news-rss/pkg/reader"
	"github.com/MoMoCaTMeow/contract-news-rss/pkg/schedule"
	"github.com/MoMoCaTMeow/contract-news-rss/pkg/search"
)

var version = "dev"

const (
	_ = iota
	exitDotenvError
	exitLoadWorkflowFailed
	exitSecretsMissing
	exitLimitsInvalid
	exitClassifierSetupFailed
	exitRunFailed
	exitDaemonFailed
)

var (
	workflowFile string
	workDir      string
	daemon       bool
	skipPublish  bool
	loggingType  string
	logLevel     string
	showVersion  bool
)

func init() {
	flag.StringVar(
		&workflowFile,
		"workflow",
		"newsfeed.yaml",
		"workflow YAML file")
	flag.StringVar(
		&workDir,
		"workdir",
		"",
		"working directory for artifacts (defaults to the workflow file's directory)")
	flag.BoolVar(
		&daemon,
		"daemon",
		false,
		"keep running and execute the workflow at its scheduled time every day")
	flag.BoolVar(
		&skipPublish,
		"skip-publish",
		false,
		"run the workflow but skip the publish step")
	flag.StringVar(
		&loggingType,
		"logging-type",
		"tint",
		"logging type: json, text or tint")
	flag.StringVar(
		&logLevel,
		"log-level",
		"info",
		"logging level: debug, info, warn, error")
	flag.BoolVar(
		&showVersion,
		"version",
		false,
		"print version and exit")
}

func main() {
	flag.Parse()

	if showVersion {
		fmt.Println(version)
		os.Exit(0)
	}

	_ = logging.Initialize(loggingType, logLevel)

	includeEnv()

	workflow := loadWorkflow()
	secrets := loadSecrets()
	limits := loadLimits()

	sc := buildStepContext(workflow, secrets, limits)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if daemon {
		runDaemon(ctx, workflow, sc)
	} else {
		runOnce(ctx, sc)
	}

	slog.Info("done")
}

func runOnce(ctx context.Context, sc *pipeline.StepContext) {
	if err := pipeline.Run(ctx, sc); err != nil {
		slog.Error("workflow failed", "error", err)
		os.Exit(exitRunFailed)
	}
}

func runDaemon(ctx context.Context, workflow *api.Workflow, sc *pipeline.StepContext) {
	slog.Info("running in daemon mode", "schedule", workflow.Schedule)

	err := schedule.RunDaily(ctx, workflow.Schedule, func(jobCtx context.Context) error {
		// Each scheduled run starts from clean state.
		run := *sc
		run.State = pipeline.NewState()
		return pipeline.Run(jobCtx, &run)
	})
	if err != nil {
		slog.Error("daemon failed", "error", err)
		os.Exit(exitDaemonFailed)
	}
}

func buildStepContext(workflow *api.Workflow, secrets *api.Secrets, limits api.Limits) *pipeline.StepContext {
	classifier, err := classify.NewClient(secrets.GeminiAPIKey, workflow.Classifier.Model, workflow.Classifier.Prompt, limits.HTTPTimeout)
	if err != nil {
		slog.Error("failed to set up classifier", "error", err)
		os.Exit(exitClassifierSetupFailed)
	}

	dir := workDir
	if dir == "" {
		dir = workflow.Dir
	}

	return &pipeline.StepContext{
		WorkDir:  dir,
		Workflow: workflow,
		Searcher: search.NewClient(secrets.TavilyAPIKey, limits.HTTPTimeout),
		Extractors: map[string]pipeline.Extractor{
			api.ExtractorJina:  reader.NewJina(limits.ReaderTimeout),
			api.ExtractorLocal: reader.NewLocal(limits.ReaderTimeout, limits.UserAgent),
		},
		Classifier:  classifier,
		Limiter:     ratelimit.New(limits.HostInterval),
		SkipPublish: skipPublish,
		State:       pipeline.NewState(),
	}
}

func loadWorkflow() *api.Workflow {
	workflow, err := api.LoadWorkflow(workflowFile)
	if err != nil {
		slog.Error("failed to load workflow", "filename", workflowFile, "error", err)
		os.Exit(exitLoadWorkflowFailed)
	}
	return workflow
}

func loadSecrets() *api.Secrets {
	secrets, err := api.LoadSecrets()
	if err != nil {
		slog.Error("failed to load secrets", "error", err)
		os.Exit(exitSecretsMissing)
	}
	return secrets
}

func loadLimits() api.Limits {
	limits, err := api.LoadLimits()
	if err != nil {
		slog.Error("failed to load limits", "error", err)
		os.Exit(exitLimitsInvalid)
	}
	return limits
}

func includeEnv() {
	err := godotenv.Load()
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Error("failed to load .env", "error", err)
			os.Exit(exitDotenvError)
		}
		slog.Info("no .env file found")
	} else {
		slog.Info("using .env file")
	}
}
