package di

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"intelligent-cd/internal/application/port/input"
	"intelligent-cd/internal/application/port/output"
	"intelligent-cd/internal/application/service"
	"intelligent-cd/internal/infrastructure/cluster"
	"intelligent-cd/internal/infrastructure/github"
	"intelligent-cd/internal/infrastructure/httpapi"
	"intelligent-cd/internal/infrastructure/llamastack"
	"intelligent-cd/internal/infrastructure/logger"
	"intelligent-cd/internal/usecase/chat"
	"intelligent-cd/internal/usecase/form"
	"intelligent-cd/internal/usecase/ingest"
	"intelligent-cd/internal/usecase/rag"
	"intelligent-cd/internal/usecase/systemstatus"
)

const serviceName = "intelligent-cd"

const defaultDocsRepo = "https://github.com/alpha-hack-program/intelligent-cd-iberia.git"

type Container struct {
	Logger  output.LoggerPort
	Chat    input.ChatExecutor
	Form    input.FormExecutor
	RAG     input.RAGReporter
	Status  input.StatusReporter
	Ingest  input.IngestRunner
	Handler http.Handler
}

type Config struct {
	Env     output.ConfigPort
	BaseURL string
	Model   string
}

func NewContainer(ctx context.Context, cfg Config) (*Container, error) {
	log, err := logger.NewLoggerAdapter(cfg.Env.GetWithDefault("LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	timeout := cfg.Env.GetDuration("LLAMA_STACK_TIMEOUT", 30*time.Second)

	runtimeCfg := llamastack.DefaultConfig(cfg.BaseURL, cfg.Model)
	runtimeCfg.SkipTLSVerify = cfg.Env.GetBool("SKIP_SSL_VERIFY", false)
	runtimeCfg.Timeout = timeout
	runtimeCfg.Logger = log
	runtime := llamastack.NewClient(runtimeCfg)

	loader := service.NewSurfaceConfigLoader(cfg.Env, log, cfg.Model)
	resolver := service.NewToolResolver(runtime, log)
	assembler := service.NewProfileAssembler(loader, resolver, log)
	registry := service.NewProfileRegistry()
	assembler.AssembleAll(ctx, registry)

	kubectlCfg := cluster.DefaultConfig(log)
	kubectlCfg.KubectlPath = cfg.Env.GetWithDefault("KUBECTL_PATH", kubectlCfg.KubectlPath)
	kube := cluster.NewClient(kubectlCfg)

	storeID := cfg.Env.GetWithDefault("RAG_TEST_TAB_VECTOR_DB_ID", "app-documentation")

	repo, err := github.ParseRepo(cfg.Env.GetWithDefault("GIT_REPO", defaultDocsRepo))
	if err != nil {
		log.Close()
		return nil, fmt.Errorf("failed to parse GIT_REPO: %w", err)
	}
	fetcher := github.NewFetcher(timeout, log)

	chatUC := chat.New(runtime, registry, log, cfg.BaseURL)
	formUC := form.New(runtime, registry, kube, log, cfg.Env.Get("GITHUB_GITOPS_REPO"))
	ragUC := rag.New(runtime, runtime, log, rag.Config{
		DefaultStoreName: cfg.Env.Get("RAG_TEST_TAB_VECTOR_DB_NAME"),
		DefaultStoreID:   storeID,
	})
	statusUC := systemstatus.New(runtime, runtime, log, systemstatus.Config{
		BaseURL:         cfg.BaseURL,
		Model:           cfg.Model,
		ConfiguredStore: storeID,
	})
	ingestUC := ingest.New(runtime, runtime, fetcher, log, ingest.Config{
		Repo:     repo,
		Branch:   cfg.Env.GetWithDefault("GIT_BRANCH", "main"),
		DocsPath: cfg.Env.GetWithDefault("GIT_DOCS_PATH", "intelligent-cd-docs"),
	})

	handler := httpapi.NewRouter(httpapi.Config{
		ServiceName: serviceName,
		LogJSON:     cfg.Env.GetBool("LOG_JSON", true),
		Chat:        chatUC,
		Form:        formUC,
		RAG:         ragUC,
		Status:      statusUC,
		Logger:      log,
	})

	return &Container{
		Logger:  log,
		Chat:    chatUC,
		Form:    formUC,
		RAG:     ragUC,
		Status:  statusUC,
		Ingest:  ingestUC,
		Handler: handler,
	}, nil
}

func (c *Container) Close() {
	if c.Logger != nil {
		c.Logger.Close()
	}
}

// IngestContainer is the trimmed graph for the pipeline pod: no agent
// profiles, no kubectl, no HTTP surface.
type IngestContainer struct {
	Logger output.LoggerPort
	Ingest input.IngestRunner
}

func NewIngestContainer(cfg Config) (*IngestContainer, error) {
	log, err := logger.NewLoggerAdapter(cfg.Env.GetWithDefault("LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	timeout := cfg.Env.GetDuration("LLAMA_STACK_TIMEOUT", 30*time.Second)

	runtimeCfg := llamastack.DefaultConfig(cfg.BaseURL, cfg.Model)
	runtimeCfg.SkipTLSVerify = cfg.Env.GetBool("SKIP_SSL_VERIFY", false)
	runtimeCfg.Timeout = timeout
	runtimeCfg.Logger = log
	runtime := llamastack.NewClient(runtimeCfg)

	repo, err := github.ParseRepo(cfg.Env.GetWithDefault("GIT_REPO", defaultDocsRepo))
	if err != nil {
		log.Close()
		return nil, fmt.Errorf("failed to parse GIT_REPO: %w", err)
	}
	fetcher := github.NewFetcher(timeout, log)

	ingestUC := ingest.New(runtime, runtime, fetcher, log, ingest.Config{
		Repo:     repo,
		Branch:   cfg.Env.GetWithDefault("GIT_BRANCH", "main"),
		DocsPath: cfg.Env.GetWithDefault("GIT_DOCS_PATH", "intelligent-cd-docs"),
	})

	return &IngestContainer{Logger: log, Ingest: ingestUC}, nil
}

func (c *IngestContainer) Close() {
	if c.Logger != nil {
		c.Logger.Close()
	}
}
