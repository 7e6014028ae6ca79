package main

import (
	"context"
	_ "embed"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"intelligent-cd/internal/di"
	"intelligent-cd/internal/infrastructure/env"
	"intelligent-cd/internal/infrastructure/kubeflow"
	"intelligent-cd/internal/infrastructure/logger"
)

//go:embed pipeline.yaml
var pipelineSpec []byte

func main() {
	mode := flag.String("mode", "run", "run ingestion in-process, or submit the pipeline to Kubeflow")
	flag.Parse()

	envService := env.NewEnvService()

	switch *mode {
	case "run":
		os.Exit(runIngestion(envService))
	case "submit":
		os.Exit(submitPipeline(envService))
	default:
		log.Fatalf("Unknown mode %q (want run or submit)", *mode)
	}
}

func runIngestion(envService *env.EnvService) int {
	container, err := di.NewIngestContainer(di.Config{
		Env:     envService,
		BaseURL: envService.MustGet("REMOTE_BASE_URL"),
		Model:   envService.Get("INFERENCE_MODEL_ID"),
	})
	if err != nil {
		log.Fatalf("Initialization failed: %v", err)
	}
	defer container.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	report, err := container.Ingest.Run(ctx)
	if err != nil {
		container.Logger.Error("Ingestion aborted", "error", err)
		return 1
	}

	failed := false
	for _, folder := range report.Folders {
		if folder.Error != "" {
			failed = true
			fmt.Printf("%s: failed (%s)\n", folder.Folder, folder.Error)
			continue
		}
		fmt.Printf("%s: attached %d, skipped %d (vector store %s)\n",
			folder.Folder, folder.Attached, folder.Skipped, folder.VectorStoreID)
	}
	fmt.Printf("Completed processing all %d folders: %d attached, %d skipped\n",
		len(report.Folders), report.Attached(), report.Skipped())

	if failed {
		return 1
	}
	return 0
}

func submitPipeline(envService *env.EnvService) int {
	logAdapter, err := logger.NewLoggerAdapter(envService.GetWithDefault("LOG_LEVEL", "info"))
	if err != nil {
		log.Fatalf("Initialization failed: %v", err)
	}
	defer logAdapter.Close()

	kfCfg := kubeflow.DefaultConfig(envService.MustGet("KUBEFLOW_ENDPOINT"))
	kfCfg.BearerToken = envService.MustGet("BEARER_TOKEN")
	kfCfg.SkipTLSVerify = envService.GetBool("SKIP_SSL_VERIFY", false)
	kfCfg.Logger = logAdapter
	client := kubeflow.NewClient(kfCfg)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	fmt.Printf("Connecting to Data Science Pipelines: %s\n", kfCfg.Endpoint)
	runID, err := client.Submit(ctx, kubeflow.SubmitRequest{
		PipelineName:          "ingest-pipeline",
		ExperimentName:        "ingest-experiment",
		ExperimentDescription: "Runs our pipeline to ingest documents into the vector database",
		Spec:                  pipelineSpec,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Pipeline submission failed: %v\n", err)
		return 1
	}

	fmt.Printf("Pipeline execution started with run ID: %s\n", runID)
	return 0
}
