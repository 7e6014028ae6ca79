package ingest

import (
	"context"
	"fmt"

	"intelligent-cd/internal/application/port/input"
	"intelligent-cd/internal/application/port/output"
	"intelligent-cd/internal/domain/entity"
	"intelligent-cd/internal/infrastructure/github"
)

var _ input.IngestRunner = (*UseCase)(nil)

type Config struct {
	Repo     string
	Branch   string
	DocsPath string
	Folders  []entity.FolderSpec
}

// UseCase ingests the configured documentation folders into their vector
// stores. One folder maps to one store named after it; the store is created
// on demand with the runtime's first embedding model. Per-file failures are
// logged and skipped so a single broken document never aborts the run.
type UseCase struct {
	stores  output.VectorStorePort
	inspect output.InspectPort
	fetcher output.ContentFetcherPort
	logger  output.LoggerPort
	cfg     Config
}

func New(
	stores output.VectorStorePort,
	inspect output.InspectPort,
	fetcher output.ContentFetcherPort,
	logger output.LoggerPort,
	cfg Config,
) *UseCase {
	if len(cfg.Folders) == 0 {
		cfg.Folders = entity.DefaultFolders()
	}
	if cfg.Branch == "" {
		cfg.Branch = "main"
	}
	if cfg.DocsPath == "" {
		cfg.DocsPath = "intelligent-cd-docs"
	}
	return &UseCase{stores: stores, inspect: inspect, fetcher: fetcher, logger: logger, cfg: cfg}
}

func (uc *UseCase) Run(ctx context.Context) (*entity.IngestReport, error) {
	uc.logger.Info("Starting ingestion", "folders", len(uc.cfg.Folders), "repo", uc.cfg.Repo)

	report := &entity.IngestReport{}
	for _, folder := range uc.cfg.Folders {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		uc.logger.Info("Processing folder", "folder", folder.Name, "files", len(folder.Files))
		report.Folders = append(report.Folders, uc.processFolder(ctx, folder))
	}

	uc.logger.Info("Ingestion complete", "attached", report.Attached(), "skipped", report.Skipped())
	return report, nil
}

func (uc *UseCase) processFolder(ctx context.Context, folder entity.FolderSpec) entity.FolderReport {
	fr := entity.FolderReport{Folder: folder.Name}

	if len(folder.Files) == 0 {
		uc.logger.Warn("No files configured for folder", "folder", folder.Name)
		return fr
	}

	storeID, err := uc.ensureStore(ctx, folder.Name)
	if err != nil {
		uc.logger.Error("Vector store setup failed, skipping folder", "folder", folder.Name, "error", err)
		fr.Error = err.Error()
		return fr
	}
	fr.VectorStoreID = storeID

	for _, file := range folder.Files {
		ingested := uc.ingestFile(ctx, storeID, folder.Name, file)
		fr.Files = append(fr.Files, ingested)
		if ingested.Error != "" {
			fr.Skipped++
			continue
		}
		fr.Attached++
	}
	return fr
}

// ensureStore resolves the store by exact name, creating it when absent.
// Concurrent runs can race here and both create the same name; the runtime
// keeps both and the next lookup picks one of them.
func (uc *UseCase) ensureStore(ctx context.Context, name string) (string, error) {
	stores, err := uc.stores.ListVectorStores(ctx)
	if err != nil {
		return "", fmt.Errorf("listing vector stores: %w", err)
	}
	for _, store := range stores {
		if store.Name == name {
			uc.logger.Info("Found existing vector store", "name", name, "storeId", store.ID)
			return store.ID, nil
		}
	}

	embedding, err := uc.embeddingModel(ctx)
	if err != nil {
		return "", err
	}

	created, err := uc.stores.CreateVectorStore(ctx, name, embedding)
	if err != nil {
		return "", fmt.Errorf("creating vector store %q: %w", name, err)
	}
	uc.logger.Info("Vector store created",
		"name", name, "storeId", created.ID, "embeddingModel", embedding.Identifier)
	return created.ID, nil
}

func (uc *UseCase) embeddingModel(ctx context.Context) (entity.Model, error) {
	models, err := uc.inspect.ListModels(ctx)
	if err != nil {
		return entity.Model{}, fmt.Errorf("listing models: %w", err)
	}
	for _, model := range models {
		if model.ModelType == entity.ModelTypeEmbedding {
			return model, nil
		}
	}
	return entity.Model{}, fmt.Errorf("no embedding model available in model registry")
}

func (uc *UseCase) ingestFile(ctx context.Context, storeID, folder, file string) entity.FileIngest {
	result := entity.FileIngest{File: file}

	url := github.RawURL(uc.cfg.Repo, uc.cfg.Branch, uc.cfg.DocsPath, folder, file)
	uc.logger.Info("Processing file", "file", file, "url", url)

	contents, err := uc.fetcher.Fetch(ctx, url)
	if err != nil {
		uc.logger.Error("Download failed, skipping file", "file", file, "error", err)
		result.Error = err.Error()
		return result
	}

	fileID, err := uc.stores.UploadFile(ctx, file, contents)
	if err != nil {
		uc.logger.Error("Upload failed, skipping file", "file", file, "error", err)
		result.Error = err.Error()
		return result
	}
	result.FileID = fileID

	if err := uc.stores.AttachFile(ctx, storeID, fileID); err != nil {
		uc.logger.Error("Attach failed, skipping file", "file", file, "error", err)
		result.Error = err.Error()
		return result
	}

	uc.logger.Debug("File attached", "file", file, "fileId", fileID, "storeId", storeID)
	return result
}
