package output

import (
	"context"

	"intelligent-cd/internal/domain/entity"
)

type VectorStorePort interface {
	ListVectorStores(ctx context.Context) ([]entity.VectorStore, error)
	RetrieveVectorStore(ctx context.Context, storeID string) (*entity.VectorStore, error)
	CreateVectorStore(ctx context.Context, name string, embedding entity.Model) (*entity.VectorStore, error)
	ListVectorStoreFiles(ctx context.Context, storeID string) ([]entity.VectorStoreFile, error)
	ListVectorDBs(ctx context.Context) ([]entity.VectorDB, error)

	UploadFile(ctx context.Context, filename string, contents []byte) (string, error)
	AttachFile(ctx context.Context, storeID, fileID string) error
}

// ProfileRegistry holds the resolved per-surface agent profiles assembled at
// startup.
type ProfileRegistry interface {
	Register(surface entity.Surface, profile entity.AgentProfile)
	Get(surface entity.Surface) (entity.AgentProfile, bool)
	List() []entity.Surface
}
