package llamastack

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sashabaranov/go-openai"

	"intelligent-cd/internal/domain/entity"
)

func (c *Client) ListVectorStores(ctx context.Context) ([]entity.VectorStore, error) {
	resp, err := c.oai.ListVectorStores(ctx, openai.Pagination{})
	if err != nil {
		return nil, fmt.Errorf("list vector stores: %w", err)
	}

	stores := make([]entity.VectorStore, 0, len(resp.VectorStores))
	for _, vs := range resp.VectorStores {
		stores = append(stores, convertVectorStore(vs))
	}
	return stores, nil
}

func (c *Client) RetrieveVectorStore(ctx context.Context, storeID string) (*entity.VectorStore, error) {
	vs, err := c.oai.RetrieveVectorStore(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("retrieve vector store %s: %w", storeID, err)
	}
	store := convertVectorStore(vs)
	return &store, nil
}

// CreateVectorStore registers a store with an explicit embedding model. The
// embedding fields are llama-stack extensions of the compat endpoint that
// go-openai's request type cannot carry, so the call is issued directly.
func (c *Client) CreateVectorStore(ctx context.Context, name string, embedding entity.Model) (*entity.VectorStore, error) {
	payload := map[string]interface{}{
		"name":            name,
		"embedding_model": embedding.Identifier,
		"provider_id":     c.vectorProvider,
	}
	if dim := embedding.EmbeddingDimension(); dim > 0 {
		payload["embedding_dimension"] = dim
	}

	var vs openai.VectorStore
	if err := c.doJSON(ctx, http.MethodPost, openaiPathPrefix+"/vector_stores", payload, &vs); err != nil {
		return nil, fmt.Errorf("create vector store %s: %w", name, err)
	}
	store := convertVectorStore(vs)
	return &store, nil
}

func (c *Client) ListVectorStoreFiles(ctx context.Context, storeID string) ([]entity.VectorStoreFile, error) {
	resp, err := c.oai.ListVectorStoreFiles(ctx, storeID, openai.Pagination{})
	if err != nil {
		return nil, fmt.Errorf("list vector store files %s: %w", storeID, err)
	}

	files := make([]entity.VectorStoreFile, 0, len(resp.VectorStoreFiles))
	for _, f := range resp.VectorStoreFiles {
		files = append(files, entity.VectorStoreFile{
			ID:        f.ID,
			Status:    f.Status,
			CreatedAt: f.CreatedAt,
		})
	}
	return files, nil
}

func (c *Client) ListVectorDBs(ctx context.Context) ([]entity.VectorDB, error) {
	var resp struct {
		Data []entity.VectorDB `json:"data"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/v1/vector-dbs", nil, &resp); err != nil {
		return nil, fmt.Errorf("list vector dbs: %w", err)
	}
	return resp.Data, nil
}

func (c *Client) UploadFile(ctx context.Context, filename string, contents []byte) (string, error) {
	file, err := c.oai.CreateFileBytes(ctx, openai.FileBytesRequest{
		Name:    filename,
		Bytes:   contents,
		Purpose: openai.PurposeAssistants,
	})
	if err != nil {
		return "", fmt.Errorf("upload file %s: %w", filename, err)
	}
	return file.ID, nil
}

const (
	chunkSizeTokens    = 1024
	chunkOverlapTokens = 256
)

// AttachFile binds an uploaded file to a store with the fixed static
// chunking strategy. go-openai's attach request cannot express a chunking
// strategy, so the call is issued directly.
func (c *Client) AttachFile(ctx context.Context, storeID, fileID string) error {
	payload := map[string]interface{}{
		"file_id": fileID,
		"chunking_strategy": map[string]interface{}{
			"type": "static",
			"static": map[string]interface{}{
				"max_chunk_size_tokens": chunkSizeTokens,
				"chunk_overlap_tokens":  chunkOverlapTokens,
			},
		},
	}

	path := openaiPathPrefix + "/vector_stores/" + storeID + "/files"
	var resp struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	if err := c.doJSON(ctx, http.MethodPost, path, payload, &resp); err != nil {
		return fmt.Errorf("attach file %s to %s: %w", fileID, storeID, err)
	}
	return nil
}

func convertVectorStore(vs openai.VectorStore) entity.VectorStore {
	return entity.VectorStore{
		ID:         vs.ID,
		Name:       vs.Name,
		Status:     vs.Status,
		UsageBytes: vs.UsageBytes,
		CreatedAt:  vs.CreatedAt,
		FileCounts: entity.VectorStoreFileCounts{
			InProgress: vs.FileCounts.InProgress,
			Completed:  vs.FileCounts.Completed,
			Failed:     vs.FileCounts.Failed,
			Cancelled:  vs.FileCounts.Cancelled,
			Total:      vs.FileCounts.Total,
		},
	}
}
