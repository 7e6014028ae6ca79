package llamastack

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"intelligent-cd/internal/domain/entity"
)

func (c *Client) Query(ctx context.Context, query string, vectorDBIDs []string) (*entity.RAGQueryResult, error) {
	payload := map[string]interface{}{
		"content":       query,
		"vector_db_ids": vectorDBIDs,
	}

	var resp struct {
		Content  json.RawMessage `json:"content"`
		Metadata struct {
			DocumentIDs []string  `json:"document_ids"`
			Scores      []float64 `json:"scores"`
		} `json:"metadata"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/v1/tool-runtime/rag-tool/query", payload, &resp); err != nil {
		return nil, fmt.Errorf("rag query: %w", err)
	}

	return &entity.RAGQueryResult{
		Content:     entity.FlattenContent(resp.Content),
		DocumentIDs: resp.Metadata.DocumentIDs,
		Scores:      resp.Metadata.Scores,
	}, nil
}
