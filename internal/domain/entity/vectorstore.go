package entity

// VectorStore is a store as listed on the runtime's OpenAI-compatible
// surface.
type VectorStore struct {
	ID         string
	Name       string
	Status     string
	UsageBytes int
	CreatedAt  int64
	FileCounts VectorStoreFileCounts
}

type VectorStoreFileCounts struct {
	InProgress int
	Completed  int
	Failed     int
	Cancelled  int
	Total      int
}

type VectorStoreFile struct {
	ID        string
	Status    string
	CreatedAt int64
}

// VectorDB is the runtime's native registration record for the same store,
// which carries provider and embedding details the compat surface omits.
type VectorDB struct {
	Identifier         string `json:"identifier"`
	ProviderID         string `json:"provider_id"`
	ProviderResourceID string `json:"provider_resource_id"`
	EmbeddingModel     string `json:"embedding_model"`
	EmbeddingDimension int    `json:"embedding_dimension"`
}

const ModelTypeEmbedding = "embedding"

type Model struct {
	Identifier string                 `json:"identifier"`
	ProviderID string                 `json:"provider_id"`
	ModelType  string                 `json:"model_type"`
	Metadata   map[string]interface{} `json:"metadata"`
}

func (m Model) EmbeddingDimension() int {
	v, ok := m.Metadata["embedding_dimension"]
	if !ok {
		return 0
	}
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	}
	return 0
}

type RAGQueryResult struct {
	Content     string
	DocumentIDs []string
	Scores      []float64
}
