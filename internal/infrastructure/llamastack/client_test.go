package llamastack

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"intelligent-cd/internal/domain/entity"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := DefaultConfig(srv.URL, "test-model")
	return NewClient(cfg), srv
}

func TestCreateAgent_SendsProfile(t *testing.T) {
	var captured map[string]interface{}

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/agents" || r.Method != http.MethodPost {
			t.Errorf("Unexpected request: %s %s", r.Method, r.URL.Path)
		}
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &captured); err != nil {
			t.Fatalf("Request body is not JSON: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"agent_id": "agent-123"}`)
	}))

	profile := entity.AgentProfile{
		Model:        "granite-3.3",
		Instructions: "You are a helpful assistant.",
		Tools: []entity.ToolSpec{
			{Name: "mcp::openshift"},
			{Name: "builtin::rag", Args: map[string]interface{}{"vector_db_ids": []string{"vs_1"}}},
		},
		MaxInferIters:  15,
		SamplingParams: entity.SamplingParams{"max_tokens": 4096},
	}

	agentID, err := client.CreateAgent(context.Background(), profile)
	if err != nil {
		t.Fatalf("CreateAgent failed: %v", err)
	}
	if agentID != "agent-123" {
		t.Errorf("Expected agent-123, got %s", agentID)
	}

	cfg, ok := captured["agent_config"].(map[string]interface{})
	if !ok {
		t.Fatalf("Expected agent_config object, got %v", captured)
	}
	if cfg["model"] != "granite-3.3" {
		t.Errorf("Expected model granite-3.3, got %v", cfg["model"])
	}

	toolgroups, ok := cfg["toolgroups"].([]interface{})
	if !ok || len(toolgroups) != 2 {
		t.Fatalf("Expected 2 toolgroups, got %v", cfg["toolgroups"])
	}
	if toolgroups[0] != "mcp::openshift" {
		t.Errorf("Expected bare string toolgroup, got %v", toolgroups[0])
	}
	structured, ok := toolgroups[1].(map[string]interface{})
	if !ok || structured["name"] != "builtin::rag" {
		t.Errorf("Expected structured rag toolgroup, got %v", toolgroups[1])
	}

	format, ok := cfg["response_format"].(map[string]interface{})
	if !ok || format["type"] != "json_schema" {
		t.Errorf("Expected json_schema response format, got %v", cfg["response_format"])
	}
}

func TestCreateSessionAndTurn(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.HasSuffix(r.URL.Path, "/turn"):
			body, _ := io.ReadAll(r.Body)
			if !strings.Contains(string(body), `"stream":false`) {
				t.Errorf("Expected non-streaming turn, got %s", body)
			}
			io.WriteString(w, `{
				"turn_id": "t1",
				"session_id": "s1",
				"output_message": {"role": "assistant", "content": "{\"thought\": \"x\", \"action\": null, \"answer\": \"done\"}"},
				"steps": [{"step_id": "st1", "step_type": "inference"}]
			}`)
		case strings.HasSuffix(r.URL.Path, "/session"):
			io.WriteString(w, `{"session_id": "s1"}`)
		default:
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
	}))

	sessionID, err := client.CreateSession(context.Background(), "agent-1", "OCP_Chat_Session")
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	if sessionID != "s1" {
		t.Errorf("Expected session s1, got %s", sessionID)
	}

	turn, err := client.CreateTurn(context.Background(), "agent-1", sessionID, []entity.Message{
		{Role: entity.RoleUser, Content: "hello"},
	})
	if err != nil {
		t.Fatalf("CreateTurn failed: %v", err)
	}
	if turn.OutputMessage.Content == "" {
		t.Error("Expected output content")
	}
	if len(turn.Steps) != 1 || turn.Steps[0].StepType != "inference" {
		t.Errorf("Expected one inference step, got %v", turn.Steps)
	}
}

func TestCreateTurn_EmptyOutputRejected(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"turn_id": "t1", "session_id": "s1", "output_message": {"role": "assistant", "content": ""}}`)
	}))

	if _, err := client.CreateTurn(context.Background(), "a", "s", nil); err == nil {
		t.Error("Expected error for turn without output content")
	}
}

func TestListVectorStores(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/openai/v1/vector_stores" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{
			"object": "list",
			"data": [
				{"id": "vs_1", "object": "vector_store", "name": "app-documentation", "status": "completed",
				 "file_counts": {"completed": 7, "total": 7}},
				{"id": "vs_2", "object": "vector_store", "name": "gitops-documentation", "status": "completed"}
			]
		}`)
	}))

	stores, err := client.ListVectorStores(context.Background())
	if err != nil {
		t.Fatalf("ListVectorStores failed: %v", err)
	}
	if len(stores) != 2 {
		t.Fatalf("Expected 2 stores, got %d", len(stores))
	}
	if stores[0].ID != "vs_1" || stores[0].Name != "app-documentation" {
		t.Errorf("Unexpected first store: %+v", stores[0])
	}
	if stores[0].FileCounts.Completed != 7 {
		t.Errorf("Expected 7 completed files, got %d", stores[0].FileCounts.Completed)
	}
}

func TestCreateVectorStore_SendsEmbeddingModel(t *testing.T) {
	var captured map[string]interface{}

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &captured)
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"id": "vs_9", "object": "vector_store", "name": "app-documentation"}`)
	}))

	embedding := entity.Model{
		Identifier: "granite-embedding-125m",
		ModelType:  entity.ModelTypeEmbedding,
		Metadata:   map[string]interface{}{"embedding_dimension": float64(768)},
	}

	store, err := client.CreateVectorStore(context.Background(), "app-documentation", embedding)
	if err != nil {
		t.Fatalf("CreateVectorStore failed: %v", err)
	}
	if store.ID != "vs_9" {
		t.Errorf("Expected vs_9, got %s", store.ID)
	}

	if captured["embedding_model"] != "granite-embedding-125m" {
		t.Errorf("Expected embedding_model in payload, got %v", captured)
	}
	if captured["embedding_dimension"] != float64(768) {
		t.Errorf("Expected embedding_dimension 768, got %v", captured["embedding_dimension"])
	}
	if captured["provider_id"] != "milvus" {
		t.Errorf("Expected provider_id milvus, got %v", captured["provider_id"])
	}
}

func TestAttachFile_StaticChunking(t *testing.T) {
	var captured map[string]interface{}

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/openai/v1/vector_stores/vs_1/files" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &captured)
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"id": "vsf_1", "status": "completed"}`)
	}))

	if err := client.AttachFile(context.Background(), "vs_1", "file-1"); err != nil {
		t.Fatalf("AttachFile failed: %v", err)
	}

	if captured["file_id"] != "file-1" {
		t.Errorf("Expected file_id file-1, got %v", captured["file_id"])
	}
	strategy, ok := captured["chunking_strategy"].(map[string]interface{})
	if !ok || strategy["type"] != "static" {
		t.Fatalf("Expected static chunking strategy, got %v", captured["chunking_strategy"])
	}
	static, ok := strategy["static"].(map[string]interface{})
	if !ok || static["max_chunk_size_tokens"] != float64(1024) || static["chunk_overlap_tokens"] != float64(256) {
		t.Errorf("Unexpected chunking window: %v", strategy["static"])
	}
}

func TestUploadFile(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/openai/v1/files" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("Expected multipart upload: %v", err)
		}
		if purpose := r.FormValue("purpose"); purpose != "assistants" {
			t.Errorf("Expected purpose assistants, got %s", purpose)
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"id": "file-42", "object": "file", "bytes": 12, "created_at": 1, "filename": "01-intro.md", "purpose": "assistants"}`)
	}))

	fileID, err := client.UploadFile(context.Background(), "01-intro.md", []byte("# Hello docs"))
	if err != nil {
		t.Fatalf("UploadFile failed: %v", err)
	}
	if fileID != "file-42" {
		t.Errorf("Expected file-42, got %s", fileID)
	}
}

func TestCompletionProbe(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/openai/v1/chat/completions" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{
			"id": "cmpl-1", "object": "chat.completion", "model": "test-model",
			"choices": [{"index": 0, "message": {"role": "assistant", "content": "Hello back"}, "finish_reason": "stop"}]
		}`)
	}))

	reply, err := client.CompletionProbe(context.Background(), "Hello")
	if err != nil {
		t.Fatalf("CompletionProbe failed: %v", err)
	}
	if reply != "Hello back" {
		t.Errorf("Expected Hello back, got %q", reply)
	}
}

func TestQuery_FlattensContent(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/tool-runtime/rag-tool/query" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{
			"content": [{"type": "text", "text": "knowledge_search results. "}, {"type": "text", "text": "Use rolling updates."}],
			"metadata": {"document_ids": ["doc-1"], "scores": [0.87]}
		}`)
	}))

	result, err := client.Query(context.Background(), "deployment strategy", []string{"vs_1"})
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if result.Content != "knowledge_search results. Use rolling updates." {
		t.Errorf("Unexpected flattened content: %q", result.Content)
	}
	if len(result.DocumentIDs) != 1 || result.DocumentIDs[0] != "doc-1" {
		t.Errorf("Unexpected document ids: %v", result.DocumentIDs)
	}
}

func TestDoJSON_APIError(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail": "agent not found"}`, http.StatusNotFound)
	}))

	_, err := client.Version(context.Background())
	if err == nil {
		t.Fatal("Expected error for 404 response")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Expected APIError, got %T: %v", err, err)
	}
	if apiErr.Status != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", apiErr.Status)
	}
}
