package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httplog"

	"intelligent-cd/internal/application/port/input"
	"intelligent-cd/internal/application/port/output"
	"intelligent-cd/internal/domain/entity"
)

type Config struct {
	ServiceName string
	LogJSON     bool
	Chat        input.ChatExecutor
	Form        input.FormExecutor
	RAG         input.RAGReporter
	Status      input.StatusReporter
	Logger      output.LoggerPort
}

type server struct {
	chat   input.ChatExecutor
	form   input.FormExecutor
	rag    input.RAGReporter
	status input.StatusReporter
	logger output.LoggerPort
}

// NewRouter builds the HTTP surface. Routes mirror the operator actions:
// chat, the four form steps plus the two appliers, RAG diagnostics and the
// system report. A malformed body is a 400; a failed operation stays a 200
// carrying the operation's own error text.
func NewRouter(cfg Config) http.Handler {
	s := &server{
		chat:   cfg.Chat,
		form:   cfg.Form,
		rag:    cfg.RAG,
		status: cfg.Status,
		logger: cfg.Logger,
	}

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "intelligent-cd"
	}
	requestLogger := httplog.NewLogger(serviceName, httplog.Options{
		JSON:    cfg.LogJSON,
		Concise: true,
	})

	r := chi.NewRouter()
	r.Use(httplog.RequestLogger(requestLogger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealthz)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/chat", s.handleChatSend)
		r.Get("/chat/config", s.handleChatConfig)
		r.Post("/chat/reset", s.handleChatReset)

		r.Route("/form", func(r chi.Router) {
			r.Post("/resources", s.handleFormResources)
			r.Post("/helm", s.handleFormHelm)
			r.Post("/github", s.handleFormGitHub)
			r.Post("/argocd", s.handleFormArgoCD)
			r.Post("/apply", s.handleFormApply)
			r.Post("/apply-argocd", s.handleFormApplyArgoCD)
		})

		r.Route("/rag", func(r chi.Router) {
			r.Post("/test", s.handleRAGTest)
			r.Get("/status", s.handleRAGStatus)
			r.Get("/databases", s.handleRAGDatabases)
		})

		r.Get("/status", s.handleSystemStatus)
	})

	return r
}

type errorResponse struct {
	Error string `json:"error"`
}

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Response string `json:"response"`
}

type helmRequest struct {
	ChartName string `json:"chart_name"`
	YAML      string `json:"yaml"`
}

type githubRequest struct {
	Path    string `json:"path"`
	Content string `json:"content"`
	Message string `json:"message"`
}

type applyRequest struct {
	Namespace         string `json:"namespace"`
	YAML              string `json:"yaml"`
	RecreateNamespace bool   `json:"recreate_namespace"`
}

type applyArgoCDRequest struct {
	YAML string `json:"yaml"`
}

type ragTestRequest struct {
	Query    string `json:"query"`
	Database string `json:"database"`
}

type yamlResponse struct {
	YAML string `json:"yaml"`
}

type outputResponse struct {
	Output string `json:"output"`
}

type reportResponse struct {
	Report string `json:"report"`
}

type databasesResponse struct {
	Databases []string `json:"databases"`
}

func (s *server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *server) handleChatSend(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if !s.decode(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, chatResponse{Response: s.chat.Send(r.Context(), req.Message)})
}

func (s *server) handleChatConfig(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.chat.Config())
}

func (s *server) handleChatReset(w http.ResponseWriter, r *http.Request) {
	s.chat.Reset()
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) handleFormResources(w http.ResponseWriter, r *http.Request) {
	var req entity.FormRequest
	if !s.decode(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, yamlResponse{YAML: s.form.GenerateResources(r.Context(), req)})
}

func (s *server) handleFormHelm(w http.ResponseWriter, r *http.Request) {
	var req helmRequest
	if !s.decode(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, outputResponse{Output: s.form.GenerateHelm(r.Context(), req.ChartName, req.YAML)})
}

func (s *server) handleFormGitHub(w http.ResponseWriter, r *http.Request) {
	var req githubRequest
	if !s.decode(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, outputResponse{Output: s.form.PushGitHub(r.Context(), req.Path, req.Content, req.Message)})
}

func (s *server) handleFormArgoCD(w http.ResponseWriter, r *http.Request) {
	var req entity.FormRequest
	if !s.decode(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, yamlResponse{YAML: s.form.GenerateArgoCD(r.Context(), req)})
}

func (s *server) handleFormApply(w http.ResponseWriter, r *http.Request) {
	var req applyRequest
	if !s.decode(w, r, &req) {
		return
	}
	result := s.form.ApplyYAML(r.Context(), req.Namespace, req.YAML, req.RecreateNamespace)
	writeJSON(w, http.StatusOK, result)
}

func (s *server) handleFormApplyArgoCD(w http.ResponseWriter, r *http.Request) {
	var req applyArgoCDRequest
	if !s.decode(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, s.form.ApplyArgoCD(r.Context(), req.YAML))
}

func (s *server) handleRAGTest(w http.ResponseWriter, r *http.Request) {
	var req ragTestRequest
	if !s.decode(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, reportResponse{Report: s.rag.Probe(r.Context(), req.Query, req.Database)})
}

func (s *server) handleRAGStatus(w http.ResponseWriter, r *http.Request) {
	database := r.URL.Query().Get("database")
	writeJSON(w, http.StatusOK, reportResponse{Report: s.rag.Status(r.Context(), database)})
}

func (s *server) handleRAGDatabases(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, databasesResponse{Databases: s.rag.Databases(r.Context())})
}

func (s *server) handleSystemStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, reportResponse{Report: s.status.Report(r.Context())})
}

func (s *server) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.logger.Warn("Malformed request body", "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed request body: " + err.Error()})
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
