package kubeflow

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"intelligent-cd/internal/application/port/output"
)

const (
	apiPrefix        = "/apis/v2beta1"
	listPageSize     = "200"
	maxResponseBytes = 4 << 20
)

// Client drives a Kubeflow Pipelines API server: pipeline upload, experiment
// lookup, run submission. Only the surface the ingestion driver needs.
type Client struct {
	endpoint string
	token    string
	http     *http.Client
	logger   output.LoggerPort
}

type Config struct {
	Endpoint      string
	BearerToken   string
	Timeout       time.Duration
	SkipTLSVerify bool
	Logger        output.LoggerPort
}

func DefaultConfig(endpoint string) Config {
	return Config{
		Endpoint: endpoint,
		Timeout:  30 * time.Second,
	}
}

func NewClient(cfg Config) *Client {
	transport := http.DefaultTransport
	if cfg.SkipTLSVerify {
		transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		endpoint: strings.TrimRight(cfg.Endpoint, "/"),
		token:    cfg.BearerToken,
		http:     &http.Client{Timeout: timeout, Transport: transport},
		logger:   cfg.Logger,
	}
}

type pipeline struct {
	PipelineID  string `json:"pipeline_id"`
	DisplayName string `json:"display_name"`
}

type pipelineList struct {
	Pipelines []pipeline `json:"pipelines"`
}

type pipelineVersion struct {
	PipelineVersionID string `json:"pipeline_version_id"`
	DisplayName       string `json:"display_name"`
}

type pipelineVersionList struct {
	Versions []pipelineVersion `json:"pipeline_versions"`
}

type experiment struct {
	ExperimentID string `json:"experiment_id"`
	DisplayName  string `json:"display_name"`
}

type experimentList struct {
	Experiments []experiment `json:"experiments"`
}

// FindPipeline looks a pipeline up by display name.
func (c *Client) FindPipeline(ctx context.Context, displayName string) (string, bool, error) {
	var list pipelineList
	if err := c.doJSON(ctx, http.MethodGet, apiPrefix+"/pipelines?page_size="+listPageSize, nil, &list); err != nil {
		return "", false, err
	}
	for _, p := range list.Pipelines {
		if p.DisplayName == displayName {
			return p.PipelineID, true, nil
		}
	}
	return "", false, nil
}

// UploadPipeline registers a compiled pipeline spec under the given name.
func (c *Client) UploadPipeline(ctx context.Context, displayName string, spec []byte) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("uploadfile", displayName+".yaml")
	if err != nil {
		return "", fmt.Errorf("build upload body: %w", err)
	}
	if _, err := part.Write(spec); err != nil {
		return "", fmt.Errorf("build upload body: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("build upload body: %w", err)
	}

	path := apiPrefix + "/pipelines/upload?name=" + url.QueryEscape(displayName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+path, &body)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("pipeline upload returned %d: %s", resp.StatusCode, truncate(string(data), 512))
	}

	var uploaded pipeline
	if err := json.Unmarshal(data, &uploaded); err != nil {
		return "", fmt.Errorf("decode upload response: %w", err)
	}
	if uploaded.PipelineID == "" {
		return "", fmt.Errorf("pipeline upload returned no pipeline_id")
	}
	return uploaded.PipelineID, nil
}

// LatestVersion returns the newest version of a pipeline. The API lists
// versions newest first.
func (c *Client) LatestVersion(ctx context.Context, pipelineID string) (string, error) {
	path := fmt.Sprintf("%s/pipelines/%s/versions?page_size=%s", apiPrefix, url.PathEscape(pipelineID), listPageSize)
	var list pipelineVersionList
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &list); err != nil {
		return "", err
	}
	if len(list.Versions) == 0 {
		return "", fmt.Errorf("pipeline %s has no versions", pipelineID)
	}
	return list.Versions[0].PipelineVersionID, nil
}

// FindExperiment looks an experiment up by display name.
func (c *Client) FindExperiment(ctx context.Context, displayName string) (string, bool, error) {
	var list experimentList
	if err := c.doJSON(ctx, http.MethodGet, apiPrefix+"/experiments?page_size="+listPageSize, nil, &list); err != nil {
		return "", false, err
	}
	for _, e := range list.Experiments {
		if e.DisplayName == displayName {
			return e.ExperimentID, true, nil
		}
	}
	return "", false, nil
}

func (c *Client) CreateExperiment(ctx context.Context, displayName, description string) (string, error) {
	body := map[string]string{
		"display_name": displayName,
		"description":  description,
	}
	var created experiment
	if err := c.doJSON(ctx, http.MethodPost, apiPrefix+"/experiments", body, &created); err != nil {
		return "", err
	}
	if created.ExperimentID == "" {
		return "", fmt.Errorf("experiment create returned no experiment_id")
	}
	return created.ExperimentID, nil
}

// CreateRun launches one run of a pipeline version inside an experiment.
func (c *Client) CreateRun(ctx context.Context, pipelineID, versionID, experimentID, displayName string) (string, error) {
	body := map[string]interface{}{
		"display_name":  displayName,
		"experiment_id": experimentID,
		"pipeline_version_reference": map[string]string{
			"pipeline_id":         pipelineID,
			"pipeline_version_id": versionID,
		},
	}
	var created struct {
		RunID string `json:"run_id"`
	}
	if err := c.doJSON(ctx, http.MethodPost, apiPrefix+"/runs", body, &created); err != nil {
		return "", err
	}
	if created.RunID == "" {
		return "", fmt.Errorf("run create returned no run_id")
	}
	return created.RunID, nil
}

// SubmitRequest names the pipeline and experiment a submission should land in.
type SubmitRequest struct {
	PipelineName          string
	ExperimentName        string
	ExperimentDescription string
	Spec                  []byte
}

// Submit makes sure the pipeline and experiment exist, then launches a run
// of the latest pipeline version. Returns the run ID.
func (c *Client) Submit(ctx context.Context, req SubmitRequest) (string, error) {
	pipelineID, found, err := c.FindPipeline(ctx, req.PipelineName)
	if err != nil {
		return "", fmt.Errorf("finding pipeline: %w", err)
	}
	if !found {
		pipelineID, err = c.UploadPipeline(ctx, req.PipelineName, req.Spec)
		if err != nil {
			return "", fmt.Errorf("uploading pipeline: %w", err)
		}
		c.logger.Info("Pipeline uploaded", "name", req.PipelineName, "pipelineId", pipelineID)
	}

	versionID, err := c.LatestVersion(ctx, pipelineID)
	if err != nil {
		return "", fmt.Errorf("resolving pipeline version: %w", err)
	}

	experimentID, found, err := c.FindExperiment(ctx, req.ExperimentName)
	if err != nil {
		return "", fmt.Errorf("finding experiment: %w", err)
	}
	if !found {
		experimentID, err = c.CreateExperiment(ctx, req.ExperimentName, req.ExperimentDescription)
		if err != nil {
			return "", fmt.Errorf("creating experiment: %w", err)
		}
		c.logger.Info("Experiment created", "name", req.ExperimentName, "experimentId", experimentID)
	}

	runName := "ingest-execution-" + time.Now().Format("20060102_150405")
	runID, err := c.CreateRun(ctx, pipelineID, versionID, experimentID, runName)
	if err != nil {
		return "", fmt.Errorf("creating run: %w", err)
	}

	c.logger.Info("Run submitted", "run", runName, "runId", runID)
	return runID, nil
}

func (c *Client) authorize(req *http.Request) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("kubeflow %s returned %d: %s", path, resp.StatusCode, truncate(string(data), 512))
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}
