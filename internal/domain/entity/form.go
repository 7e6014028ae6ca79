package entity

// FormRequest carries the operator's form inputs for resource generation and
// the downstream GitOps steps.
type FormRequest struct {
	Namespace           string   `json:"namespace"`
	HelmChartName       string   `json:"helm_chart_name"`
	WorkloadType        string   `json:"workload_type"`
	SupportingResources []string `json:"supporting_resources"`
}

type ApplyResult struct {
	OK     bool   `json:"ok"`
	Output string `json:"output"`
}
