package output

import "context"

// ClusterPort runs kubectl against the target cluster. Every call returns the
// combined command output; err is non-nil when the binary is missing or exits
// nonzero.
type ClusterPort interface {
	Apply(ctx context.Context, namespace, manifest string) (string, error)
	ApplyClusterScoped(ctx context.Context, manifest string) (string, error)
	DeleteNamespace(ctx context.Context, namespace string) (string, error)
	CreateNamespace(ctx context.Context, namespace string) (string, error)
}

type ContentFetcherPort interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}
