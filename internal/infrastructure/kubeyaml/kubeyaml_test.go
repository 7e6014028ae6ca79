package kubeyaml

import "testing"

func TestSplit_MultiDocument(t *testing.T) {
	manifest := `---
apiVersion: v1
kind: Service
metadata:
  name: web
---
apiVersion: apps/v1
kind: Deployment
metadata:
  name: web
---
apiVersion: v1
kind: ConfigMap
metadata:
  name: web-config
`
	docs := Split(manifest)
	if len(docs) != 3 {
		t.Fatalf("Expected 3 documents, got %d", len(docs))
	}
	if docs[0] == "" || docs[0][0] == '-' {
		t.Errorf("Expected separator stripped from document, got %q", docs[0])
	}
}

func TestSplit_DropsEmptyAndCommentOnlyDocuments(t *testing.T) {
	manifest := `# generated manifests
---

---
# just a note
# nothing else
---
kind: Namespace
metadata:
  name: demo
`
	docs := Split(manifest)
	if len(docs) != 1 {
		t.Fatalf("Expected 1 document, got %d: %v", len(docs), docs)
	}
}

func TestSplit_SingleDocumentWithoutSeparator(t *testing.T) {
	docs := Split("kind: Pod\nmetadata:\n  name: p\n")
	if len(docs) != 1 {
		t.Fatalf("Expected 1 document, got %d", len(docs))
	}
}

func TestSplit_KeepsEmbeddedDashes(t *testing.T) {
	manifest := "kind: ConfigMap\ndata:\n  sep: \"a---b\"\n"
	docs := Split(manifest)
	if len(docs) != 1 {
		t.Fatalf("Expected inline dashes not to split, got %d documents", len(docs))
	}
}

func TestInspect(t *testing.T) {
	doc := `apiVersion: apps/v1
kind: Deployment
metadata:
  name: nginx
  namespace: demo
spec:
  replicas: 2
`
	summary, err := Inspect(doc)
	if err != nil {
		t.Fatalf("Inspect failed: %v", err)
	}
	if summary.Kind != "Deployment" || summary.Name != "nginx" || summary.Namespace != "demo" {
		t.Errorf("Unexpected summary: %+v", summary)
	}
	if summary.String() != "Deployment/nginx (namespace demo)" {
		t.Errorf("Unexpected summary string: %q", summary.String())
	}
}

func TestInspect_ClusterScoped(t *testing.T) {
	summary, err := Inspect("kind: Namespace\nmetadata:\n  name: demo\n")
	if err != nil {
		t.Fatalf("Inspect failed: %v", err)
	}
	if summary.String() != "Namespace/demo" {
		t.Errorf("Unexpected summary string: %q", summary.String())
	}
}

func TestInspect_Malformed(t *testing.T) {
	if _, err := Inspect("kind: [unclosed"); err == nil {
		t.Error("Expected error for malformed document")
	}
}
