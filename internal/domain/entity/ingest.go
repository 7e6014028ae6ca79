package entity

// FolderSpec names one docs folder in the source repository and the files to
// ingest from it. The folder name doubles as the target vector store name.
type FolderSpec struct {
	Name  string
	Files []string
}

func DefaultFolders() []FolderSpec {
	return []FolderSpec{
		{
			Name: "app-documentation",
			Files: []string{
				"01-intro.md",
				"02-deployment-constraints.md",
				"03-network-security.md",
				"04-routing-loadbalancing.md",
				"05-storage-architecture.md",
				"06-resource-monitoring.md",
				"07-deployment-procedures.md",
			},
		},
		{
			Name: "gitops-documentation",
			Files: []string{
				"deployment-configuration-best-practices.md",
				"namespace-resources-best-practices.md",
			},
		},
	}
}

type FileIngest struct {
	File   string
	FileID string
	Error  string
}

type FolderReport struct {
	Folder        string
	VectorStoreID string
	Attached      int
	Skipped       int
	Files         []FileIngest
	Error         string
}

type IngestReport struct {
	Folders []FolderReport
}

func (r IngestReport) Attached() int {
	n := 0
	for _, f := range r.Folders {
		n += f.Attached
	}
	return n
}

func (r IngestReport) Skipped() int {
	n := 0
	for _, f := range r.Folders {
		n += f.Skipped
	}
	return n
}
