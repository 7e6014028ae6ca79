package prompts

import (
	_ "embed"
)

//go:embed react_chat.txt
var DefaultChatPrompt string

//go:embed form_resources.txt
var DefaultGenerateResourcesPrompt string

//go:embed form_helm.txt
var DefaultGenerateHelmPrompt string

//go:embed form_github.txt
var DefaultPushGitHubPrompt string

//go:embed form_argocd.txt
var DefaultGenerateArgoCDPrompt string
