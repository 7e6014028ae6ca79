package rag

import (
	"context"
	"fmt"
	"strings"

	"intelligent-cd/internal/application/port/input"
	"intelligent-cd/internal/application/port/output"
	"intelligent-cd/internal/domain/entity"
)

var _ input.RAGReporter = (*UseCase)(nil)

var sectionBar = strings.Repeat("=", 60)

type Config struct {
	DefaultStoreName string
	DefaultStoreID   string
}

// UseCase renders the read-only RAG diagnostics. Every section catches its
// own failure and renders it inline, so a broken store never blanks the
// whole report.
type UseCase struct {
	stores  output.VectorStorePort
	ragTool output.RAGToolPort
	logger  output.LoggerPort
	cfg     Config
}

func New(stores output.VectorStorePort, ragTool output.RAGToolPort, logger output.LoggerPort, cfg Config) *UseCase {
	if cfg.DefaultStoreID == "" {
		cfg.DefaultStoreID = "app-documentation"
	}
	return &UseCase{stores: stores, ragTool: ragTool, logger: logger, cfg: cfg}
}

func (uc *UseCase) defaultStore() string {
	if uc.cfg.DefaultStoreName != "" {
		return uc.cfg.DefaultStoreName
	}
	return uc.cfg.DefaultStoreID
}

// resolveStore maps a selector (store name or ID) to the store's ID. An
// unmatched selector is passed through, assumed to already be an ID.
func (uc *UseCase) resolveStore(ctx context.Context, selector string) (string, *entity.VectorStore) {
	stores, err := uc.stores.ListVectorStores(ctx)
	if err != nil {
		uc.logger.Warn("Vector store listing failed, using selector as ID", "error", err)
		return selector, nil
	}
	for i := range stores {
		if stores[i].Name == selector || stores[i].ID == selector {
			return stores[i].ID, &stores[i]
		}
	}
	return selector, nil
}

func (uc *UseCase) Probe(ctx context.Context, query, storeName string) string {
	selector := strings.TrimSpace(storeName)
	if selector == "" {
		selector = uc.defaultStore()
	}
	storeID, _ := uc.resolveStore(ctx, selector)

	uc.logger.Info("RAG query", "database", storeID, "query", query)

	result, err := uc.ragTool.Query(ctx, query, []string{storeID})
	if err != nil {
		uc.logger.Error("RAG query failed", "database", storeID, "error", err)
		return fmt.Sprintf(
			"❌ RAG Query failed!\n\n**Database:** %s\n**Query:**\n%s\n\n**Error:**\n%v",
			storeID, query, err)
	}

	return fmt.Sprintf(
		"✅ RAG Query executed successfully!\n\n**Database:** %s\n**Query:**\n%s\n\n**Result:**\n```\n%s\n```",
		storeID, query, formatResult(result))
}

func formatResult(result *entity.RAGQueryResult) string {
	content := result.Content
	if content == "" {
		content = "(no content returned)"
	}
	if len(result.DocumentIDs) == 0 {
		return content
	}
	return fmt.Sprintf("%s\n\nDocuments: %s", content, strings.Join(result.DocumentIDs, ", "))
}

// Databases lists store names for the UI dropdown. Falls back to the
// configured default so the dropdown is never empty.
func (uc *UseCase) Databases(ctx context.Context) []string {
	stores, err := uc.stores.ListVectorStores(ctx)
	if err != nil {
		uc.logger.Error("Error listing vector databases", "error", err)
		return []string{uc.defaultStore()}
	}
	if len(stores) == 0 {
		return []string{uc.defaultStore()}
	}

	names := make([]string, 0, len(stores))
	for _, store := range stores {
		name := store.Name
		if name == "" {
			name = store.ID
		}
		names = append(names, name)
	}
	return names
}

func (uc *UseCase) Status(ctx context.Context, storeName string) string {
	selector := strings.TrimSpace(storeName)
	if selector == "" {
		selector = uc.defaultStore()
	}

	uc.logger.Info("Getting detailed RAG status information", "database", selector)

	lines := []string{
		sectionBar,
		"📚 RAG STATUS REPORT",
		sectionBar,
		fmt.Sprintf("**Target Database:** %s", selector),
		"",
	}

	stores, storesErr := uc.stores.ListVectorStores(ctx)

	lines = append(lines, "🗄️ **Vector Databases:**")
	switch {
	case storesErr != nil:
		lines = append(lines, fmt.Sprintf("   ❌ Error listing vector databases: %v", storesErr))
	case len(stores) == 0:
		lines = append(lines, "   • No vector databases found")
	default:
		for _, store := range stores {
			marker := ""
			if store.Name == selector || store.ID == selector {
				marker = " ✅ (Currently configured)"
			}
			lines = append(lines, fmt.Sprintf("   • %s (%s)%s", store.Name, store.ID, marker))
		}
	}
	lines = append(lines, "")

	storeID := selector
	for i := range stores {
		if stores[i].Name == selector || stores[i].ID == selector {
			storeID = stores[i].ID
			break
		}
	}

	lines = append(lines, fmt.Sprintf("🔍 **Detailed Information for '%s':**", selector))
	if detail, err := uc.stores.RetrieveVectorStore(ctx, storeID); err != nil {
		lines = append(lines, fmt.Sprintf("   ❌ Error getting database info: %v", err))
	} else {
		lines = append(lines,
			fmt.Sprintf("   • Id: %s", detail.ID),
			fmt.Sprintf("   • Name: %s", detail.Name),
			fmt.Sprintf("   • Status: %s", detail.Status),
			fmt.Sprintf("   • Usage Bytes: %d", detail.UsageBytes),
			fmt.Sprintf("   • File Counts: %d completed, %d in progress, %d failed",
				detail.FileCounts.Completed, detail.FileCounts.InProgress, detail.FileCounts.Failed),
		)
	}
	lines = append(lines, "")

	lines = append(lines, fmt.Sprintf("📄 **Documents in '%s':**", selector))
	if files, err := uc.stores.ListVectorStoreFiles(ctx, storeID); err != nil {
		lines = append(lines, fmt.Sprintf("   ❌ Error accessing document information: %v", err))
	} else if len(files) == 0 {
		lines = append(lines, "   • No documents attached")
	} else {
		lines = append(lines, fmt.Sprintf("   • Document Count: %d", len(files)))
		for _, file := range files {
			lines = append(lines, fmt.Sprintf("     • %s: %s", file.ID, file.Status))
		}
	}
	lines = append(lines, "")

	lines = append(lines, "🔧 **Provider Information:**")
	if dbs, err := uc.stores.ListVectorDBs(ctx); err != nil {
		lines = append(lines, fmt.Sprintf("   ❌ Error getting provider info: %v", err))
	} else {
		providers := make([]string, 0, len(dbs))
		seen := make(map[string]bool)
		for _, db := range dbs {
			if db.ProviderID != "" && !seen[db.ProviderID] {
				seen[db.ProviderID] = true
				providers = append(providers, db.ProviderID)
			}
		}
		if len(providers) == 0 {
			lines = append(lines, "   • No provider information available")
		} else {
			lines = append(lines, "   • Configured Providers:")
			for _, provider := range providers {
				lines = append(lines, fmt.Sprintf("     • %s", provider))
			}
		}
	}
	lines = append(lines, "")

	lines = append(lines, "🧪 **Functionality Test:**")
	if result, err := uc.ragTool.Query(ctx, "test query", []string{storeID}); err != nil {
		lines = append(lines, fmt.Sprintf("   ❌ RAG query test failed: %v", err))
	} else if result.Content == "" {
		lines = append(lines, "   ⚠️ RAG query returned empty result")
	} else {
		lines = append(lines,
			"   ✅ RAG query functionality is working",
			fmt.Sprintf("   • Test query returned: %d characters", len(result.Content)),
		)
	}

	lines = append(lines, "", sectionBar)
	return strings.Join(lines, "\n")
}
