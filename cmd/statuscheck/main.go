package main

import (
	"os"

	"github.com/fatih/color"

	"techgear-support-be/internal/config"
	"techgear-support-be/pkg/catalog"
	"techgear-support-be/pkg/database"
)

// Statuscheck verifies the deployment prerequisites: catalog file, API keys
// and database reachability. Exit code 1 when anything required is missing.
func main() {
	cfg := config.Load()
	failed := false

	color.Cyan("🔍 TechGear support backend status check\n")

	// Catalog file
	cat, err := catalog.Load(cfg.Chat.CatalogPath)
	if err != nil {
		color.Red("✗ Catalog: %v", err)
		failed = true
	} else {
		color.Green("✓ Catalog: %s (%d products)", cfg.Chat.CatalogPath, len(cat.ProductNames()))
		for _, name := range cat.ProductNames() {
			color.White("  - %s", name)
		}
	}

	// LLM / embedding credentials
	if cfg.Ai.LLMProvider == "gemini" || cfg.Ai.EmbeddingProvider == "gemini" {
		if cfg.Keys.GoogleGemini == "" {
			color.Yellow("! GEMINI_API_KEY is not set; model calls will fail, keyword fallback only")
		} else {
			color.Green("✓ Gemini API key configured")
		}
	}
	if cfg.Ai.LLMProvider == "ollama" || cfg.Ai.EmbeddingProvider == "ollama" {
		color.Green("✓ Ollama configured at %s", cfg.Ai.OllamaBaseURL)
	}

	// Database
	if cfg.Database.Connection == "" {
		color.Yellow("! DB_CONNECTION_STRING is not set; retrieval disabled, registry answers only")
	} else if _, err := database.NewGormDBFromDSN(cfg.Database.Connection); err != nil {
		color.Red("✗ Database: %v", err)
		failed = true
	} else {
		color.Green("✓ Database reachable")
	}

	// SMTP for escalation alerts
	if cfg.SMTP.Host == "" {
		color.Yellow("! SMTP_HOST is not set; escalation emails disabled")
	} else {
		color.Green("✓ SMTP configured (%s:%d)", cfg.SMTP.Host, cfg.SMTP.Port)
	}

	if failed {
		color.Red("\nStatus check FAILED")
		os.Exit(1)
	}
	color.Green("\nStatus check passed")
}
