package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path/filepath"
	"strings"

	"zepth/tender-evaluator/internal/config"
	"zepth/tender-evaluator/internal/services"
)

// Ingests a tender's reference documents (briefs, rubrics, legal terms) into
// Qdrant so evaluations of that tender can retrieve them as context.
//
//	go run scripts/ingest_documents.go -tender <tender-uuid> -dir ./reference_docs -type evaluation
func main() {
	tenderID := flag.String("tender", "", "tender UUID the documents belong to")
	dir := flag.String("dir", "./reference_docs", "directory of PDF reference documents")
	docType := flag.String("type", "evaluation", "document category (administrative, technical, legal, evaluation, submission)")
	replace := flag.Bool("replace", false, "delete the tender's existing chunks first")
	flag.Parse()

	if *tenderID == "" {
		log.Fatal("❌ -tender is required")
	}

	log.Println("🚀 Starting document ingestion...")

	cfg := config.Load()

	geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini: %v", err)
	}

	qdrantService, err := services.NewQdrantService(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
	}

	if err := qdrantService.InitCollection(); err != nil {
		log.Fatalf("❌ Failed to initialize collection: %v", err)
	}

	pdfParser := services.NewPDFParserService()
	chunker := services.NewTextChunker()

	ctx := context.Background()

	if *replace {
		log.Printf("🗑  Deleting existing chunks for tender %s...", *tenderID)
		if err := qdrantService.DeleteByTender(ctx, *tenderID); err != nil {
			log.Fatalf("❌ Failed to delete existing chunks: %v", err)
		}
	}

	entries, err := os.ReadDir(*dir)
	if err != nil {
		log.Fatalf("❌ Failed to read directory %s: %v", *dir, err)
	}

	successCount := 0
	failCount := 0

	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			continue
		}
		path := filepath.Join(*dir, entry.Name())

		log.Printf("\n📄 Processing: %s", entry.Name())

		text, err := pdfParser.ExtractText(path)
		if err != nil {
			log.Printf("   ❌ Failed to extract text: %v", err)
			failCount++
			continue
		}
		log.Printf("   ✅ Extracted %d characters", len(text))

		chunks := chunker.ChunkText(text, 1000, 200)
		log.Printf("   ✂️  Created %d chunks", len(chunks))

		stored := 0
		for i, chunk := range chunks {
			embedding, err := geminiService.GenerateEmbedding(ctx, chunk)
			if err != nil {
				log.Printf("   ❌ Failed to embed chunk %d: %v", i+1, err)
				continue
			}

			if err := qdrantService.UpsertChunk(ctx, *tenderID, *docType, chunk, embedding); err != nil {
				log.Printf("   ❌ Failed to store chunk %d: %v", i+1, err)
				continue
			}
			stored++

			if (i+1)%5 == 0 || i == len(chunks)-1 {
				log.Printf("   📊 Progress: %d/%d chunks stored", i+1, len(chunks))
			}
		}

		if stored == 0 && len(chunks) > 0 {
			log.Printf("   ❌ No chunks stored for %s", entry.Name())
			failCount++
			continue
		}

		log.Printf("   ✅ Successfully ingested %s", entry.Name())
		successCount++
	}

	log.Println("\n" + strings.Repeat("=", 60))
	log.Printf("📊 Ingestion Summary:")
	log.Printf("   ✅ Successful: %d documents", successCount)
	log.Printf("   ❌ Failed: %d documents", failCount)
	log.Println(strings.Repeat("=", 60))

	if failCount > 0 {
		log.Println("⚠️  Some documents failed to ingest. Please check the logs above.")
		os.Exit(1)
	}

	log.Println("✅ All documents ingested successfully!")
}
