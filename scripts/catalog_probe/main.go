// Command catalog_probe reads every registered resource type from the catalog
// backend and reports how many records decode and which schema fields they
// leave absent. It exits non-zero when a type cannot be fetched.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/noah-isme/library-portal/internal/models"
	"github.com/noah-isme/library-portal/internal/repository"
	"github.com/noah-isme/library-portal/internal/service"
	"github.com/noah-isme/library-portal/pkg/config"
)

type probe struct {
	Type     string
	Records  int
	Absent   map[string]int
	Duration time.Duration
	Error    error
}

func main() {
	var (
		baseURL string
		types   string
		timeout time.Duration
	)

	flag.StringVar(&baseURL, "backend", config.DefaultBackendURL, "Catalog backend base URL")
	flag.StringVar(&types, "types", "", "Comma separated resource types (default: all registered)")
	flag.DurationVar(&timeout, "timeout", 10*time.Second, "HTTP client timeout")
	flag.Parse()

	schemas := service.DefaultSchemaRegistry()
	repo := repository.NewResourceRepository(strings.TrimRight(baseURL, "/"), &http.Client{Timeout: timeout}, schemas, nil, nil)

	targets := schemas.Types()
	if types != "" {
		targets = strings.Split(types, ",")
	}

	var failed int
	results := make([]probe, 0, len(targets))
	for _, t := range targets {
		res := probeType(context.Background(), repo, schemas.Fields(strings.TrimSpace(t)), strings.TrimSpace(t))
		if res.Error != nil {
			failed++
		}
		results = append(results, res)
	}

	printReport(results)
	if failed > 0 {
		log.Printf("%d of %d types failed", failed, len(results))
		os.Exit(1)
	}
}

func probeType(ctx context.Context, repo *repository.ResourceRepository, schema models.ResourceTypeSchema, resourceType string) probe {
	res := probe{Type: resourceType, Absent: make(map[string]int, len(schema))}
	start := time.Now()
	records, err := repo.FetchCollection(ctx, resourceType)
	res.Duration = time.Since(start)
	if err != nil {
		res.Error = err
		return res
	}
	res.Records = len(records)
	for _, record := range records {
		for _, f := range schema {
			if !record.Field(f.Name).Valid {
				res.Absent[f.Name]++
			}
		}
	}
	return res
}

func printReport(results []probe) {
	fmt.Println("Catalog Probe Report")
	fmt.Println("====================")
	for _, res := range results {
		status := "OK"
		if res.Error != nil {
			status = "ERROR"
		}
		fmt.Printf("[%s] %s (%s)\n", status, res.Type, res.Duration)
		if res.Error != nil {
			fmt.Printf("  Error: %v\n", res.Error)
			continue
		}
		fmt.Printf("  Records: %d\n", res.Records)
		for name, count := range res.Absent {
			fmt.Printf("  Absent %s: %d\n", name, count)
		}
	}
}
