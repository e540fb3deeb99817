// Package specsource fetches an API specification document and turns it
// into the per-endpoint natural-language catalog description the pipeline
// consumes. Descriptions are generated once per source and cached forever:
// a go-cache hot layer in front of an on-disk store keyed by a name
// derived from the source URL's final path segment.
package specsource

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"next-action-be/pkg/llm"

	gocache "github.com/patrickmn/go-cache"
)

// Describer resolves spec URLs to cached endpoint descriptions.
// Concurrent first-time requests for the same source may both generate;
// the disk write is idempotent per key, so the race is benign duplication,
// not corruption.
type Describer struct {
	client   *http.Client
	provider llm.LLMProvider
	cacheDir string
	hot      *gocache.Cache
	logger   *log.Logger
}

func NewDescriber(provider llm.LLMProvider, cacheDir string, logger *log.Logger) *Describer {
	return &Describer{
		client:   &http.Client{Timeout: 30 * time.Second},
		provider: provider,
		cacheDir: cacheDir,
		hot:      gocache.New(gocache.NoExpiration, 10*time.Minute),
		logger:   logger,
	}
}

// Describe returns the catalog description for specURL, generating and
// caching it on first use. An unreachable or erroring source is a hard
// failure; there is no fallback beyond the description cache itself.
func (d *Describer) Describe(ctx context.Context, specURL string) (string, error) {
	key, err := cacheKey(specURL)
	if err != nil {
		return "", err
	}

	if cached, found := d.hot.Get(key); found {
		return cached.(string), nil
	}

	diskPath := filepath.Join(d.cacheDir, key)
	if raw, err := os.ReadFile(diskPath); err == nil {
		d.hot.Set(key, string(raw), gocache.NoExpiration)
		return string(raw), nil
	}

	spec, err := d.fetch(ctx, specURL)
	if err != nil {
		return "", err
	}

	description, err := d.provider.Generate(ctx, describePrompt(spec), llm.WithTemperature(0))
	if err != nil {
		return "", fmt.Errorf("generate endpoint descriptions: %w", err)
	}

	if err := os.MkdirAll(d.cacheDir, 0o755); err != nil {
		d.logger.Printf("[WARN] Cannot create description cache dir: %v", err)
	} else if err := os.WriteFile(diskPath, []byte(description), 0o644); err != nil {
		d.logger.Printf("[WARN] Cannot persist description for %s: %v", key, err)
	}
	d.hot.Set(key, description, gocache.NoExpiration)

	return description, nil
}

func (d *Describer) fetch(ctx context.Context, specURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", specURL, nil)
	if err != nil {
		return "", fmt.Errorf("create spec request: %w", err)
	}
	resp, err := d.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch spec %s: %w", specURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch spec %s: status %d", specURL, resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read spec body: %w", err)
	}
	return string(body), nil
}

// cacheKey derives the cache file name from the URL's final path segment.
func cacheKey(specURL string) (string, error) {
	u, err := url.Parse(specURL)
	if err != nil {
		return "", fmt.Errorf("parse spec url: %w", err)
	}
	seg := path.Base(u.Path)
	if seg == "." || seg == "/" || seg == "" {
		return "", fmt.Errorf("spec url %s has no usable path segment", specURL)
	}
	// Keep the name filesystem-safe.
	seg = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		}
		return '_'
	}, seg)
	return seg + ".desc.md", nil
}

func describePrompt(spec string) string {
	var b strings.Builder
	b.WriteString("Analyze this API specification and describe each endpoint in exactly one line.\n")
	b.WriteString("Group the endpoints by category using # headers.\n\n")
	b.WriteString("API Specification:\n```\n")
	b.WriteString(spec)
	b.WriteString("\n```\n\n")
	b.WriteString("Format your response like this:\n")
	b.WriteString("# Invoice Management\n")
	b.WriteString("- GET /invoices - Retrieve all invoices with optional filtering parameters\n")
	b.WriteString("- POST /invoices - Create a new invoice with customer and line item details\n\n")
	b.WriteString("# Payment Processing\n")
	b.WriteString("- GET /payments - List all payment transactions with status filtering\n")
	b.WriteString("- POST /payments - Process a new payment for an existing invoice\n\n")
	b.WriteString("Provide concise, clear descriptions for each endpoint grouped by logical business categories.")
	return b.String()
}
