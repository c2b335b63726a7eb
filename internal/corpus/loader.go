// Package corpus produces documents for indexing from files on disk. YAML and
// TOML files hold any number of documents; HTML and plain-text files hold one
// document each.
package corpus

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/doquery/doquery/internal/document"
	"github.com/doquery/doquery/pkg/logger"
)

type decodeFunc func(path string, data []byte) ([]*document.Document, error)

var decoders = map[string]decodeFunc{
	".yaml": decodeYAML,
	".yml":  decodeYAML,
	".toml": decodeTOML,
	".html": decodeHTML,
	".htm":  decodeHTML,
	".txt":  decodeText,
}

// Supported reports whether path has an extension the loader understands.
func Supported(path string) bool {
	_, ok := decoders[strings.ToLower(filepath.Ext(path))]
	return ok
}

// Loader reads corpus files with a bounded number of concurrent workers.
type Loader struct {
	workers int
	logger  *slog.Logger
}

func NewLoader(workers int) *Loader {
	if workers <= 0 {
		workers = 1
	}
	return &Loader{
		workers: workers,
		logger:  logger.WithComponent("corpus"),
	}
}

// Load reads every path, expanding directories (non-recursively) to their
// supported files. Documents come back in path order, then file order. The
// first failing file aborts the load.
func (l *Loader) Load(ctx context.Context, paths ...string) ([]*document.Document, error) {
	files, err := expand(paths)
	if err != nil {
		return nil, err
	}
	perFile := make([][]*document.Document, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(l.workers)
	for i, path := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			docs, err := loadFile(path)
			if err != nil {
				return err
			}
			perFile[i] = docs
			l.logger.Debug("corpus file loaded", "path", path, "documents", len(docs))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []*document.Document
	for _, docs := range perFile {
		out = append(out, docs...)
	}
	l.logger.Info("corpus loaded", "files", len(files), "documents", len(out))
	return out, nil
}

func loadFile(path string) ([]*document.Document, error) {
	decode, ok := decoders[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return nil, fmt.Errorf("unsupported corpus file %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading corpus file %s: %w", path, err)
	}
	docs, err := decode(path, data)
	if err != nil {
		return nil, fmt.Errorf("parsing corpus file %s: %w", path, err)
	}
	return docs, nil
}

func expand(paths []string) ([]string, error) {
	files := make([]string, 0, len(paths))
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("reading corpus path: %w", err)
		}
		if !info.IsDir() {
			files = append(files, path)
			continue
		}
		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, fmt.Errorf("reading corpus directory %s: %w", path, err)
		}
		names := make([]string, 0, len(entries))
		for _, entry := range entries {
			if !entry.IsDir() && Supported(entry.Name()) {
				names = append(names, entry.Name())
			}
		}
		sort.Strings(names)
		for _, name := range names {
			files = append(files, filepath.Join(path, name))
		}
	}
	return files, nil
}
