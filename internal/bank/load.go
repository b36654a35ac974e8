package bank

import (
	"context"
	"embed"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/golang/glog"
)

// BuiltinPrefix selects one of the banks compiled into the binary.
const BuiltinPrefix = "builtin:"

//go:embed banks/*.json
var builtinFS embed.FS

// Builtins lists the names accepted after BuiltinPrefix.
func Builtins() []string {
	entries, err := builtinFS.ReadDir("banks")
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".json"))
	}
	sort.Strings(names)
	return names
}

// Load reads, validates, and normalizes the bank named by cfg.Source.
// A failure here leaves nothing to present; there is no retry.
func Load(ctx context.Context, cfg Config) (*Bank, error) {
	data, err := read(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("load question bank %s: %w", cfg.Source, err)
	}

	b, err := Parse(data, cfg.Source)
	if err != nil {
		return nil, err
	}

	if glog.V(1) {
		glog.Infof("loaded question bank %s: shape=%s steps=%d items=%d",
			cfg.Source, b.Shape, b.Len(), b.TotalItems())
	}
	return b, nil
}

func read(ctx context.Context, cfg Config) ([]byte, error) {
	src := cfg.Source
	switch {
	case strings.HasPrefix(src, BuiltinPrefix):
		name := strings.TrimPrefix(src, BuiltinPrefix)
		return builtinFS.ReadFile(path.Join("banks", name+".json"))
	case strings.HasPrefix(src, "http://"), strings.HasPrefix(src, "https://"):
		return fetch(ctx, src, cfg)
	default:
		return os.ReadFile(src)
	}
}

func fetch(ctx context.Context, url string, cfg Config) ([]byte, error) {
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}
	return io.ReadAll(resp.Body)
}
