package source

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var loadTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "card_offers_source_load_total",
	Help: "Source table load attempts by source name and outcome.",
}, []string{"source", "status"})

// Snapshot is one consistent view of every loaded source. Snapshots are
// immutable after Load returns; a reload produces a fresh one.
type Snapshot struct {
	LoadID   uuid.UUID
	LoadedAt time.Time

	// Catalog holds the reference card-catalog rows. It may be empty when
	// the catalog file is missing or unreadable; that is a renderable state,
	// not an error.
	Catalog []Row

	// Offers holds each offer source's rows, keyed by source name. A source
	// that failed to load contributes an empty slice.
	Offers map[string][]Row
}

// Loader reads the catalog and offer source files from a directory. Each
// source loads independently: one unreadable or malformed file degrades to an
// empty contribution and never fails the load as a whole.
type Loader struct {
	dir     string
	sources []Config
	logger  *slog.Logger
}

// NewLoader creates a loader over the given sources directory.
func NewLoader(dir string, sources []Config, logger *slog.Logger) *Loader {
	return &Loader{dir: dir, sources: sources, logger: logger}
}

// Load reads every configured source concurrently and returns the collected
// snapshot. It always succeeds; per-source failures are logged and isolated.
func (l *Loader) Load(ctx context.Context) *Snapshot {
	snap := &Snapshot{
		LoadID:   uuid.New(),
		LoadedAt: time.Now().UTC(),
		Offers:   make(map[string][]Row, len(l.sources)),
	}

	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		rows, err := l.loadFile(ctx, CatalogFile)
		if err != nil {
			l.logger.Warn("card catalog unavailable", slog.String("file", CatalogFile), slog.Any("error", err))
			loadTotal.WithLabelValues("catalog", "error").Inc()
			return
		}
		loadTotal.WithLabelValues("catalog", "ok").Inc()
		mu.Lock()
		snap.Catalog = rows
		mu.Unlock()
	}()

	for _, src := range l.sources {
		wg.Add(1)
		go func(src Config) {
			defer wg.Done()
			rows, err := l.loadFile(ctx, src.File)
			if err != nil {
				l.logger.Warn("offer source unavailable",
					slog.String("source", src.Name),
					slog.String("file", src.File),
					slog.Any("error", err),
				)
				loadTotal.WithLabelValues(src.Name, "error").Inc()
				rows = nil
			} else {
				loadTotal.WithLabelValues(src.Name, "ok").Inc()
			}
			mu.Lock()
			snap.Offers[src.Name] = rows
			mu.Unlock()
		}(src)
	}

	wg.Wait()

	l.logger.Info("sources loaded",
		slog.String("load_id", snap.LoadID.String()),
		slog.Int("catalog_rows", len(snap.Catalog)),
		slog.Int("sources", len(snap.Offers)),
	)
	return snap
}

func (l *Loader) loadFile(ctx context.Context, name string) ([]Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(filepath.Join(l.dir, name))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return decodeByExtension(name, f)
}

func decodeByExtension(name string, r io.Reader) ([]Row, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		return DecodeCSV(r)
	case ".xlsx":
		return DecodeXLSX(r)
	default:
		return nil, fmt.Errorf("unsupported source format %q", filepath.Ext(name))
	}
}
