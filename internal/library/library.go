// Package library scans a directory of MP3 files into items and stores
// computed artists lists back into them.
package library

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/handiism/autoartists/internal/audio"
	"github.com/handiism/autoartists/internal/config"
	"github.com/handiism/autoartists/internal/model"
	"github.com/samber/lo"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrNotDirectory is returned when the library root is missing or is not a
// directory.
var ErrNotDirectory = errors.New("library path is not a directory")

// Library is the set of MP3 files under a root directory.
//
// The first call to Items scans the root; later calls reuse the scanned
// items. Call Scan to pick up changes on disk.
//
// mu guards the item slice only. Each item is owned by one goroutine at a
// time: Store mutates the item it is given without locking.
type Library struct {
	root     string
	tagger   *audio.Tagger
	maxReads int
	logger   *zap.Logger

	mu      sync.RWMutex
	items   []*model.Item
	scanned bool
}

// New creates a Library from settings. A nil logger disables logging.
func New(settings *config.Settings, logger *zap.Logger) *Library {
	if logger == nil {
		logger = zap.NewNop()
	}
	maxReads := settings.MaxConcurrentReads
	if maxReads <= 0 {
		maxReads = runtime.NumCPU()
	}
	return &Library{
		root:     settings.LibraryPath,
		tagger:   audio.NewTagger(settings.ToTagConfig()),
		maxReads: maxReads,
		logger:   logger.Named("library"),
	}
}

// Root returns the library root directory.
func (l *Library) Root() string {
	return l.root
}

// Scan reads every .mp3 file under the root. Files whose tags cannot be read
// are logged and skipped. Items are sorted by path.
func (l *Library) Scan(ctx context.Context) ([]*model.Item, error) {
	info, err := os.Stat(l.root)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, l.root)
	}

	var paths []string
	err = filepath.WalkDir(l.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			l.logger.Warn("Skipping unreadable path", zap.String("path", path), zap.Error(err))
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".mp3") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	items := make([]*model.Item, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(l.maxReads)

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			item, err := l.tagger.ReadItem(path)
			if err != nil {
				l.logger.Warn("Failed to read tags", zap.String("path", path), zap.Error(err))
				return nil // Continue with other files
			}
			items[i] = item
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	items = lo.Compact(items)
	l.logger.Debug("Scanned library", zap.String("root", l.root), zap.Int("items", len(items)))

	l.mu.Lock()
	l.items = items
	l.scanned = true
	l.mu.Unlock()

	return items, nil
}

// Items returns the items matching q, scanning the library first if needed.
func (l *Library) Items(ctx context.Context, q Query) ([]*model.Item, error) {
	l.mu.RLock()
	items, scanned := l.items, l.scanned
	l.mu.RUnlock()

	if !scanned {
		var err error
		if items, err = l.Scan(ctx); err != nil {
			return nil, err
		}
	}

	return lo.Filter(items, func(item *model.Item, _ int) bool {
		return q.Match(item)
	}), nil
}

// Store writes artists to the item's file and, on success, to the item.
func (l *Library) Store(ctx context.Context, item *model.Item, artists []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := l.tagger.SaveArtists(item, artists); err != nil {
		return fmt.Errorf("failed to write tags to %s: %w", item.Path, err)
	}

	item.Artists = append([]string(nil), artists...)

	l.logger.Debug("Stored artists", zap.String("path", item.Path), zap.Strings("artists", artists))
	return nil
}
