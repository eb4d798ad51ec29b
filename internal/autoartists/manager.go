package autoartists

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/handiism/autoartists/internal/artists"
	"github.com/handiism/autoartists/internal/config"
	"github.com/handiism/autoartists/internal/library"
	"github.com/handiism/autoartists/internal/model"
	"github.com/samber/lo"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrConflictingOverwrite is returned when both overwrite flags are set.
	ErrConflictingOverwrite = errors.New("can't specify --overwrite and --no-overwrite")

	// ErrCanceled is returned by Apply when the user declines the changes.
	ErrCanceled = errors.New("canceled")
)

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents a progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// Store is where items come from and where computed artists go.
type Store interface {
	Items(ctx context.Context, q library.Query) ([]*model.Item, error)
	Store(ctx context.Context, item *model.Item, artists []string) error
}

// Mode is the answer to the "Confirm? (yes/no/select)" question.
type Mode int

const (
	ModeNo Mode = iota
	ModeYes
	ModeSelect
)

// ParseMode reads a typed answer. Anything but yes or select means no.
func ParseMode(answer string) Mode {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return ModeYes
	case "s", "select":
		return ModeSelect
	default:
		return ModeNo
	}
}

func (m Mode) String() string {
	switch m {
	case ModeYes:
		return "yes"
	case ModeSelect:
		return "select"
	default:
		return "no"
	}
}

// Confirmer asks the user which changes to apply.
type Confirmer interface {
	// ConfirmAll is asked once with the number of pending changes.
	ConfirmAll(ctx context.Context, n int) (Mode, error)
	// ConfirmItem is asked per change in select mode.
	ConfirmItem(ctx context.Context, change *model.Change) (bool, error)
}

// ResolveOverwrite combines the configured overwrite setting with the
// command-line flags. The flags win over the configuration.
func ResolveOverwrite(cfg, overwrite, noOverwrite bool) (bool, error) {
	switch {
	case overwrite && noOverwrite:
		return false, ErrConflictingOverwrite
	case overwrite:
		return true, nil
	case noOverwrite:
		return false, nil
	default:
		return cfg, nil
	}
}

// Manager computes and applies artists lists for library items.
type Manager struct {
	settings  *config.Settings
	store     Store
	extractor *artists.Extractor
	logger    *zap.Logger
	overwrite bool

	total   int32
	written int32

	onProgress func(ProgressEvent)
}

// NewManager creates a new Manager. A nil logger disables logging.
func NewManager(settings *config.Settings, store Store, logger *zap.Logger, onProgress func(ProgressEvent)) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		settings:   settings,
		store:      store,
		extractor:  settings.NewExtractor(logger.Named("artists")),
		logger:     logger.Named("autoartists"),
		overwrite:  settings.Overwrite,
		onProgress: onProgress,
	}
}

// SetOverwrite overrides the configured overwrite setting.
func (m *Manager) SetOverwrite(overwrite bool) {
	m.overwrite = overwrite
}

// Overwrite reports whether items that already have artists are processed.
func (m *Manager) Overwrite() bool {
	return m.overwrite
}

// Extractor returns the artist extractor used by the manager.
func (m *Manager) Extractor() *artists.Extractor {
	return m.extractor
}

// Plan is the outcome of computing artists for a query.
type Plan struct {
	// Found is the number of items considered.
	Found int

	// Unchanged holds items whose artists already match the computed list.
	Unchanged []*model.Change

	// Changes holds items whose artists would change.
	Changes []*model.Change
}

// Summary returns the one-line report printed before any prompt, e.g.
// "3 found in query, 1 had no changes".
func (p *Plan) Summary(overwrite bool) string {
	suffix := ""
	if !overwrite {
		suffix = " that would not be overwritten"
	}
	return fmt.Sprintf("%d found in query%s, %d had no changes", p.Found, suffix, p.Found-len(p.Changes))
}

// EmptyMessage explains a plan without changes.
func (p *Plan) EmptyMessage() string {
	if p.Found > 0 {
		return "Nothing to change"
	}
	return "No results found"
}

// Plan computes the artists list for every item matching q. When overwrite
// is off, items that already have artists are left out. Order follows the
// store.
func (m *Manager) Plan(ctx context.Context, q library.Query) (*Plan, error) {
	items, err := m.store.Items(ctx, q)
	if err != nil {
		return nil, err
	}

	if !m.overwrite {
		items = lo.Reject(items, func(item *model.Item, _ int) bool {
			return item.HasArtists()
		})
	}

	changes := make([]*model.Change, len(items))
	g, ctx := errgroup.WithContext(ctx)
	if m.settings.MaxConcurrentReads > 0 {
		g.SetLimit(m.settings.MaxConcurrentReads)
	}

	for i, item := range items {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			changes[i] = &model.Change{
				Item:    item,
				Artists: m.extractor.GetArtists(item.Artist, item.Title, item.Artists),
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	plan := &Plan{Found: len(items)}
	for _, change := range changes {
		if artists.ListsHaveSameStrings(change.Item.Artists, change.Artists) {
			plan.Unchanged = append(plan.Unchanged, change)
		} else {
			plan.Changes = append(plan.Changes, change)
		}
	}

	m.logger.Debug("Planned changes",
		zap.String("query", q.String()),
		zap.Int("found", plan.Found),
		zap.Int("changes", len(plan.Changes)))

	return plan, nil
}

// Apply asks confirmer which changes to write and stores them. It returns the
// number of items written and ErrCanceled when the user answers no. Failed
// writes are reported and skipped.
func (m *Manager) Apply(ctx context.Context, changes []*model.Change, confirmer Confirmer) (int, error) {
	if len(changes) == 0 {
		return 0, nil
	}

	mode, err := confirmer.ConfirmAll(ctx, len(changes))
	if err != nil {
		return 0, err
	}

	atomic.StoreInt32(&m.total, int32(len(changes)))
	atomic.StoreInt32(&m.written, 0)

	switch mode {
	case ModeYes:
		err = m.applyAll(ctx, changes)
	case ModeSelect:
		err = m.applySelected(ctx, changes, confirmer)
	default:
		m.progress(ProgressEvent{Message: "canceled", Level: LevelWarning})
		return 0, ErrCanceled
	}

	written := int(atomic.LoadInt32(&m.written))
	if err != nil {
		return written, err
	}

	m.progress(ProgressEvent{Message: fmt.Sprintf("Changed %d of %d items", written, len(changes)), Level: LevelSuccess})
	return written, nil
}

// GetProgress returns the number of items written by the running Apply and
// the number of changes it was given.
func (m *Manager) GetProgress() (written, total int32) {
	return atomic.LoadInt32(&m.written), atomic.LoadInt32(&m.total)
}

func (m *Manager) applyAll(ctx context.Context, changes []*model.Change) error {
	g, ctx := errgroup.WithContext(ctx)
	if m.settings.MaxConcurrentReads > 0 {
		g.SetLimit(m.settings.MaxConcurrentReads)
	}

	for _, change := range changes {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			m.write(ctx, change)
			return nil // Continue with other items
		})
	}

	return g.Wait()
}

func (m *Manager) applySelected(ctx context.Context, changes []*model.Change, confirmer Confirmer) error {
	for _, change := range changes {
		if err := ctx.Err(); err != nil {
			return err
		}

		ok, err := confirmer.ConfirmItem(ctx, change)
		if err != nil {
			return err
		}
		if !ok {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Skipped: %s", change.Item), Level: LevelVerbose})
			continue
		}
		m.write(ctx, change)
	}
	return nil
}

// write stores a change unless the item already carries the same artists.
func (m *Manager) write(ctx context.Context, change *model.Change) {
	if artists.ListsHaveSameStrings(change.Item.Artists, change.Artists) {
		return
	}

	if err := m.store.Store(ctx, change.Item, change.Artists); err != nil {
		m.logger.Error("Failed to store artists", zap.String("path", change.Item.Path), zap.Error(err))
		m.progress(ProgressEvent{Message: fmt.Sprintf("Error writing %s: %v", change.Item, err), Level: LevelError})
		return
	}

	atomic.AddInt32(&m.written, 1)
	m.progress(ProgressEvent{Message: fmt.Sprintf("Changed: %s", change), Level: LevelVerbose})
}

// Imported runs the import stage over freshly imported items: every item
// whose computed artists differ is written without confirmation. It does
// nothing unless auto is enabled.
func (m *Manager) Imported(ctx context.Context, items []*model.Item) (int, error) {
	if !m.settings.Auto {
		m.logger.Debug("Import stage disabled", zap.Int("items", len(items)))
		return 0, nil
	}

	written := 0
	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return written, err
		}

		result := m.extractor.GetArtists(item.Artist, item.Title, item.Artists)
		m.logger.Info("Autoartists: item has artists", zap.Stringer("item", item), zap.Strings("artists", item.Artists))

		if artists.ListsHaveSameStrings(item.Artists, result) {
			continue
		}
		if err := m.store.Store(ctx, item, result); err != nil {
			m.logger.Error("Failed to store artists", zap.String("path", item.Path), zap.Error(err))
			m.progress(ProgressEvent{Message: fmt.Sprintf("Error writing %s: %v", item, err), Level: LevelError})
			continue
		}
		written++
		m.logger.Info("Autoartists: added artists", zap.Stringer("item", item), zap.Strings("artists", result))
	}

	return written, nil
}

func (m *Manager) progress(event ProgressEvent) {
	if m.onProgress != nil {
		m.onProgress(event)
	}
}
