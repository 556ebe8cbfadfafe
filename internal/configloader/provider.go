package configloader

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"github.com/yaklabco/inkwell/internal/logging"
	"github.com/yaklabco/inkwell/pkg/config"
)

// DefaultDebounce is the quiet period Watch waits after a file event
// before reloading; editors often write a file in several steps.
const DefaultDebounce = 200 * time.Millisecond

// Provider is a config.Provider backed by Load. Unlike the editor core it
// is safe for concurrent use, because Watch reloads from its own goroutine.
type Provider struct {
	opts   LoadOptions
	logger *log.Logger

	mu     sync.RWMutex
	result *LoadResult
}

var _ config.Provider = (*Provider)(nil)

// NewProvider loads settings once and returns a Provider for them.
func NewProvider(ctx context.Context, opts LoadOptions, logger *log.Logger) (*Provider, error) {
	if logger == nil {
		logger = logging.Default()
	}

	result, err := Load(ctx, opts)
	if err != nil {
		return nil, err
	}

	return &Provider{opts: opts, logger: logger, result: result}, nil
}

// Settings returns the current settings.
func (p *Provider) Settings() config.Settings {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.result.Settings
}

// Sources returns the files the current settings were loaded from.
func (p *Provider) Sources() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return slices.Clone(p.result.LoadedFrom)
}

// Reload re-runs discovery and loading. On error the previous settings
// stay in effect.
func (p *Provider) Reload(ctx context.Context) error {
	result, err := Load(ctx, p.opts)
	if err != nil {
		return err
	}

	p.mu.Lock()
	p.result = result
	p.mu.Unlock()

	p.logger.Debug("reloaded settings", logging.FieldConfig, result.LoadedFrom)
	return nil
}

// Watch reloads settings when a config file is written, created, or
// renamed, and calls onChange with the new settings after each successful
// reload. Events are debounced. Failed reloads are logged and keep the
// previous settings. Watching stops when ctx is cancelled.
func (p *Provider) Watch(ctx context.Context, debounce time.Duration, onChange func(config.Settings)) error {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	for _, dir := range p.watchDirs() {
		if err := fsw.Add(dir); err != nil {
			_ = fsw.Close()
			return fmt.Errorf("watching directory %s: %w", dir, err)
		}
	}

	go p.loop(ctx, fsw, debounce, onChange)
	return nil
}

// watchDirs returns the directories whose files can change the settings.
// Directories are watched rather than files so that atomic saves (write
// to a temp file, rename over) are seen.
func (p *Provider) watchDirs() []string {
	p.mu.RLock()
	paths := *p.result.Paths
	p.mu.RUnlock()

	var dirs []string
	add := func(dir string) {
		if dir != "" && !slices.Contains(dirs, dir) {
			dirs = append(dirs, dir)
		}
	}

	for _, path := range []string{paths.User, paths.Project, paths.Explicit} {
		if path != "" {
			add(filepath.Dir(path))
		}
	}
	if paths.Project == "" && p.opts.WorkingDir != "" && !p.opts.IgnoreProjectConfig {
		add(p.opts.WorkingDir)
	}

	return dirs
}

func (p *Provider) loop(ctx context.Context, fsw *fsnotify.Watcher, debounce time.Duration, onChange func(config.Settings)) {
	defer func() { _ = fsw.Close() }()

	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			if !p.isRelevant(event) {
				continue
			}
			timer.Reset(debounce)

		case <-timer.C:
			if err := p.Reload(ctx); err != nil {
				p.logger.Warn("config reload failed; keeping previous settings", logging.FieldError, err)
				continue
			}
			if onChange != nil {
				onChange(p.Settings())
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			p.logger.Warn("config watch error", logging.FieldError, err)
		}
	}
}

// isRelevant reports whether event touches a file that Load reads.
func (p *Provider) isRelevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
		return false
	}
	if p.opts.ExplicitPath != "" && filepath.Clean(event.Name) == filepath.Clean(p.opts.ExplicitPath) {
		return true
	}
	return isConfigName(filepath.Base(event.Name))
}
