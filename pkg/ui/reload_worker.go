package ui

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime/debug"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"

	"github.com/vanderheijden86/menuwork/pkg/loader"
	"github.com/vanderheijden86/menuwork/pkg/model"
)

// WorkerState represents the current state of the reload worker.
type WorkerState int

const (
	// WorkerIdle means the worker is waiting for file changes.
	WorkerIdle WorkerState = iota
	// WorkerProcessing means the worker is loading the definition file.
	WorkerProcessing
	// WorkerStopped means the worker has been stopped.
	WorkerStopped
)

func (s WorkerState) String() string {
	switch s {
	case WorkerIdle:
		return "idle"
	case WorkerProcessing:
		return "processing"
	case WorkerStopped:
		return "stopped"
	}
	return fmt.Sprintf("WorkerState(%d)", int(s))
}

// WorkerError wraps reload errors with phase and retry context.
type WorkerError struct {
	Phase   string // "read", "load"
	Cause   error
	Time    time.Time
	Retries int
}

func (e WorkerError) Error() string {
	return fmt.Sprintf("%s failed: %v (retries: %d)", e.Phase, e.Cause, e.Retries)
}

func (e WorkerError) Unwrap() error {
	return e.Cause
}

// Sender delivers messages to a running program. *tea.Program satisfies it.
type Sender interface {
	Send(msg tea.Msg)
}

// SpecReadyMsg is sent to the UI when the definition file changed and
// loaded cleanly.
type SpecReadyMsg struct {
	Spec *model.MenuSpec
}

// SpecErrorMsg is sent when reloading fails. The UI keeps the old tree.
type SpecErrorMsg struct {
	Err error
}

// ReloadWorker watches a definition file and reloads it off the UI turn.
type ReloadWorker struct {
	path          string
	debounceDelay time.Duration

	mu         sync.RWMutex
	state      WorkerState
	dirty      bool
	started    bool
	lastHash   string
	lastError  *WorkerError
	errorCount int

	watcher *fsnotify.Watcher
	sender  Sender

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

// WorkerConfig configures the ReloadWorker.
type WorkerConfig struct {
	Path          string
	DebounceDelay time.Duration
	Sender        Sender
}

// NewReloadWorker creates a worker. With an empty path it never reloads.
func NewReloadWorker(cfg WorkerConfig) (*ReloadWorker, error) {
	ctx, cancel := context.WithCancel(context.Background())

	if cfg.DebounceDelay == 0 {
		cfg.DebounceDelay = 200 * time.Millisecond
	}

	w := &ReloadWorker{
		path:          cfg.Path,
		debounceDelay: cfg.DebounceDelay,
		sender:        cfg.Sender,
		state:         WorkerIdle,
		ctx:           ctx,
		cancel:        cancel,
		done:          make(chan struct{}),
	}

	if cfg.Path != "" {
		fw, err := fsnotify.NewWatcher()
		if err != nil {
			cancel()
			return nil, fmt.Errorf("create fsnotify watcher: %w", err)
		}
		w.watcher = fw
	}

	return w, nil
}

// Start begins watching. Editors often replace the file on save, so the
// parent directory is watched and events are filtered by name.
// Start is idempotent.
func (w *ReloadWorker) Start() error {
	w.mu.Lock()
	if w.started {
		w.mu.Unlock()
		return nil
	}
	w.started = true
	w.mu.Unlock()

	if w.watcher == nil {
		close(w.done)
		return nil
	}
	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		close(w.done)
		return fmt.Errorf("watch %s: %w", filepath.Dir(w.path), err)
	}
	if data, err := os.ReadFile(w.path); err == nil {
		w.mu.Lock()
		w.lastHash = contentHash(data)
		w.mu.Unlock()
	}
	go w.processLoop()
	return nil
}

// Stop halts the worker. Stop is idempotent.
func (w *ReloadWorker) Stop() {
	w.mu.Lock()
	if w.state == WorkerStopped {
		w.mu.Unlock()
		return
	}
	w.state = WorkerStopped
	wasStarted := w.started
	w.mu.Unlock()

	w.cancel()
	if w.watcher != nil {
		w.watcher.Close()
	}

	if wasStarted {
		select {
		case <-w.done:
		case <-time.After(2 * time.Second):
		}
	}
}

// TriggerRefresh reloads now, bypassing the watcher.
func (w *ReloadWorker) TriggerRefresh() {
	w.mu.Lock()
	if w.state == WorkerStopped {
		w.mu.Unlock()
		return
	}
	if w.state == WorkerProcessing {
		w.dirty = true
		w.mu.Unlock()
		return
	}
	w.mu.Unlock()

	go w.process()
}

// State returns the current worker state.
func (w *ReloadWorker) State() WorkerState {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.state
}

// LastError returns the most recent error (nil if the last reload succeeded).
func (w *ReloadWorker) LastError() *WorkerError {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.lastError
}

// LastHash returns the content hash of the last loaded file.
func (w *ReloadWorker) LastHash() string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.lastHash
}

func (w *ReloadWorker) processLoop() {
	defer close(w.done)

	target := filepath.Clean(w.path)
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-w.ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounceDelay)
			} else {
				timer.Reset(w.debounceDelay)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			w.process()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("warning: reload watcher: %v", err)
		}
	}
}

// process reloads the file once, re-running if a change arrived meanwhile.
func (w *ReloadWorker) process() {
	w.mu.Lock()
	if w.state != WorkerIdle {
		if w.state == WorkerProcessing {
			w.dirty = true
		}
		w.mu.Unlock()
		return
	}
	w.state = WorkerProcessing
	w.dirty = false
	w.mu.Unlock()

	spec, werr := w.load()

	w.mu.Lock()
	if w.state == WorkerStopped {
		w.mu.Unlock()
		return
	}
	w.lastError = werr
	if werr != nil {
		w.errorCount++
		werr.Retries = w.errorCount
	} else {
		w.errorCount = 0
	}
	wasDirty := w.dirty
	w.state = WorkerIdle
	w.mu.Unlock()

	if w.sender != nil {
		switch {
		case werr != nil:
			w.sender.Send(SpecErrorMsg{Err: *werr})
		case spec != nil:
			w.sender.Send(SpecReadyMsg{Spec: spec})
		}
	}

	if wasDirty {
		go w.process()
	}
}

// load returns nil, nil when the content is unchanged.
func (w *ReloadWorker) load() (*model.MenuSpec, *WorkerError) {
	if w.path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(w.path)
	if err != nil {
		if os.IsNotExist(err) {
			// mid-save; the following create event reloads
			return nil, nil
		}
		return nil, &WorkerError{Phase: "read", Cause: err, Time: time.Now()}
	}
	hash := contentHash(data)
	w.mu.RLock()
	same := hash == w.lastHash
	w.mu.RUnlock()
	if same {
		return nil, nil
	}

	var spec *model.MenuSpec
	if werr := safeCompute("load", func() error {
		var err error
		spec, err = loader.LoadFile(w.path)
		return err
	}); werr != nil {
		log.Printf("reload: error loading %s: %v", w.path, werr)
		return nil, werr
	}

	w.mu.Lock()
	w.lastHash = hash
	w.mu.Unlock()
	log.Printf("reload: loaded %s (%d items, hash=%s)", w.path, len(spec.Items), hashPrefix(hash))
	return spec, nil
}

// safeCompute executes fn and recovers from any panics.
func safeCompute(phase string, fn func() error) (result *WorkerError) {
	defer func() {
		if r := recover(); r != nil {
			result = &WorkerError{
				Phase: phase,
				Cause: fmt.Errorf("panic: %v\n%s", r, debug.Stack()),
				Time:  time.Now(),
			}
		}
	}()
	if err := fn(); err != nil {
		return &WorkerError{Phase: phase, Cause: err, Time: time.Now()}
	}
	return nil
}

func contentHash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// hashPrefix returns up to 16 characters of hash for logging.
func hashPrefix(hash string) string {
	if len(hash) > 16 {
		return hash[:16]
	}
	return hash
}
