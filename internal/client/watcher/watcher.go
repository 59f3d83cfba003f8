// Package watcher stages files dropped into a local folder onto the pending
// upload queue. Dropping a file into the configured folder is equivalent to
// running the add command for it.
package watcher

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/coursecopilot/copilot/internal/client/models"
	"github.com/coursecopilot/copilot/internal/client/services"
	"github.com/coursecopilot/copilot/internal/filex"
	"github.com/coursecopilot/copilot/internal/logging"
)

// CourseFunc returns the course the next staged file belongs to. An empty
// result means no course is selected and the drop is ignored.
type CourseFunc func() string

// settleDelay is how long a dropped file must stay quiet before it is
// staged. Copies into the drop folder arrive as a burst of write events,
// so staging waits until the burst ends to avoid reading a partial file.
const settleDelay = 250 * time.Millisecond

// DropWatcher converts file creations under a drop folder into pending queue
// entries.
type DropWatcher struct {
	fw        *fsnotify.Watcher
	resources services.ResourceService
	course    CourseFunc
	log       logging.Logger

	dir     string
	settle  time.Duration
	done    chan struct{}
	wg      sync.WaitGroup
	mu      sync.Mutex
	running bool
	timers  map[string]*time.Timer
}

// New creates a watcher bound to the resource service. The watcher is idle
// until Start.
func New(resources services.ResourceService, course CourseFunc, log logging.Logger) (*DropWatcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}
	return &DropWatcher{
		fw:        fw,
		resources: resources,
		course:    course,
		log:       log,
		settle:    settleDelay,
		done:      make(chan struct{}),
		timers:    make(map[string]*time.Timer),
	}, nil
}

// Start begins watching dir. Only the top level of the folder is watched.
func (w *DropWatcher) Start(ctx context.Context, dir string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return fmt.Errorf("watcher already running")
	}

	dir, err := filex.EnsureDir(dir)
	if err != nil {
		return fmt.Errorf("creating drop folder: %w", err)
	}
	if err := w.fw.Add(dir); err != nil {
		return fmt.Errorf("watching drop folder %s: %w", dir, err)
	}

	w.dir = dir
	w.running = true
	w.wg.Add(1)
	go w.loop(ctx)

	return nil
}

// Stop shuts the watcher down and waits for the event loop to exit.
func (w *DropWatcher) Stop() error {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = false
	for path, t := range w.timers {
		t.Stop()
		delete(w.timers, path)
	}
	w.mu.Unlock()

	close(w.done)
	err := w.fw.Close()
	w.wg.Wait()
	return err
}

func (w *DropWatcher) loop(ctx context.Context) {
	defer w.wg.Done()

	for {
		select {
		case <-w.done:
			return
		case <-ctx.Done():
			return

		case event, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				w.cancel(event.Name)
				continue
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			w.schedule(ctx, event.Name)

		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			w.log.Warn(ctx, "drop folder watch error", "error", err)
		}
	}
}

// schedule arms the settle timer for path, pushing it back on every new
// event. The file is staged only once it has been quiet for the full delay.
func (w *DropWatcher) schedule(ctx context.Context, path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return
	}
	if t, ok := w.timers[path]; ok {
		t.Reset(w.settle)
		return
	}
	w.timers[path] = time.AfterFunc(w.settle, func() {
		w.mu.Lock()
		if !w.running {
			w.mu.Unlock()
			return
		}
		delete(w.timers, path)
		w.mu.Unlock()

		w.stage(ctx, path)
	})
}

// cancel drops a pending settle timer for path.
func (w *DropWatcher) cancel(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if t, ok := w.timers[path]; ok {
		t.Stop()
		delete(w.timers, path)
	}
}

// stage reads the dropped file and queues it for the current course. The
// source file is removed after a successful stage so a commit cannot pick it
// up twice.
func (w *DropWatcher) stage(ctx context.Context, path string) {
	name := filepath.Base(path)
	if strings.HasPrefix(name, ".") {
		return
	}

	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return
	}

	courseID := w.course()
	if courseID == "" {
		w.log.Warn(ctx, "ignoring dropped file, no course selected", "file", name)
		return
	}

	content, err := os.ReadFile(path)
	if err != nil {
		w.log.Warn(ctx, "reading dropped file failed", "file", name, "error", err)
		return
	}

	f := models.NewPendingFile(courseID, name, contentType(name), content)
	if err := w.resources.AddPendingFiles(ctx, []*models.PendingFile{f}); err != nil {
		w.log.Warn(ctx, "queueing dropped file failed", "file", name, "error", err)
		return
	}

	if err := os.Remove(path); err != nil {
		w.log.Warn(ctx, "removing staged file failed", "file", name, "error", err)
	}

	w.log.Info(ctx, "staged dropped file", "file", name, "course_id", courseID)
}

func contentType(name string) string {
	if ct := mime.TypeByExtension(filepath.Ext(name)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
