package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coursecopilot/copilot/internal/client/models"
	"github.com/coursecopilot/copilot/internal/client/services"
	"github.com/coursecopilot/copilot/internal/logging"
)

type captureService struct {
	services.ResourceService

	mu    sync.Mutex
	files []*models.PendingFile
}

func (c *captureService) AddPendingFiles(ctx context.Context, files []*models.PendingFile) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.files = append(c.files, files...)
	return nil
}

func (c *captureService) staged() []*models.PendingFile {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*models.PendingFile, len(c.files))
	copy(out, c.files)
	return out
}

func startWatcher(t *testing.T, svc services.ResourceService, course string) string {
	t.Helper()

	dir := t.TempDir()
	w, err := New(svc, func() string { return course }, logging.NewDefault())
	require.NoError(t, err)
	w.settle = 100 * time.Millisecond
	require.NoError(t, w.Start(context.Background(), dir))
	t.Cleanup(func() { _ = w.Stop() })
	return dir
}

func TestDropFolder_StagesFile(t *testing.T) {
	svc := &captureService{}
	dir := startWatcher(t, svc, "course-1")

	path := filepath.Join(dir, "notes.md")
	require.NoError(t, os.WriteFile(path, []byte("# week 1"), 0o644))

	require.Eventually(t, func() bool {
		return len(svc.staged()) == 1
	}, 5*time.Second, 20*time.Millisecond)

	f := svc.staged()[0]
	assert.Equal(t, "course-1", f.CourseID)
	assert.Equal(t, "notes.md", f.FileName)
	assert.Equal(t, []byte("# week 1"), f.Content)

	// The source is consumed once staged.
	assert.Eventually(t, func() bool {
		_, err := os.Stat(path)
		return os.IsNotExist(err)
	}, 5*time.Second, 20*time.Millisecond)
}

func TestDropFolder_StagesCompleteContentOfSlowCopy(t *testing.T) {
	svc := &captureService{}
	dir := startWatcher(t, svc, "course-1")

	// Write the file in two chunks with a pause shorter than the settle
	// delay, the way a slow copy into the folder lands on disk.
	path := filepath.Join(dir, "slides.pdf")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0o644)
	require.NoError(t, err)
	_, err = f.Write([]byte("first half "))
	require.NoError(t, err)

	time.Sleep(20 * time.Millisecond)

	_, err = f.Write([]byte("second half"))
	require.NoError(t, err)
	require.NoError(t, f.Close())

	require.Eventually(t, func() bool {
		return len(svc.staged()) == 1
	}, 5*time.Second, 20*time.Millisecond)

	staged := svc.staged()
	require.Len(t, staged, 1)
	assert.Equal(t, []byte("first half second half"), staged[0].Content)
}

func TestDropFolder_IgnoresHiddenAndNoCourse(t *testing.T) {
	svc := &captureService{}
	dir := startWatcher(t, svc, "")

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".hidden"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dropped.pdf"), []byte("x"), 0o644))

	time.Sleep(300 * time.Millisecond)
	assert.Empty(t, svc.staged())
}

func TestStartTwice(t *testing.T) {
	svc := &captureService{}
	w, err := New(svc, func() string { return "c" }, logging.NewDefault())
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Stop() })

	require.NoError(t, w.Start(context.Background(), t.TempDir()))
	assert.Error(t, w.Start(context.Background(), t.TempDir()))
}
