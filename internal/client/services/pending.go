package services

import (
	"context"
	"fmt"

	"github.com/coursecopilot/copilot/internal/client/models"
	"github.com/coursecopilot/copilot/internal/client/repositories/pending"
	"github.com/coursecopilot/copilot/internal/common"
	"github.com/coursecopilot/copilot/internal/dbx"
)

// AddPendingFiles stages files in the durable upload queue. The batch is
// written in a single transaction: either every file is queued or none is.
func (s *resourceService) AddPendingFiles(ctx context.Context, files []*models.PendingFile) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := pending.NewSQLiteRepository(tx)
		for _, f := range files {
			if err := repo.Add(ctx, f); err != nil {
				return fmt.Errorf("queueing %s: %w", f.FileName, err)
			}
		}
		return nil
	})
}

// RemovePendingFile drops the first queued entry with the given file name.
func (s *resourceService) RemovePendingFile(ctx context.Context, courseID, fileName string) error {
	return s.pending.Remove(ctx, courseID, fileName)
}

// ListPendingFiles returns the course's queue in insertion order.
func (s *resourceService) ListPendingFiles(ctx context.Context, courseID string) ([]*models.PendingFile, error) {
	return s.pending.ListByCourse(ctx, courseID)
}

// CommitPendingFiles uploads the course's queued files as a single multipart
// batch (thread scope when threadID is set), removes exactly the committed
// entries from the queue, folds the returned resources into the cache, and
// reconciles. Thread context sync then fans out to every registered thread
// best-effort: one thread failing does not fail the commit.
func (s *resourceService) CommitPendingFiles(ctx context.Context, courseID, threadID string) error {
	files, err := s.pending.ListByCourse(ctx, courseID)
	if err != nil {
		return fmt.Errorf("listing pending files: %w", err)
	}
	if len(files) == 0 {
		return common.ErrorNothingToCommit
	}

	var uploaded []models.Resource
	if threadID != "" {
		uploaded, err = s.client.UploadThread(ctx, courseID, threadID, files)
	} else {
		uploaded, err = s.client.UploadCourse(ctx, courseID, files)
	}
	if err != nil {
		// The queue is untouched on failure; a later commit retries the batch.
		return fmt.Errorf("uploading batch: %w", err)
	}

	ids := make([]string, 0, len(files))
	for _, f := range files {
		ids = append(ids, f.ID)
	}
	if err := s.pending.DeleteByIDs(ctx, ids); err != nil {
		s.log.Warn(ctx, "clearing committed queue entries failed", "course_id", courseID, "error", err)
	}

	s.mu.Lock()
	st := s.stateLocked(courseID)
	next := st.folders.Clone()
	for _, r := range uploaded {
		if r.Status == "" {
			r.Status = models.StatusCheckedIn
		}
		next[models.DefaultFolder] = append(next[models.DefaultFolder], r)
	}
	st.folders = models.MergeFolders(next, nil)
	snapshot := st.folders.Clone()
	s.mu.Unlock()

	// Persist before reconciling so a lagging server listing cannot drop the
	// resources that were just confirmed.
	if err := s.mirror.Save(ctx, courseID, snapshot); err != nil {
		s.log.Warn(ctx, "mirror save failed", "course_id", courseID, "error", err)
	}

	s.LoadResources(ctx, courseID)

	for _, id := range s.Threads(courseID) {
		if err := s.client.SyncThreadFromCheckedIn(ctx, courseID, id); err != nil {
			s.log.Warn(ctx, "thread context sync failed",
				"course_id", courseID, "thread_id", id, "error", err)
		}
	}

	return nil
}
