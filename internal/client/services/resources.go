// Package services contains application services for the Course Copilot
// client. This file defines the resource cache controller: the single owner
// of per-course resource state, reconciling the local mirror, remote thread
// listings and the pending upload queue.
package services

import (
	"context"
	"database/sql"
	"sync"

	"github.com/coursecopilot/copilot/internal/client/api"
	"github.com/coursecopilot/copilot/internal/client/models"
	"github.com/coursecopilot/copilot/internal/client/repositories/mirror"
	"github.com/coursecopilot/copilot/internal/client/repositories/pending"
	"github.com/coursecopilot/copilot/internal/common"
	"github.com/coursecopilot/copilot/internal/logging"
)

// ResourceUpdate is a partial update applied to a cached resource. Nil fields
// are left untouched.
type ResourceUpdate struct {
	Status      *models.Status
	URL         *string
	Description *string
}

// ResourceService is the resource cache controller.
//
// Contract:
//   - It is the only mutator of per-course resource state; readers always get
//     snapshots.
//   - LoadResources never fails hard: the remote contribution degrades to
//     empty and the local mirror is the authoritative fallback. The failure is
//     recorded in the course's error field.
//   - AddResource/RemoveResource/UpdateResource are optimistic and local-only.
//     For Remove and Update the caller owns the remote call and must roll back
//     (re-add / re-apply the returned snapshot) if that call fails.
//   - CommitPendingFiles uploads the course's queued files as one batch,
//     clears only the committed entries, reconciles, and fans the thread sync
//     out best-effort.
type ResourceService interface {
	// Thread registry.
	RegisterThread(courseID, threadID string)
	Threads(courseID string) []string
	SetActiveThread(courseID, threadID string)

	// Cache lifecycle and reads.
	LoadResources(ctx context.Context, courseID string)
	GetResources(courseID string) models.FolderMap
	GetAllResources(courseID string) []models.Resource
	Loading(courseID string) bool
	Err(courseID string) error

	// Optimistic local mutations.
	AddResource(ctx context.Context, courseID string, res models.Resource, folder string) error
	RemoveResource(ctx context.Context, courseID, fileID, folder string) (*models.Resource, error)
	UpdateResource(ctx context.Context, courseID, fileID string, update ResourceUpdate) (*models.Resource, error)

	// Pending upload queue.
	AddPendingFiles(ctx context.Context, files []*models.PendingFile) error
	RemovePendingFile(ctx context.Context, courseID, fileName string) error
	ListPendingFiles(ctx context.Context, courseID string) ([]*models.PendingFile, error)
	CommitPendingFiles(ctx context.Context, courseID, threadID string) error
}

// courseState is the controller-owned state for one course.
type courseState struct {
	folders    models.FolderMap
	loading    bool
	err        error
	generation int
}

type resourceService struct {
	client  api.Client
	db      *sql.DB
	mirror  mirror.Repository
	pending pending.Repository
	log     logging.Logger

	mu           sync.Mutex
	states       map[string]*courseState
	threads      map[string]map[string]struct{}
	activeThread map[string]string
}

// NewResourceService constructs the controller bound to the given API client
// and local stores. The database handle is used for transactional batch
// writes to the pending queue.
func NewResourceService(client api.Client, db *sql.DB, mirrorRepo mirror.Repository, pendingRepo pending.Repository, log logging.Logger) ResourceService {
	return &resourceService{
		client:       client,
		db:           db,
		mirror:       mirrorRepo,
		pending:      pendingRepo,
		log:          log,
		states:       make(map[string]*courseState),
		threads:      make(map[string]map[string]struct{}),
		activeThread: make(map[string]string),
	}
}

// stateLocked returns the course state, creating it on first use.
// Callers must hold s.mu.
func (s *resourceService) stateLocked(courseID string) *courseState {
	st, ok := s.states[courseID]
	if !ok {
		st = &courseState{folders: models.FolderMap{}}
		s.states[courseID] = st
	}
	return st
}

// LoadResources reads the local mirror, fetches the remote listing (thread
// scope when a thread is open, course scope otherwise), merges the two by the
// resource identity rule, and replaces the course state in a single write.
// A result that arrives after a newer load has started is discarded.
func (s *resourceService) LoadResources(ctx context.Context, courseID string) {
	s.mu.Lock()
	st := s.stateLocked(courseID)
	st.loading = true
	st.generation++
	gen := st.generation
	threadID := s.activeThread[courseID]
	s.mu.Unlock()

	local, err := s.mirror.Load(ctx, courseID)
	if err != nil {
		// The mirror fails soft for corrupt payloads; this is a storage-level
		// failure. Degrade to an empty local contribution.
		s.log.Warn(ctx, "mirror load failed", "course_id", courseID, "error", err)
		local = models.FolderMap{}
	}

	var remote []models.Resource
	var remoteErr error
	if threadID != "" {
		remote, remoteErr = s.client.ListThreadResources(ctx, courseID, threadID)
	} else {
		remote, remoteErr = s.client.ListCourseResources(ctx, courseID)
	}
	if remoteErr != nil {
		s.log.Warn(ctx, "remote listing failed, keeping local mirror",
			"course_id", courseID, "thread_id", threadID, "error", remoteErr)
		remote = nil
	}

	merged := models.MergeFolders(local, remote)

	s.mu.Lock()
	if st.generation != gen {
		s.mu.Unlock()
		s.log.Debug(ctx, "discarding superseded load", "course_id", courseID)
		return
	}
	st.folders = merged
	st.err = remoteErr
	st.loading = false
	snapshot := merged.Clone()
	s.mu.Unlock()

	if err := s.mirror.Save(ctx, courseID, snapshot); err != nil {
		s.log.Warn(ctx, "mirror save failed", "course_id", courseID, "error", err)
	}
}

// GetResources returns a snapshot of the course's folder mapping.
func (s *resourceService) GetResources(courseID string) models.FolderMap {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked(courseID).folders.Clone()
}

// GetAllResources flattens the folder mapping: default folder first, then
// folders by name, insertion order within each.
func (s *resourceService) GetAllResources(courseID string) []models.Resource {
	s.mu.Lock()
	defer s.mu.Unlock()

	folders := s.stateLocked(courseID).folders
	var flat []models.Resource
	for _, name := range models.FolderOrder(folders) {
		flat = append(flat, folders[name]...)
	}
	return flat
}

func (s *resourceService) Loading(courseID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked(courseID).loading
}

func (s *resourceService) Err(courseID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked(courseID).err
}

// AddResource optimistically appends the resource and persists the mirror
// before any network confirmation. A later reconcile can only add or replace,
// never silently drop an entry the user just added.
func (s *resourceService) AddResource(ctx context.Context, courseID string, res models.Resource, folder string) error {
	if folder == "" {
		folder = models.DefaultFolder
	}

	s.mu.Lock()
	st := s.stateLocked(courseID)
	next := st.folders.Clone()
	next[folder] = append(next[folder], res)
	st.folders = next
	snapshot := next.Clone()
	s.mu.Unlock()

	return s.mirror.Save(ctx, courseID, snapshot)
}

// RemoveResource optimistically removes the resource from the state and the
// mirror, matching by file id with a file-name fallback for local-only
// entries. The removed resource is returned so the caller can re-add it when
// the remote delete fails; the controller does not call remote here.
func (s *resourceService) RemoveResource(ctx context.Context, courseID, fileID, folder string) (*models.Resource, error) {
	if folder == "" {
		folder = models.DefaultFolder
	}

	s.mu.Lock()
	st := s.stateLocked(courseID)
	next := st.folders.Clone()

	var removed *models.Resource
	list := next[folder]
	for n, r := range list {
		if matchesID(r, fileID) {
			cp := r
			removed = &cp
			next[folder] = append(list[:n:n], list[n+1:]...)
			break
		}
	}

	if removed == nil {
		s.mu.Unlock()
		return nil, common.ErrorNotFound
	}

	st.folders = next
	snapshot := next.Clone()
	s.mu.Unlock()

	if err := s.mirror.Save(ctx, courseID, snapshot); err != nil {
		return removed, err
	}
	return removed, nil
}

// UpdateResource merges the partial update into the matching resource across
// all folders and returns the previous value for caller-owned rollback.
// There is no remote call here: callers issue the check-in/out call
// themselves and use this for the local reflection.
func (s *resourceService) UpdateResource(ctx context.Context, courseID, fileID string, update ResourceUpdate) (*models.Resource, error) {
	s.mu.Lock()
	st := s.stateLocked(courseID)
	next := st.folders.Clone()

	var prev *models.Resource
	for _, folder := range models.FolderOrder(next) {
		list := next[folder]
		for n := range list {
			if !matchesID(list[n], fileID) {
				continue
			}
			cp := list[n]
			prev = &cp

			if update.Status != nil {
				list[n].Status = *update.Status
			}
			if update.URL != nil {
				list[n].URL = *update.URL
			}
			if update.Description != nil {
				list[n].Description = *update.Description
			}
			break
		}
		if prev != nil {
			break
		}
	}

	if prev == nil {
		s.mu.Unlock()
		return nil, common.ErrorNotFound
	}

	st.folders = next
	snapshot := next.Clone()
	s.mu.Unlock()

	if err := s.mirror.Save(ctx, courseID, snapshot); err != nil {
		return prev, err
	}
	return prev, nil
}

// matchesID compares a lookup key against a resource: by server id when the
// resource has one, by file name otherwise.
func matchesID(r models.Resource, fileID string) bool {
	if r.FileID != "" {
		return r.FileID == fileID
	}
	return r.FileName == fileID
}
