package services

import "sort"

// RegisterThread records a chat thread for the course. Registering the same
// thread twice is a no-op, so callers can register on every thread open.
func (s *resourceService) RegisterThread(courseID, threadID string) {
	if threadID == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	set, ok := s.threads[courseID]
	if !ok {
		set = make(map[string]struct{})
		s.threads[courseID] = set
	}
	set[threadID] = struct{}{}
}

// Threads returns the registered thread ids for the course, sorted.
func (s *resourceService) Threads(courseID string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	set := s.threads[courseID]
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// SetActiveThread selects the thread whose listing LoadResources fetches.
// An empty threadID switches back to the course-level listing. The thread is
// also registered so later commits fan out to it.
func (s *resourceService) SetActiveThread(courseID, threadID string) {
	s.RegisterThread(courseID, threadID)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeThread[courseID] = threadID
}
