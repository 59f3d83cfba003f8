// Package models defines client-side data models used by the Course Copilot CLI.
package models

import (
	"encoding/json"
	"sort"
)

// Status says whether a resource is currently part of the AI assistant's
// context for the course.
type Status string

const (
	StatusCheckedIn  Status = "checked_in"
	StatusCheckedOut Status = "checked_out"
)

// DefaultFolder is the reserved folder name for unfiled resources.
const DefaultFolder = "default"

// Resource is one uploaded reference file attached to a course.
//
// FileID is assigned by the server and is stable once the file has been
// uploaded. Entries that only exist in the local mirror (never round-tripped
// through the server) have an empty FileID and are identified by FileName
// instead. Identity comparison must go through Identity()/SameIdentity, never
// through ad hoc field fallbacks.
type Resource struct {
	// FileID is the server-assigned identifier, empty for local-only entries.
	FileID string `json:"fileId,omitempty"`

	// FileName is the display name and the fallback identity.
	FileName string `json:"fileName"`

	// FileType is a MIME type or an extension-derived type.
	FileType string `json:"fileType,omitempty"`

	// Status tells whether the resource is in the AI context.
	Status Status `json:"status,omitempty"`

	URL         string `json:"url,omitempty"`
	Description string `json:"description,omitempty"`
}

// Identity returns the value used for deduplication: the FileID when the
// resource has one, the FileName otherwise. The boolean reports whether the
// identity is a server id.
func (r Resource) Identity() (string, bool) {
	if r.FileID != "" {
		return r.FileID, true
	}
	return r.FileName, false
}

// SameIdentity reports whether two resources refer to the same file under the
// identity rule: by FileID when both have one, by FileName when neither has one.
// A resource with an id and a resource without one are never the same.
func SameIdentity(a, b Resource) bool {
	if a.FileID != "" && b.FileID != "" {
		return a.FileID == b.FileID
	}
	if a.FileID == "" && b.FileID == "" {
		return a.FileName == b.FileName
	}
	return false
}

// FolderMap is a course's resource set: folder name -> resources in insertion
// order. Order matters for display only.
type FolderMap map[string][]Resource

// Clone returns a deep copy. Callers receive snapshots from the cache and must
// never observe later mutations through them.
func (m FolderMap) Clone() FolderMap {
	if m == nil {
		return FolderMap{}
	}
	out := make(FolderMap, len(m))
	for folder, list := range m {
		cp := make([]Resource, len(list))
		copy(cp, list)
		out[folder] = cp
	}
	return out
}

// seenSet tracks already-merged identities. Server ids and bare file names
// are separate namespaces.
type seenSet struct {
	ids   map[string]struct{}
	names map[string]struct{}
}

func newSeenSet() *seenSet {
	return &seenSet{ids: make(map[string]struct{}), names: make(map[string]struct{})}
}

// add records the resource's identity and reports whether this was its first
// occurrence.
func (s *seenSet) add(r Resource) bool {
	key, hasID := r.Identity()
	set := s.names
	if hasID {
		set = s.ids
	}
	if _, ok := set[key]; ok {
		return false
	}
	set[key] = struct{}{}
	return true
}

// merge walks local followed by remote and keeps the first occurrence of each
// identity: by FileID when the entry has one, by FileName otherwise. Because
// local comes first, locally-known entries win ties over remote entries with
// the same identity.
func merge(local, remote []Resource) []Resource {
	seen := newSeenSet()
	merged := make([]Resource, 0, len(local)+len(remote))

	for _, r := range append(append([]Resource{}, local...), remote...) {
		if seen.add(r) {
			merged = append(merged, r)
		}
	}

	return merged
}

// FolderOrder returns the deterministic iteration order for a folder mapping:
// the default folder first, remaining folders sorted by name.
func FolderOrder(m FolderMap) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		if name == DefaultFolder {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	if _, ok := m[DefaultFolder]; ok {
		names = append([]string{DefaultFolder}, names...)
	}
	return names
}

// MergeFolders applies the merge identity rule to a folder mapping and a flat
// remote listing. Local entries keep their folders and win identity ties
// (the walk covers local folders first, in FolderOrder); remote-only entries
// land in the default folder.
func MergeFolders(local FolderMap, remote []Resource) FolderMap {
	seen := newSeenSet()
	out := FolderMap{}

	for _, folder := range FolderOrder(local) {
		for _, r := range local[folder] {
			if seen.add(r) {
				out[folder] = append(out[folder], r)
			}
		}
	}

	for _, r := range remote {
		if seen.add(r) {
			out[DefaultFolder] = append(out[DefaultFolder], r)
		}
	}

	return out
}

// DecodeFolderMap parses a persisted folder mapping. For backward
// compatibility a flat resource list is accepted and treated as the single
// default folder.
func DecodeFolderMap(data []byte) (FolderMap, error) {
	var m FolderMap
	if err := json.Unmarshal(data, &m); err == nil {
		return m, nil
	}

	// Legacy format: a flat list of resources.
	var flat []Resource
	if err := json.Unmarshal(data, &flat); err != nil {
		return nil, err
	}
	return FolderMap{DefaultFolder: flat}, nil
}

// EncodeFolderMap serializes a folder mapping for persistence.
func EncodeFolderMap(m FolderMap) ([]byte, error) {
	if m == nil {
		m = FolderMap{}
	}
	return json.Marshal(m)
}
