package models

import (
	"encoding/base64"

	"github.com/google/uuid"
)

// PendingFile is a file the user selected for upload that has not been sent
// to the backend yet. Content is kept verbatim in memory and base64-encoded
// when persisted so unsent selections survive a restart.
type PendingFile struct {
	// ID is a client-generated identifier for the queue entry.
	ID string

	// CourseID is the course the file was selected for.
	CourseID string

	// FileName is the original file name.
	FileName string

	// FileType is the MIME type reported at selection time.
	FileType string

	// Content is the raw file content.
	Content []byte
}

// NewPendingFile builds a queue entry for the given course and file.
func NewPendingFile(courseID, fileName, fileType string, content []byte) *PendingFile {
	return &PendingFile{
		ID:       uuid.NewString(),
		CourseID: courseID,
		FileName: fileName,
		FileType: fileType,
		Content:  content,
	}
}

// EncodeContent returns the transportable text form of the file content.
func (p *PendingFile) EncodeContent() string {
	return base64.StdEncoding.EncodeToString(p.Content)
}

// DecodeContent replaces Content with the decoded bytes of the persisted text
// form.
func (p *PendingFile) DecodeContent(encoded string) error {
	b, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return err
	}
	p.Content = b
	return nil
}
