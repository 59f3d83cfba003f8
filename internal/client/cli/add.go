package cli

import (
	"context"
	"fmt"
	"log"
	"mime"
	"os"
	"path/filepath"

	"github.com/coursecopilot/copilot/internal/client/models"
)

// Add reads a local file and stages it on the pending upload queue. Nothing
// reaches the server until commit.
func (a *App) Add(ctx context.Context) error {
	if a.courseID == "" {
		log.Printf("Select a course first")
		return nil
	}

	path, err := getSimpleText(a.reader, "Enter file path", os.Stdout)
	if err != nil {
		return err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		log.Printf("Error: %s", err.Error())
		return nil
	}

	name := filepath.Base(path)
	fileType := mime.TypeByExtension(filepath.Ext(name))
	if fileType == "" {
		fileType = "application/octet-stream"
	}

	f := models.NewPendingFile(a.courseID, name, fileType, content)
	if err := a.resources.AddPendingFiles(ctx, []*models.PendingFile{f}); err != nil {
		log.Printf("Error: %s", err.Error())
		return nil
	}

	fmt.Printf("Staged %s (%d bytes)\n", name, len(content))
	return nil
}

// Remove drops a staged file from the pending queue by name.
func (a *App) Remove(ctx context.Context) error {
	if a.courseID == "" {
		log.Printf("Select a course first")
		return nil
	}

	name, err := getSimpleText(a.reader, "Enter staged file name to remove", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.resources.RemovePendingFile(ctx, a.courseID, name); err != nil {
		log.Printf("Error: %s", err.Error())
	}
	return nil
}

// Pending lists the staged files waiting for commit.
func (a *App) Pending(ctx context.Context) error {
	if a.courseID == "" {
		log.Printf("Select a course first")
		return nil
	}

	files, err := a.resources.ListPendingFiles(ctx, a.courseID)
	if err != nil {
		log.Printf("Error: %s", err.Error())
		return nil
	}

	if len(files) == 0 {
		fmt.Println("Nothing staged")
		return nil
	}
	for _, f := range files {
		fmt.Printf("  %-40s %s (%d bytes)\n", f.FileName, f.FileType, len(f.Content))
	}
	return nil
}
