package cli

import (
	"context"
	"fmt"
	"log"

	"github.com/coursecopilot/copilot/internal/client/models"
)

// List prints the cached resources of the current course, grouped by folder.
func (a *App) List(ctx context.Context) error {
	if a.courseID == "" {
		log.Printf("Select a course first")
		return nil
	}

	folders := a.resources.GetResources(a.courseID)
	if len(folders) == 0 {
		fmt.Println("No resources")
		return nil
	}

	for _, line := range listLines(folders) {
		fmt.Println(line)
	}

	if err := a.resources.Err(a.courseID); err != nil {
		log.Printf("warning: last refresh was partial: %s", err.Error())
	}
	return nil
}

// listLines renders the folder mapping as display lines, default folder
// first and the rest sorted, so repeated listings print in a stable order.
func listLines(folders models.FolderMap) []string {
	var lines []string
	for _, folder := range models.FolderOrder(folders) {
		lines = append(lines, fmt.Sprintf("[%s]", folder))
		for _, r := range folders[folder] {
			lines = append(lines, formatResource(r))
		}
	}
	return lines
}

func formatResource(r models.Resource) string {
	id := r.FileID
	if id == "" {
		id = "(local)"
	}
	status := string(r.Status)
	if status == "" {
		status = "-"
	}
	return fmt.Sprintf("  %-36s %-12s %s", id, status, r.FileName)
}

// Refresh reloads the cache from the mirror and the server.
func (a *App) Refresh(ctx context.Context) error {
	if a.courseID == "" {
		log.Printf("Select a course first")
		return nil
	}
	a.resources.LoadResources(ctx, a.courseID)
	return a.List(ctx)
}
