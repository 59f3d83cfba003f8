package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/coursecopilot/copilot/internal/client/models"
	"github.com/coursecopilot/copilot/internal/common"
)

// Delete removes a resource optimistically: the cache entry goes first, then
// the server call. When the server refuses, the snapshot returned by the
// cache is put back.
func (a *App) Delete(ctx context.Context) error {
	if a.courseID == "" {
		log.Printf("Select a course first")
		return nil
	}

	fileID, err := getSimpleText(a.reader, "Enter resource id to delete", os.Stdout)
	if err != nil {
		return err
	}

	removed, err := a.resources.RemoveResource(ctx, a.courseID, fileID, models.DefaultFolder)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			log.Printf("No resource with id %s", fileID)
			return nil
		}
		log.Printf("Error: %s", err.Error())
		return nil
	}

	// A local-only entry has nothing on the server side.
	if removed.FileID == "" {
		fmt.Printf("Removed %s\n", removed.FileName)
		return nil
	}

	if err := a.client.DeleteResource(ctx, a.courseID, removed.FileID); err != nil {
		log.Printf("Server delete failed, restoring %s: %s", removed.FileName, err.Error())
		if addErr := a.resources.AddResource(ctx, a.courseID, *removed, models.DefaultFolder); addErr != nil {
			log.Printf("Error restoring %s: %s", removed.FileName, addErr.Error())
		}
		return nil
	}

	fmt.Printf("Deleted %s\n", removed.FileName)
	return nil
}
