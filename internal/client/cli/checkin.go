package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/coursecopilot/copilot/internal/client/models"
	"github.com/coursecopilot/copilot/internal/client/services"
	"github.com/coursecopilot/copilot/internal/common"
)

// CheckIn marks a resource as available to AI context sync.
func (a *App) CheckIn(ctx context.Context) error {
	return a.setStatus(ctx, models.StatusCheckedIn)
}

// CheckOut withdraws a resource from AI context sync.
func (a *App) CheckOut(ctx context.Context) error {
	return a.setStatus(ctx, models.StatusCheckedOut)
}

// setStatus flips the check-in status of a cached resource. The flip is local
// only: it updates the cache and the mirror, and the next thread sync picks
// the new status up.
// TODO: call the backend status endpoint here once the server exposes one.
func (a *App) setStatus(ctx context.Context, status models.Status) error {
	if a.courseID == "" {
		log.Printf("Select a course first")
		return nil
	}

	fileID, err := getSimpleText(a.reader, "Enter resource id", os.Stdout)
	if err != nil {
		return err
	}

	prev, err := a.resources.UpdateResource(ctx, a.courseID, fileID, services.ResourceUpdate{Status: &status})
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			log.Printf("No resource with id %s", fileID)
			return nil
		}
		log.Printf("Error: %s", err.Error())
		return nil
	}

	fmt.Printf("%s: %s -> %s\n", prev.FileName, prev.Status, status)
	return nil
}
