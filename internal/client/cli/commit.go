package cli

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/coursecopilot/copilot/internal/common"
)

// Commit uploads the staged files for the current course as one batch, at
// thread scope when a thread is open.
func (a *App) Commit(ctx context.Context) error {
	if a.courseID == "" {
		log.Printf("Select a course first")
		return nil
	}
	if a.Mode == ModeOffline {
		log.Printf("Offline, staged files will be kept until the server is reachable")
		return nil
	}

	err := a.resources.CommitPendingFiles(ctx, a.courseID, a.threadID)
	if err != nil {
		if errors.Is(err, common.ErrorNothingToCommit) {
			fmt.Println("Nothing staged")
			return nil
		}
		log.Printf("Commit failed: %s", err.Error())
		return nil
	}

	fmt.Println("Committed")
	return nil
}
