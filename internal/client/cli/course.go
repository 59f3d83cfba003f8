package cli

import (
	"context"
	"log"
	"os"

	"github.com/coursecopilot/copilot/internal/client/repositories/session"
)

// Course selects the working course and loads its resource cache. The choice
// is persisted so the next run resumes on the same course.
func (a *App) Course(ctx context.Context) error {
	courseID, err := getSimpleText(a.reader, "Enter course id", os.Stdout)
	if err != nil {
		return err
	}
	if courseID == "" {
		log.Printf("Course id is required")
		return nil
	}

	a.courseID = courseID
	a.threadID = ""

	if err := a.repos.Session.Set(ctx, session.KeyActiveCourse, []byte(courseID)); err != nil {
		log.Printf("warning: session not persisted: %s", err.Error())
	}

	a.resources.LoadResources(ctx, courseID)
	return nil
}

// Thread opens a chat thread within the current course. The thread listing
// becomes the remote side of the cache until another thread (or an empty id,
// meaning course scope) is selected.
func (a *App) Thread(ctx context.Context) error {
	if a.courseID == "" {
		log.Printf("Select a course first")
		return nil
	}

	threadID, err := getSimpleText(a.reader, "Enter thread id (empty for course scope)", os.Stdout)
	if err != nil {
		return err
	}

	a.threadID = threadID
	a.resources.SetActiveThread(a.courseID, threadID)
	a.resources.LoadResources(ctx, a.courseID)
	return nil
}
