package cli

import (
	"context"
	"fmt"
	"log"
	"os"
)

// Show fetches and prints the stored text content of an uploaded resource.
func (a *App) Show(ctx context.Context) error {
	if a.courseID == "" {
		log.Printf("Select a course first")
		return nil
	}

	fileID, err := getSimpleText(a.reader, "Enter resource id to show", os.Stdout)
	if err != nil {
		return err
	}

	content, err := a.client.GetResourceContent(ctx, a.courseID, fileID)
	if err != nil {
		log.Printf("Error: %s", err.Error())
		return nil
	}

	fmt.Println(content)
	return nil
}
