package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/coursecopilot/copilot/internal/client/models"
)

// Ask sends a prompt to the open thread's asset-studio chat and prints the
// answer as it streams in. The collected answer can then be staged as a new
// markdown resource.
func (a *App) Ask(ctx context.Context) error {
	if a.courseID == "" {
		log.Printf("Select a course first")
		return nil
	}
	if a.threadID == "" {
		log.Printf("Open a thread first")
		return nil
	}

	prompt, err := GetMultiline(a.reader, "Enter prompt", os.Stdout)
	if err != nil {
		return err
	}
	if prompt == "" {
		return nil
	}

	answer, err := a.client.StreamAssetChat(ctx, a.courseID, a.threadID, prompt, func(token string) {
		fmt.Print(token)
	})
	fmt.Println()
	if err != nil {
		log.Printf("Error: %s", err.Error())
		return nil
	}

	save, err := getSimpleText(a.reader, "Stage answer as a resource? (y/n)", os.Stdout)
	if err != nil {
		return err
	}
	if strings.ToLower(save) != "y" {
		return nil
	}

	name, err := getSimpleText(a.reader, "Enter file name", os.Stdout)
	if err != nil {
		return err
	}
	if name == "" {
		name = "answer-" + a.threadID + ".md"
	}

	f := models.NewPendingFile(a.courseID, name, "text/markdown", []byte(answer))
	if err := a.resources.AddPendingFiles(ctx, []*models.PendingFile{f}); err != nil {
		log.Printf("Error: %s", err.Error())
		return nil
	}

	fmt.Printf("Staged %s\n", name)
	return nil
}
