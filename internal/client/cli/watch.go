package cli

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/coursecopilot/copilot/internal/client/watcher"
)

// Watch starts staging files dropped into a local folder. Without a
// configured drop folder the path is prompted for.
func (a *App) Watch(ctx context.Context) error {
	if a.watcher != nil {
		log.Printf("Already watching")
		return nil
	}

	dir := a.config.DropFolder
	if dir == "" {
		var err error
		dir, err = getSimpleText(a.reader, "Enter folder to watch", os.Stdout)
		if err != nil {
			return err
		}
	}
	if dir == "" {
		return nil
	}

	if err := a.startWatch(ctx, dir); err != nil {
		log.Printf("Error: %s", err.Error())
		return nil
	}

	fmt.Printf("Watching %s\n", dir)
	return nil
}

func (a *App) startWatch(ctx context.Context, dir string) error {
	w, err := watcher.New(a.resources, func() string { return a.courseID }, a.logger)
	if err != nil {
		return err
	}
	if err := w.Start(ctx, dir); err != nil {
		return err
	}
	a.watcher = w
	return nil
}
