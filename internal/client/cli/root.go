package cli

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
)

func (a *App) getStatus() string {
	s := ""
	if a.userName != "" {
		s = a.userName + " "
	}
	if a.courseID != "" {
		s = s + a.courseID + " "
	}
	if a.Mode != "" {
		s = s + string(a.Mode)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

func (a *App) Root(ctx context.Context) {
	log.Println("Welcome to Course Copilot CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	go func() {
		a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)
	}()

	if a.config.DropFolder != "" {
		if err := a.startWatch(ctx, a.config.DropFolder); err != nil {
			log.Printf("drop folder watch not started: %s", err.Error())
		}
	}

	runREPL(ctx, a, a.getStatus, scanner)
}
