package cli

import (
	"bufio"
	"context"
	"os"
)

// Root runs the interactive session: a background session watcher plus the
// command loop. Cancelling ctx stops the watcher.
func (a *App) Root(ctx context.Context) {
	printlnFn("Welcome to Mentorlink CLI (type 'help' for commands)")

	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go a.StartSessionWatcher(watchCtx, a.config.SessionCheckInterval)

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, scanner)
}
