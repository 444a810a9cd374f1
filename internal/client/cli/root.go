package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/wedlink-admin/internal/client/guard"
)

func (a *App) getStatus() string {
	s := ""
	if email := a.accountEmail(); email != "" {
		s = email + " "
	}
	if _, path := a.router.Current(); path != "" {
		s += path
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// Root restores the session, lands on the first route and runs the REPL
// until the user exits.
func (a *App) Root(ctx context.Context) {
	a.println("Welcome to the WedLink admin console (type 'help' for commands)")

	a.session.Subscribe(a.trackAccount)
	go a.session.Start(ctx)

	a.println("Checking session...")
	_, landed, err := a.router.Navigate(ctx, guard.PathRoot)
	if err != nil {
		a.log.Error(ctx, "initial navigation failed", "error", err)
		return
	}

	if landed == guard.PathDashboard {
		a.trackAccount(a.session.Snapshot())
		if err := a.refreshEvents(ctx); err != nil {
			a.println("Error:", describeError(err))
		}
	} else {
		a.println("Please log in (or sign up) to continue.")
	}

	runREPL(ctx, a, a.getStatus, a.reader)
}
