package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/wedlink-admin/internal/client/guard"
)

// Overview prints the admin panel: totals and the growth/decline chart.
func (a *App) Overview(ctx context.Context) error {
	if err := a.enter(ctx, guard.PathAdminPanel); err != nil {
		return err
	}

	st, err := a.overviewService.Get(ctx)
	if err != nil {
		return failed("Failed to load overview", err)
	}

	a.println("Total Events:", st.TotalEvents)
	a.println("Total Admins:", st.TotalAdmins)
	a.println()
	a.println(fmt.Sprintf("Growth   %s %5.1f%% (%g)", bar(st.GrowthShare), st.GrowthShare, st.GrowthPercentage))
	a.println(fmt.Sprintf("Decline  %s %5.1f%% (%g)", bar(st.DeclineShare), st.DeclineShare, st.DeclinePercentage))
	return nil
}
