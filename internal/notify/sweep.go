package notify

import (
	"context"
	"log/slog"
)

// Sweep loads the project collection once, computes each user's digest and
// sends one email per user. A delivery failure for one recipient is logged
// and does not abort the rest of the sweep.
func (n *Notifier) Sweep(ctx context.Context) {
	if n.mailer == nil {
		slog.Warn("notification sweep skipped: no mailer configured")
		return
	}

	projects := n.projects.All(ctx)
	users := n.users.All(ctx)

	sent := 0
	for _, user := range users {
		if user.Email == "" {
			continue
		}

		ownerID := ""
		if n.opts.ScopeToOwner {
			ownerID = user.ID
		}
		created, nearing := n.digest(projects, ownerID)

		body := renderDigest(user.Name, created, nearing)
		if body == "" {
			continue
		}

		if err := n.mailer.Send(ctx, user.Email, n.opts.Subject, body); err != nil {
			slog.Error("failed to send digest",
				"email", user.Email,
				"error", err,
			)
			continue
		}
		sent++
	}

	slog.Info("notification sweep finished",
		"users", len(users),
		"projects", len(projects),
		"sent", sent,
	)
}
