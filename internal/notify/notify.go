// Package notify computes project digests: which projects were recently
// created and which are nearing their projected completion. It serves both
// the pull-style notification feed and the periodic email sweep.
package notify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/anbuchelva/cams/internal/domain"
	"github.com/anbuchelva/cams/internal/repository"
)

// Mailer delivers one rendered digest to one recipient.
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// Options tune the digest windows and delivery.
type Options struct {
	// WindowDays bounds both digest sets: projects created within the last
	// WindowDays, and projects whose projected completion falls within the
	// next WindowDays.
	WindowDays int
	// Subject of the digest email.
	Subject string
	// ScopeToOwner restricts each user's digest email to their own
	// projects. Historically every faculty member received the system-wide
	// digest; the pull feed is always owner-scoped regardless.
	ScopeToOwner bool
}

// DefaultOptions matches the historical sweep behavior.
func DefaultOptions() Options {
	return Options{
		WindowDays: 15,
		Subject:    "CAMS: Project Notifications",
	}
}

// Notifier computes digests over the project collection.
type Notifier struct {
	projects *repository.Projects
	users    *repository.Users
	mailer   Mailer
	opts     Options

	now func() time.Time
}

// New creates a Notifier. mailer may be nil, in which case Sweep only logs.
func New(projects *repository.Projects, users *repository.Users, mailer Mailer, opts Options) *Notifier {
	if opts.WindowDays <= 0 {
		opts.WindowDays = DefaultOptions().WindowDays
	}
	if opts.Subject == "" {
		opts.Subject = DefaultOptions().Subject
	}
	return &Notifier{
		projects: projects,
		users:    users,
		mailer:   mailer,
		opts:     opts,
		now:      time.Now,
	}
}

// digest partitions projects into "new" and "nearing completion" sets,
// optionally restricted to one owner.
func (n *Notifier) digest(projects []domain.Project, ownerID string) (created, nearing []domain.Project) {
	now := n.now()
	window := time.Duration(n.opts.WindowDays) * 24 * time.Hour

	for _, p := range projects {
		if ownerID != "" && p.UserID != ownerID {
			continue
		}
		if age := now.Sub(p.CreatedAt); age >= 0 && age <= window {
			created = append(created, p)
		}
		if p.Duration > 0 {
			left := p.CompletionDate().Sub(now)
			if left > 0 && left <= window {
				nearing = append(nearing, p)
			}
		}
	}
	return created, nearing
}

// FeedFor builds the pull-style notification feed for one user. Both sets
// are strictly scoped to the requesting identity.
func (n *Notifier) FeedFor(ctx context.Context, userID string) []domain.Notification {
	created, nearing := n.digest(n.projects.All(ctx), userID)

	feed := make([]domain.Notification, 0, len(created)+len(nearing))
	for _, p := range created {
		feed = append(feed, domain.Notification{
			Title:   "New Project Added",
			Message: fmt.Sprintf("%s - %s", p.Title, p.IndustryName),
		})
	}
	for _, p := range nearing {
		feed = append(feed, domain.Notification{
			Title:   "Project Nearing Completion",
			Message: fmt.Sprintf("%s - %s", p.Title, p.IndustryName),
		})
	}
	return feed
}

// renderDigest builds the HTML body of one user's digest email, or "" when
// there is nothing to report.
func renderDigest(userName string, created, nearing []domain.Project) string {
	if len(created) == 0 && len(nearing) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("<h1>CAMS Notifications</h1>")
	fmt.Fprintf(&b, "<p>Hello %s,</p>", userName)
	b.WriteString("<p>Here are your consultancy project updates:</p>")

	writeSection := func(heading string, projects []domain.Project) {
		if len(projects) == 0 {
			return
		}
		fmt.Fprintf(&b, "<h2>%s</h2><ul>", heading)
		for _, p := range projects {
			fmt.Fprintf(&b, "<li><strong>%s</strong> - %s</li>", p.Title, p.IndustryName)
		}
		b.WriteString("</ul>")
	}
	writeSection("New Consultancy Projects", created)
	writeSection("Projects Nearing Completion", nearing)

	b.WriteString("<p>Login to the system for more details.</p>")
	b.WriteString("<p>Regards,<br>CAMS Team</p>")
	return b.String()
}
