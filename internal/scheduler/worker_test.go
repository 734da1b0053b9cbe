package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/anbuchelva/cams/internal/notify"
	"github.com/anbuchelva/cams/internal/repository"
	"github.com/anbuchelva/cams/internal/store"
)

type countingMailer struct {
	mu    sync.Mutex
	sends int
}

func (m *countingMailer) Send(ctx context.Context, to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sends++
	return nil
}

func (m *countingMailer) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sends
}

func TestWorkerSweepsOnInterval(t *testing.T) {
	st := store.NewMemory()
	users := repository.NewUsers(st)
	blobs, err := store.NewBlobStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	projects := repository.NewProjects(st, blobs)

	ctx := context.Background()
	user, err := users.Register(ctx, repository.RegisterParams{
		Name: "A", Email: "a@college.edu", Password: "password123", Department: "CSE",
	})
	if err != nil {
		t.Fatal(err)
	}
	amount := 1000.0
	if _, err := projects.Create(ctx, repository.CreateParams{
		UserID:                user.ID,
		IndustryName:          "Acme",
		Title:                 "Fresh Project",
		PrincipalInvestigator: "Dr. A",
		AcademicYear:          "2024-2025",
		AgreementDocument:     "agreementDocument-1-1.pdf",
		AmountSanctioned:      &amount,
	}); err != nil {
		t.Fatal(err)
	}

	mailer := &countingMailer{}
	notifier := notify.New(projects, users, mailer, notify.DefaultOptions())

	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		NewWorker(notifier, 10*time.Millisecond).Start(runCtx)
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for mailer.count() == 0 {
		select {
		case <-deadline:
			t.Fatal("no sweep ran within the deadline")
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop after cancellation")
	}
}
