package notify

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"sync"

	"recruit-api/internal/models"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

var subjects = map[models.ApplicationStatus]string{
	models.StatusShortlisted: "Your application for %s has been shortlisted",
	models.StatusRejected:    "Update on your application for %s",
}

// StatusChange describes one application that entered a new status.
type StatusChange struct {
	ApplicantName  string
	ApplicantEmail string
	JobTitle       string
	Status         models.ApplicationStatus
}

type templateData struct {
	ApplicantName string
	JobTitle      string
	Organization  string
}

// Notifier renders status emails and delivers them through a Mailer with
// at most poolSize sends in flight across all batches.
type Notifier struct {
	mailer       Mailer
	organization string
	poolSize     int
	slots        *semaphore.Weighted

	inflight sync.WaitGroup
}

// NewNotifier creates a new Notifier.
func NewNotifier(mailer Mailer, organization string, poolSize int) *Notifier {
	if poolSize <= 0 {
		poolSize = 1
	}
	return &Notifier{
		mailer:       mailer,
		organization: organization,
		poolSize:     poolSize,
		slots:        semaphore.NewWeighted(int64(poolSize)),
	}
}

// Render builds the message for change. Statuses without a template yield ok=false.
func (n *Notifier) Render(change StatusChange) (Message, bool, error) {
	subject, ok := subjects[change.Status]
	if !ok {
		return Message{}, false, nil
	}
	var body bytes.Buffer
	err := templates.ExecuteTemplate(&body, string(change.Status)+".html", templateData{
		ApplicantName: change.ApplicantName,
		JobTitle:      change.JobTitle,
		Organization:  n.organization,
	})
	if err != nil {
		return Message{}, false, fmt.Errorf("render %s email: %w", change.Status, err)
	}
	return Message{
		To:      change.ApplicantEmail,
		Subject: fmt.Sprintf(subject, change.JobTitle),
		HTML:    body.String(),
	}, true, nil
}

// Dispatch sends the emails in the background, detached from ctx
// cancellation so they outlive the HTTP request.
func (n *Notifier) Dispatch(ctx context.Context, changes []StatusChange) {
	if len(changes) == 0 {
		return
	}
	ctx = context.WithoutCancel(ctx)
	n.inflight.Add(1)
	go func() {
		defer n.inflight.Done()
		sent, failed := n.NotifyAll(ctx, changes)
		slog.InfoContext(ctx, "status emails processed", "sent", sent, "failed", failed)
	}()
}

// Wait blocks until every dispatched batch finished.
func (n *Notifier) Wait() {
	n.inflight.Wait()
}

// NotifyAll sends one email per change. Delivery is best effort: failures
// are logged and counted, never returned. It blocks until every send finished.
func (n *Notifier) NotifyAll(ctx context.Context, changes []StatusChange) (sent, failed int) {
	if len(changes) == 0 {
		return 0, 0
	}

	results := make([]bool, len(changes))
	var g errgroup.Group
	g.SetLimit(n.poolSize)
	for i, change := range changes {
		g.Go(func() error {
			results[i] = n.send(ctx, change)
			return nil
		})
	}
	_ = g.Wait()

	for _, ok := range results {
		if ok {
			sent++
		} else {
			failed++
		}
	}
	return sent, failed
}

func (n *Notifier) send(ctx context.Context, change StatusChange) bool {
	msg, ok, err := n.Render(change)
	if err != nil {
		slog.ErrorContext(ctx, "failed to render status email", "status", change.Status, "error", err)
		return false
	}
	if !ok {
		return true
	}

	if err := n.slots.Acquire(ctx, 1); err != nil {
		slog.WarnContext(ctx, "status email abandoned", "to", change.ApplicantEmail, "error", err)
		return false
	}
	defer n.slots.Release(1)
	if err := n.mailer.Send(ctx, msg); err != nil {
		slog.WarnContext(ctx, "failed to send status email",
			"to", change.ApplicantEmail, "status", change.Status, "error", err)
		return false
	}
	return true
}
