package ports

import (
	"context"
	"errors"
	"io"
	"time"

	"marketplace/internal/core/domain/model/history"
	"marketplace/internal/core/domain/model/kernel"
)

// FileStore keeps uploaded documents (customer purchase orders, supplier
// invoices). References are content addressed: uploading the same bytes
// twice yields the same reference.
type FileStore interface {
	Upload(ctx context.Context, name, contentType string, body io.Reader) (string, error)

	// DownloadURL returns a time-limited URL for a reference returned by Upload.
	DownloadURL(ctx context.Context, ref string, ttl time.Duration) (string, error)
}

// OrderNumberer is the Numbering Registry. Numbers are unique and increase
// monotonically; gaps are allowed.
type OrderNumberer interface {
	Next(ctx context.Context) (string, error)
}

// NotificationSink receives applied transitions. Delivery is best effort.
type NotificationSink interface {
	Publish(ctx context.Context, record history.Record) error
}

// ErrInvalidToken is returned by IdentityProvider for tokens it cannot
// verify or that name no valid actor.
var ErrInvalidToken = errors.New("bearer token is invalid")

// IdentityProvider resolves a bearer token to the acting principal.
type IdentityProvider interface {
	ResolveActor(ctx context.Context, token string) (kernel.Actor, error)
}

// TransitionOutbox exposes transition log rows not yet handed to the
// notification sink.
type TransitionOutbox interface {
	Pending(ctx context.Context, limit int) ([]history.Record, error)
	MarkPublished(ctx context.Context, ids []kernel.UUID) error
}
