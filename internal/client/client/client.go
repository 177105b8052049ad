package client

import (
	"context"
	"net/url"

	"github.com/dmitrijs2005/gradebook/internal/client/models"
)

// API is the transport contract the resource services depend on.
// HTTPClient implements it.
type API interface {
	// DoJSON sends body (if non-nil) as JSON and decodes the reply into out
	// (if non-nil).
	DoJSON(ctx context.Context, method, path string, query url.Values, body, out any) error
	// Download returns the raw reply payload.
	Download(ctx context.Context, method, path string, query url.Values, body any) (*models.File, error)
	// Upload posts a multipart form and decodes the JSON reply into out.
	Upload(ctx context.Context, path string, upload models.Upload, out any) error
}

// SessionStore is the part of the session store the pipeline needs.
type SessionStore interface {
	Token(ctx context.Context) (string, error)
	Clear(ctx context.Context) error
}
