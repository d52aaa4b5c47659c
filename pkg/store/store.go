// Package store persists chart documents so they can be fetched and edited
// later by ID.
//
// Three backends are provided:
//   - [MemoryStore]: in-process, for tests and a standalone server
//   - [FileStore]: one JSON file per chart, for the CLI
//   - [MongoStore]: a MongoDB collection, for shared deployments
//
// Every backend hands out copies: mutating a document returned by Get does
// not change the stored chart until it is saved again.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/seatchart/pkg/chart"
	"github.com/matzehuels/seatchart/pkg/errors"
)

// Store is the interface for chart storage backends.
type Store interface {
	// Save stores doc. A document without an ID is given a new one; doc.ID
	// is set either way. The stored ID is returned.
	Save(ctx context.Context, doc *chart.Document) (string, error)

	// Get returns the chart with the given ID, or a CHART_NOT_FOUND error.
	Get(ctx context.Context, id string) (*chart.Document, error)

	// List returns summaries of stored charts, newest first. A limit of
	// zero or less returns all of them.
	List(ctx context.Context, limit int) ([]Summary, error)

	// Delete removes a chart. Deleting a missing chart is a CHART_NOT_FOUND
	// error.
	Delete(ctx context.Context, id string) error

	// Close releases any resources held by the store.
	Close() error
}

// Summary describes a stored chart without its grid.
type Summary struct {
	ID        string    `json:"id"`
	Title     string    `json:"title,omitempty"`
	Layout    string    `json:"layout"`
	Rows      int       `json:"rows"`
	Placed    int       `json:"placed"`
	Unplaced  int       `json:"unplaced"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at,omitzero"`
}

// Summarize builds the summary of doc.
func Summarize(doc *chart.Document) Summary {
	return Summary{
		ID:        doc.ID,
		Title:     doc.Title,
		Layout:    string(doc.Layout),
		Rows:      len(doc.Rows),
		Placed:    len(doc.Members()),
		Unplaced:  len(doc.Unplaced),
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}
}

// NotFound returns the error reported for a missing chart.
func NotFound(id string) error {
	return errors.New(errors.ErrCodeChartNotFound, "chart %s not found", id)
}

// IsNotFound reports whether err means a chart does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, errors.ErrCodeChartNotFound)
}

// ValidateID checks that id is a chart ID handed out by a store.
func ValidateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return errors.New(errors.ErrCodeInvalidInput, "invalid chart id: %q", id)
	}
	return nil
}

// prepare assigns an ID to a new document and stamps the update time.
func prepare(doc *chart.Document, now time.Time) error {
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	} else if err := ValidateID(doc.ID); err != nil {
		return err
	}
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = now
	}
	doc.UpdatedAt = now
	return doc.Validate()
}

// limit trims summaries to n when n is positive.
func limit(summaries []Summary, n int) []Summary {
	if n > 0 && len(summaries) > n {
		return summaries[:n]
	}
	return summaries
}
