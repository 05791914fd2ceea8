package rockset

import (
	"bytes"
	"context"
	"fmt"
)

// CollectionStatus is a string that represents the lifecycle state of a
// collection. The state is owned and reported entirely by the server.
type CollectionStatus string

const (
	// CollectionStatusCreated indicates the collection is created but ingest has not started.
	CollectionStatusCreated CollectionStatus = "CREATED"
	// CollectionStatusInitializing indicates the initial ingest from the sources is in progress.
	CollectionStatusInitializing CollectionStatus = "INITIALIZING"
	// CollectionStatusReady indicates the collection serves queries.
	CollectionStatusReady CollectionStatus = "READY"
	// CollectionStatusPaused indicates ingest is paused.
	CollectionStatusPaused CollectionStatus = "PAUSED"
	// CollectionStatusDeleting indicates the collection is being deleted.
	CollectionStatusDeleting CollectionStatus = "DELETING"
	// CollectionStatusUnknown indicates the server could not determine the state.
	CollectionStatusUnknown CollectionStatus = "UNKNOWN"
)

// Ready returns true if the collection serves queries.
func (s CollectionStatus) Ready() bool {
	switch s {
	case CollectionStatusReady:
		return true
	case CollectionStatusCreated, CollectionStatusInitializing, CollectionStatusPaused, CollectionStatusDeleting, CollectionStatusUnknown:
		return false
	default:
		return false
	}
}

// Deleting returns true if the collection is being deleted.
func (s CollectionStatus) Deleting() bool {
	return s == CollectionStatusDeleting
}

// Collection is a handle to a collection, a named dataset in a workspace
// populated from external sources.
type Collection struct {
	c *Client

	// Workspace is the name of the workspace containing the collection.
	Workspace string
	// Name is the name of the collection.
	Name string
	// Description is an optional human-readable description, stored
	// server-side on creation.
	Description string
	// Sources are the external locations the collection ingests from.
	Sources []*Source
	// IngestTransformation is a SQL expression applied to each ingested
	// record before storage. The expression reads the incoming record
	// as _input.
	IngestTransformation string
}

// Collection creates a new collection handle with the given workspace and name.
func (c *Client) Collection(workspace, name string) *Collection {
	return &Collection{
		c:         c,
		Workspace: workspace,
		Name:      name,
	}
}

// Create creates the collection on the server.
//
// Creation only registers the collection; the initial ingest from the
// sources runs asynchronously. Use WaitReady to wait for it.
func (col *Collection) Create(ctx context.Context) (*CollectionMeta, error) {
	return col.c.createCollection(ctx, col.Workspace, &createCollectionRequest{
		Name:                 col.Name,
		Description:          col.Description,
		Sources:              col.Sources,
		IngestTransformation: col.IngestTransformation,
	})
}

// Describe fetches the collection metadata from the server.
func (col *Collection) Describe(ctx context.Context) (*CollectionMeta, error) {
	return col.c.getCollection(ctx, col.Workspace, col.Name)
}

// Status fetches the current lifecycle state of the collection.
func (col *Collection) Status(ctx context.Context) (CollectionStatus, error) {
	meta, err := col.Describe(ctx)
	if err != nil {
		return CollectionStatusUnknown, err
	}
	return meta.Status, nil
}

// WaitReady polls the collection until it is ready to serve queries and
// returns the last seen metadata.
func (col *Collection) WaitReady(ctx context.Context) (*CollectionMeta, error) {
	var meta *CollectionMeta
	err := pollUntil(ctx, func(ctx context.Context) (bool, error) {
		m, err := col.Describe(ctx)
		if err != nil {
			return false, err
		}
		meta = m
		return m.Status.Ready(), nil
	})
	if err != nil {
		return nil, err
	}
	return meta, nil
}

// Drop requests deletion of the collection.
//
// Deletion is asynchronous; use WaitDropped to confirm absence.
func (col *Collection) Drop(ctx context.Context) error {
	_, err := col.c.deleteCollection(ctx, col.Workspace, col.Name)
	return err
}

// WaitDropped polls the collection until the server reports it absent.
func (col *Collection) WaitDropped(ctx context.Context) error {
	return waitGone(ctx, func(ctx context.Context) error {
		_, err := col.c.getCollection(ctx, col.Workspace, col.Name)
		return err
	})
}

// Identifier returns the quoted "workspace"."name" form for use in SQL text.
func (col *Collection) Identifier() string {
	var b bytes.Buffer
	if col.Workspace != "" {
		b.WriteString(quoteIdent(col.Workspace, '"'))
		b.WriteByte('.')
	}
	b.WriteString(quoteIdent(col.Name, '"'))
	return b.String()
}

func quoteIdent(s string, r rune) string {
	var b bytes.Buffer
	b.WriteRune(r)
	for _, c := range s {
		switch c {
		case '\t':
			b.WriteString("\\t")
		case '\n':
			b.WriteString("\\n")
		case '\r':
			b.WriteString("\\r")
		case '\\':
			b.WriteString("\\\\")
		default:
			if c == r {
				b.WriteRune('\\')
				b.WriteRune(c)
				break
			}

			if c < 0x20 {
				b.WriteString(fmt.Sprintf("\\x%02x", c))
				break
			}

			b.WriteRune(c)
		}
	}
	b.WriteRune(r)
	return b.String()
}
