package rockset

import (
	"context"

	"github.com/google/uuid"
)

// Document is a single JSON document to write into a collection.
type Document map[string]any

// EnsureID returns the document's _id, assigning a client-generated UUID
// if the document has none. Writes with the same _id replace the stored
// document, so a failed add can be retried without duplicating data.
func (d Document) EnsureID() string {
	if id, ok := d["_id"].(string); ok && id != "" {
		return id
	}
	id := uuid.NewString()
	d["_id"] = id
	return id
}

// AddDocuments writes the given documents into the collection. Every
// document is assigned an _id before the write if it has none.
//
// The returned statuses report the outcome per document; a write can
// partially succeed.
func (col *Collection) AddDocuments(ctx context.Context, docs []Document) ([]*DocumentStatus, error) {
	for _, d := range docs {
		d.EnsureID()
	}
	return col.c.addDocuments(ctx, col.Workspace, col.Name, &addDocumentsRequest{
		Data: docs,
	})
}

// DeleteDocuments removes the documents with the given _ids from the
// collection.
func (col *Collection) DeleteDocuments(ctx context.Context, ids []string) ([]*DocumentStatus, error) {
	docIDs := make([]*DocumentID, 0, len(ids))
	for _, id := range ids {
		docIDs = append(docIDs, &DocumentID{ID: id})
	}
	return col.c.deleteDocuments(ctx, col.Workspace, col.Name, &deleteDocumentsRequest{
		Data: docIDs,
	})
}
