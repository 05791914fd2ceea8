package rockset

import (
	"context"
)

// Workspace is a handle to a workspace, a namespace grouping collections.
type Workspace struct {
	c *Client

	// Name is the name of the workspace.
	Name string
	// Description is an optional human-readable description, stored
	// server-side on creation.
	Description string
}

// Workspace creates a new workspace handle with the given name.
func (c *Client) Workspace(name string) *Workspace {
	return &Workspace{
		c:    c,
		Name: name,
	}
}

// Create creates the workspace on the server.
func (w *Workspace) Create(ctx context.Context) (*WorkspaceMeta, error) {
	return w.c.createWorkspace(ctx, &createWorkspaceRequest{
		Name:        w.Name,
		Description: w.Description,
	})
}

// Get fetches the workspace metadata from the server.
func (w *Workspace) Get(ctx context.Context) (*WorkspaceMeta, error) {
	return w.c.getWorkspace(ctx, w.Name)
}

// Drop requests deletion of the workspace. The workspace must not
// contain collections.
//
// Deletion is asynchronous; use WaitDropped to confirm absence.
func (w *Workspace) Drop(ctx context.Context) error {
	_, err := w.c.deleteWorkspace(ctx, w.Name)
	return err
}

// WaitDropped polls the workspace until the server reports it absent.
func (w *Workspace) WaitDropped(ctx context.Context) error {
	return waitGone(ctx, func(ctx context.Context) error {
		_, err := w.c.getWorkspace(ctx, w.Name)
		return err
	})
}
