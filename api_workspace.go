package rockset

import (
	"context"
	"encoding/json"
	"io"
	"net/url"
)

// workspaceAPI defines interfaces under /v1/orgs/self/ws.
type workspaceAPI interface {
	// createWorkspace creates a new workspace and returns its metadata.
	createWorkspace(ctx context.Context, req *createWorkspaceRequest) (*WorkspaceMeta, error)
	// getWorkspace fetches the metadata of a workspace by its name.
	getWorkspace(ctx context.Context, name string) (*WorkspaceMeta, error)
	// deleteWorkspace deletes a workspace by its name.
	deleteWorkspace(ctx context.Context, name string) (*WorkspaceMeta, error)
}

var _ workspaceAPI = (*Client)(nil)

type createWorkspaceRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// WorkspaceMeta describes a workspace as reported by the server.
type WorkspaceMeta struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
	CreatedBy   string `json:"created_by,omitempty"`
	// CollectionCount is the number of collections in the workspace.
	CollectionCount int64 `json:"collection_count"`
}

type workspaceResponse struct {
	Data *WorkspaceMeta `json:"data"`
}

func (c *Client) createWorkspace(ctx context.Context, request *createWorkspaceRequest) (*WorkspaceMeta, error) {
	req, err := url.Parse(c.config.Endpoint + "/v1/orgs/self/ws")
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(request)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Post(ctx, req, body)
	if err != nil {
		return nil, err
	}
	defer sneakyBodyClose(resp.Body)
	if err := checkStatusCodeOK(resp); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	var respData workspaceResponse
	err = json.Unmarshal(data, &respData)
	return respData.Data, err
}

func (c *Client) getWorkspace(ctx context.Context, name string) (*WorkspaceMeta, error) {
	req, err := url.Parse(c.config.Endpoint + "/v1/orgs/self/ws/" + url.PathEscape(name))
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Get(ctx, req)
	if err != nil {
		return nil, err
	}
	defer sneakyBodyClose(resp.Body)
	if err := checkStatusCodeOK(resp); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	var respData workspaceResponse
	err = json.Unmarshal(data, &respData)
	return respData.Data, err
}

func (c *Client) deleteWorkspace(ctx context.Context, name string) (*WorkspaceMeta, error) {
	req, err := url.Parse(c.config.Endpoint + "/v1/orgs/self/ws/" + url.PathEscape(name))
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Delete(ctx, req, nil)
	if err != nil {
		return nil, err
	}
	defer sneakyBodyClose(resp.Body)
	if err := checkStatusCodeOK(resp); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	var respData workspaceResponse
	err = json.Unmarshal(data, &respData)
	return respData.Data, err
}
