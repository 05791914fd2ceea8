package rockset

import (
	"context"
	"encoding/json"
	"io"
	"net/url"
)

// documentAPI defines interfaces under
// /v1/orgs/self/ws/{workspace}/collections/{collection}/docs.
type documentAPI interface {
	// addDocuments writes documents into the collection and reports the outcome per document.
	addDocuments(ctx context.Context, workspace, collection string, req *addDocumentsRequest) ([]*DocumentStatus, error)
	// deleteDocuments removes documents from the collection by their _id.
	deleteDocuments(ctx context.Context, workspace, collection string, req *deleteDocumentsRequest) ([]*DocumentStatus, error)
}

var _ documentAPI = (*Client)(nil)

type addDocumentsRequest struct {
	Data []Document `json:"data"`
}

// DocumentID identifies a single document for deletion.
type DocumentID struct {
	ID string `json:"_id"`
}

type deleteDocumentsRequest struct {
	Data []*DocumentID `json:"data"`
}

// DocumentStatus reports the outcome of a single document write.
type DocumentStatus struct {
	ID string `json:"_id"`
	// Status is ADDED, REPLACED, DELETED or ERROR.
	Status string `json:"status"`
	Error  *Error `json:"error,omitempty"`
}

type documentsResponse struct {
	Data []*DocumentStatus `json:"data"`
}

func docsURL(endpoint, workspace, collection string) string {
	return collectionsURL(endpoint, workspace) + "/" + url.PathEscape(collection) + "/docs"
}

func (c *Client) addDocuments(ctx context.Context, workspace, collection string, request *addDocumentsRequest) ([]*DocumentStatus, error) {
	req, err := url.Parse(docsURL(c.config.Endpoint, workspace, collection))
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
	var respData documentsResponse
	err = json.Unmarshal(data, &respData)
	return respData.Data, err
}

func (c *Client) deleteDocuments(ctx context.Context, workspace, collection string, request *deleteDocumentsRequest) ([]*DocumentStatus, error) {
	req, err := url.Parse(docsURL(c.config.Endpoint, workspace, collection))
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(request)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Delete(ctx, req, body)
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
	var respData documentsResponse
	err = json.Unmarshal(data, &respData)
	return respData.Data, err
}
