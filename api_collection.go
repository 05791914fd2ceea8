package rockset

import (
	"context"
	"encoding/json"
	"io"
	"net/url"
)

// collectionAPI defines interfaces under /v1/orgs/self/ws/{workspace}/collections.
type collectionAPI interface {
	// createCollection creates a new collection in the workspace and returns its metadata.
	createCollection(ctx context.Context, workspace string, req *createCollectionRequest) (*CollectionMeta, error)
	// getCollection fetches the metadata of a collection by its name.
	getCollection(ctx context.Context, workspace, name string) (*CollectionMeta, error)
	// deleteCollection deletes a collection by its name.
	deleteCollection(ctx context.Context, workspace, name string) (*CollectionMeta, error)
}

var _ collectionAPI = (*Client)(nil)

type createCollectionRequest struct {
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Sources     []*Source `json:"sources,omitempty"`
	// IngestTransformation is a SQL expression applied to each ingested
	// record before storage. It reads the incoming record as _input.
	IngestTransformation string `json:"ingest_transformation,omitempty"`
	RetentionSecs        int64  `json:"retention_secs,omitempty"`
}

// Source describes an external location a collection ingests from.
type Source struct {
	// IntegrationName names the integration holding the credentials for
	// the source. Leave empty for public sources.
	IntegrationName string    `json:"integration_name,omitempty"`
	S3              *S3Source `json:"s3,omitempty"`
}

// S3Source points at a bucket and key prefix to ingest.
type S3Source struct {
	Bucket string `json:"bucket"`
	Prefix string `json:"prefix,omitempty"`
	// Pattern is a glob over object keys. At most one of Prefix and
	// Pattern may be set.
	Pattern string `json:"pattern,omitempty"`
	Region  string `json:"region,omitempty"`
}

// CollectionMeta describes a collection as reported by the server.
//
// The lifecycle state in Status is owned entirely by the server; the
// client only observes it.
type CollectionMeta struct {
	Name                 string           `json:"name"`
	Workspace            string           `json:"workspace"`
	Description          string           `json:"description,omitempty"`
	Status               CollectionStatus `json:"status"`
	CreatedAt            string           `json:"created_at,omitempty"`
	Sources              []*Source        `json:"sources,omitempty"`
	IngestTransformation string           `json:"ingest_transformation,omitempty"`
	Stats                *CollectionStats `json:"stats,omitempty"`
}

// CollectionStats carries server-side size counters for a collection.
type CollectionStats struct {
	// DocCount is the number of documents stored in the collection.
	DocCount int64 `json:"doc_count"`
	// TotalSize is the total collection size in bytes.
	TotalSize int64 `json:"total_size"`
	// FillProgress denotes the initial ingest progress: [0.0, 1.0].
	FillProgress float64 `json:"fill_progress"`
}

type collectionResponse struct {
	Data *CollectionMeta `json:"data"`
}

func collectionsURL(endpoint, workspace string) string {
	return endpoint + "/v1/orgs/self/ws/" + url.PathEscape(workspace) + "/collections"
}

func (c *Client) createCollection(ctx context.Context, workspace string, request *createCollectionRequest) (*CollectionMeta, error) {
	req, err := url.Parse(collectionsURL(c.config.Endpoint, workspace))
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
	var respData collectionResponse
	err = json.Unmarshal(data, &respData)
	return respData.Data, err
}

func (c *Client) getCollection(ctx context.Context, workspace, name string) (*CollectionMeta, error) {
	req, err := url.Parse(collectionsURL(c.config.Endpoint, workspace) + "/" + url.PathEscape(name))
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
	var respData collectionResponse
	err = json.Unmarshal(data, &respData)
	return respData.Data, err
}

func (c *Client) deleteCollection(ctx context.Context, workspace, name string) (*CollectionMeta, error) {
	req, err := url.Parse(collectionsURL(c.config.Endpoint, workspace) + "/" + url.PathEscape(name))
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
	var respData collectionResponse
	err = json.Unmarshal(data, &respData)
	return respData.Data, err
}
