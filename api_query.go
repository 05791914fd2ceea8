package rockset

import (
	"context"
	"encoding/json"
	"io"
	"net/url"

	"github.com/google/uuid"
)

// queryAPI defines interfaces under /v1/orgs/self/queries.
type queryAPI interface {
	// executeQuery submits a query to the server and waits for its result.
	executeQuery(ctx context.Context, req *queryRequest) (*queryResponse, error)
}

var _ queryAPI = (*Client)(nil)

type queryRequest struct {
	// QueryID is the ID of the query.
	//
	// If provided, the ID must be a UUID, and the server uses the
	// provided ID for the execution; otherwise, the server generates a
	// new UUID for the query submitted.
	QueryID *uuid.UUID `json:"query_id,omitempty"`
	SQL     *querySQL  `json:"sql"`
}

type querySQL struct {
	Query           string       `json:"query"`
	Parameters      []*Parameter `json:"parameters,omitempty"`
	DefaultRowLimit int32        `json:"default_row_limit,omitempty"`
}

// Parameter is a named bind parameter, referenced as :name in the SQL
// text and resolved by the server at execution time.
type Parameter struct {
	// Name is the parameter name, without the leading colon.
	Name string `json:"name"`
	// Type is the declared data type of the value.
	Type DataType `json:"type"`
	// Value is the literal value, rendered as a string.
	Value string `json:"value"`
}

type columnField struct {
	Name string   `json:"name"`
	Type DataType `json:"type"`
}

// QueryStats reports server-side timing for a query execution.
type QueryStats struct {
	// ElapsedTimeMs is the wall time the server spent on the query.
	ElapsedTimeMs int64 `json:"elapsed_time_ms"`
	// ThrottledTimeMicros is the time the query spent queued.
	ThrottledTimeMicros int64 `json:"throttled_time_micros"`
}

type queryResponse struct {
	QueryID      string            `json:"query_id"`
	Status       string            `json:"status"`
	Results      []json.RawMessage `json:"results"`
	ColumnFields []*columnField    `json:"column_fields"`
	Stats        *QueryStats       `json:"stats"`
}

func (c *Client) executeQuery(ctx context.Context, request *queryRequest) (*queryResponse, error) {
	req, err := url.Parse(c.config.Endpoint + "/v1/orgs/self/queries")
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
	var respData queryResponse
	err = json.Unmarshal(data, &respData)
	return &respData, err
}
