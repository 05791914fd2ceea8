package rockset

import (
	"context"

	"github.com/google/uuid"
)

// Query is a struct that represents a SQL query to be executed on the
// server. A query is stateless: it has no lifecycle beyond a single
// request and response.
type Query struct {
	c *Client

	sql string

	// ID of the query.
	//
	// If provided, the ID must be a UUID, and the server tags the
	// execution with it; otherwise, the server generates a random UUID
	// for the query submitted.
	ID *uuid.UUID
	// Parameters are the named bind parameters referenced as :name in
	// the SQL text.
	Parameters []*Parameter
	// DefaultRowLimit caps the result size when the SQL text carries no
	// LIMIT clause. Zero leaves the server default in place.
	DefaultRowLimit int32
}

// Query creates a new query with the given SQL text.
func (c *Client) Query(sql string) *Query {
	return &Query{
		c:   c,
		sql: sql,
	}
}

// Bind appends a named parameter binding and returns the query, so that
// bindings can be chained.
func (q *Query) Bind(name string, typ DataType, value string) *Query {
	q.Parameters = append(q.Parameters, &Parameter{
		Name:  name,
		Type:  typ,
		Value: value,
	})
	return q
}

// Execute runs the query on the server and returns its result set.
func (q *Query) Execute(ctx context.Context) (*ResultSet, error) {
	resp, err := q.c.executeQuery(ctx, &queryRequest{
		QueryID: q.ID,
		SQL: &querySQL{
			Query:           q.sql,
			Parameters:      q.Parameters,
			DefaultRowLimit: q.DefaultRowLimit,
		},
	})
	if err != nil {
		return nil, err
	}
	return resp.toResultSet(), nil
}
