package rockset

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestQueryExecute(t *testing.T) {
	var gotPath string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.Method + " " + r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(`{
			"query_id": "b3f2c0d4-7a1e-4f3b-9c6d-0e5a8b1c2d3e",
			"status": "COMPLETED",
			"results": [
				{"name": "Tokyo", "country": "Japan", "population": 37400068},
				{"name": "Delhi", "country": "India", "population": 28514000}
			],
			"column_fields": [
				{"name": "name", "type": "string"},
				{"name": "country", "type": "string"},
				{"name": "population", "type": "int"}
			],
			"stats": {"elapsed_time_ms": 12}
		}`))
	}))
	defer srv.Close()

	c := NewClient(&Config{Endpoint: srv.URL, APIKey: "test-key"})
	defer c.Close()

	rs, err := c.Query(`SELECT name, country, population FROM "quickstart"."cities" WHERE population > :min_population LIMIT :limit`).
		Bind("min_population", IntDataType, "1000000").
		Bind("limit", IntDataType, "5").
		Execute(context.Background())
	require.NoError(t, err)

	require.Equal(t, "POST /v1/orgs/self/queries", gotPath)
	sql, ok := gotBody["sql"].(map[string]any)
	require.True(t, ok)
	require.Contains(t, sql["query"], "WHERE population > :min_population")
	params, ok := sql["parameters"].([]any)
	require.True(t, ok)
	require.Equal(t, []any{
		map[string]any{"name": "min_population", "type": "int", "value": "1000000"},
		map[string]any{"name": "limit", "type": "int", "value": "5"},
	}, params)

	require.Equal(t, "b3f2c0d4-7a1e-4f3b-9c6d-0e5a8b1c2d3e", rs.QueryID)
	require.EqualValues(t, 2, rs.TotalRows)
	require.EqualValues(t, 12, rs.Stats.ElapsedTimeMs)
	require.Equal(t, Schema{
		{Name: "name", Type: StringDataType},
		{Name: "country", Type: StringDataType},
		{Name: "population", Type: IntDataType},
	}, rs.Schema)

	values, err := rs.ToValues()
	require.NoError(t, err)
	require.Equal(t, [][]Value{
		{"Tokyo", "Japan", int64(37400068)},
		{"Delhi", "India", int64(28514000)},
	}, values)
}

func TestQueryNoParameters(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(`{"query_id": "q1", "status": "COMPLETED", "results": [], "column_fields": []}`))
	}))
	defer srv.Close()

	c := NewClient(&Config{Endpoint: srv.URL, APIKey: "test-key"})
	defer c.Close()

	rs, err := c.Query(`SELECT 1`).Execute(context.Background())
	require.NoError(t, err)
	require.Zero(t, rs.TotalRows)

	sql, ok := gotBody["sql"].(map[string]any)
	require.True(t, ok)
	require.NotContains(t, sql, "parameters")
	require.NotContains(t, gotBody, "query_id", "no ID is sent unless the caller supplies one")
}

func TestQueryClientSuppliedID(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(`{
			"query_id": "c8fe71d6-3695-11f0-85b3-063c3400fda9",
			"status": "COMPLETED",
			"results": [],
			"column_fields": []
		}`))
	}))
	defer srv.Close()

	c := NewClient(&Config{Endpoint: srv.URL, APIKey: "test-key"})
	defer c.Close()

	id := uuid.MustParse("c8fe71d6-3695-11f0-85b3-063c3400fda9")
	q := c.Query(`SELECT 1`)
	q.ID = &id

	rs, err := q.Execute(context.Background())
	require.NoError(t, err)
	require.Equal(t, id.String(), gotBody["query_id"])
	require.Equal(t, id.String(), rs.QueryID)
}

func TestQueryTypedResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"query_id": "q2",
			"status": "COMPLETED",
			"results": [
				{"b": true, "f": 1.5, "ts": "2024-06-01T12:00:00.000000Z", "tags": ["a", "b"], "meta": {"k": "v"}, "missing": null}
			],
			"column_fields": [
				{"name": "b", "type": "bool"},
				{"name": "f", "type": "float"},
				{"name": "ts", "type": "timestamp"},
				{"name": "tags", "type": "array"},
				{"name": "meta", "type": "object"},
				{"name": "missing", "type": "null"}
			]
		}`))
	}))
	defer srv.Close()

	c := NewClient(&Config{Endpoint: srv.URL, APIKey: "test-key"})
	defer c.Close()

	rs, err := c.Query(`SELECT *`).Execute(context.Background())
	require.NoError(t, err)

	values, err := rs.ToValues()
	require.NoError(t, err)
	require.Len(t, values, 1)
	row := values[0]
	require.Equal(t, true, row[0])
	require.Equal(t, 1.5, row[1])
	ts, ok := row[2].(time.Time)
	require.True(t, ok)
	require.True(t, ts.Equal(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)))
	require.Equal(t, []any{"a", "b"}, row[3])
	require.Equal(t, map[string]any{"k": "v"}, row[4])
	require.Nil(t, row[5])
}

func TestQueryRemoteError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"type":"QUERY_ERROR","message":"unknown column bogus"}`))
	}))
	defer srv.Close()

	c := NewClient(&Config{Endpoint: srv.URL, APIKey: "test-key"})
	defer c.Close()

	_, err := c.Query(`SELECT bogus FROM nowhere`).Execute(context.Background())
	require.Error(t, err)

	apiErr := &Error{}
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "QUERY_ERROR", apiErr.Type)
	require.Contains(t, apiErr.Error(), "unknown column bogus")
}
