package itcases

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/gkampitakis/go-snaps/snaps"
	rockset "github.com/paytons3/Rockset-Recipe-Quickstart-Guide"
	"github.com/stretchr/testify/require"
)

func TestWorkspaceLifecycle(t *testing.T) {
	c := NewClient(t)
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	ws := c.Workspace(RandomName(t))
	ws.Description = "integration test workspace"

	meta, err := ws.Create(ctx)
	require.NoError(t, err)
	require.Equal(t, ws.Name, meta.Name)

	meta, err = ws.Get(ctx)
	require.NoError(t, err)
	require.Zero(t, meta.CollectionCount)

	require.NoError(t, ws.Drop(ctx))
	require.NoError(t, ws.WaitDropped(ctx))

	_, err = ws.Get(ctx)
	require.True(t, rockset.IsNotFound(err))
}

func TestCollectionWriteAndQuery(t *testing.T) {
	c := NewClient(t)
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Minute)
	defer cancel()

	ws := c.Workspace(RandomName(t))
	_, err := ws.Create(ctx)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, ws.Drop(ctx))
		require.NoError(t, ws.WaitDropped(ctx))
	}()

	col := c.Collection(ws.Name, RandomName(t))
	_, err = col.Create(ctx)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, col.Drop(ctx))
		require.NoError(t, col.WaitDropped(ctx))
	}()

	_, err = col.WaitReady(ctx)
	require.NoError(t, err)

	docs := make([]rockset.Document, 0, 10)
	for i := 0; i < 10; i++ {
		docs = append(docs, rockset.Document{
			"name":       gofakeit.City(),
			"population": gofakeit.Number(1000, 10_000_000),
		})
	}
	statuses, err := col.AddDocuments(ctx, docs)
	require.NoError(t, err)
	require.Len(t, statuses, 10)
	for _, s := range statuses {
		require.Equal(t, "ADDED", s.Status)
	}

	// The write API is eventually visible to queries; poll for the count.
	countQuery := fmt.Sprintf(`SELECT COUNT(*) AS n FROM %s`, col.Identifier())
	require.Eventually(t, func() bool {
		rs, err := c.Query(countQuery).Execute(ctx)
		if err != nil {
			return false
		}
		values, err := rs.ToValues()
		if err != nil || len(values) != 1 {
			return false
		}
		n, _ := values[0][0].(int64)
		return n == 10
	}, 5*time.Minute, 5*time.Second)

	rs, err := c.Query(fmt.Sprintf(`
		SELECT name, population
		FROM %s
		WHERE population >= :min_population
		ORDER BY population DESC
		LIMIT :limit
	`, col.Identifier())).
		Bind("min_population", rockset.IntDataType, "1000").
		Bind("limit", rockset.IntDataType, "3").
		Execute(ctx)
	require.NoError(t, err)
	require.LessOrEqual(t, rs.TotalRows, int64(3))
	snaps.MatchSnapshot(t, rs.Schema)
}

func TestQueryFail(t *testing.T) {
	c := NewClient(t)
	defer c.Close()

	ctx := context.Background()

	_, err := c.Query("SELECT UNKNOWN_FUNCTION()").Execute(ctx)
	require.Error(t, err)
	snaps.MatchSnapshot(t, err.Error())
}
