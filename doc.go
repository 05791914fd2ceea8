/*
Package rockset provides a lightweight and easy-to-use client for driving a
hosted analytics database service through its HTTP API.

# Client

Use NewClient to create a client struct. This is the major entrance to
construct structs for interacting with the service:

	client := rockset.NewClient(&rockset.Config{
		Endpoint: rockset.EndpointUsWest2,
		APIKey:   os.Getenv("ROCKSET_API_KEY"),
	})

# Create Resources

Workspaces group collections, and collections are populated from external
sources with an ingestion transformation applied to each record:

	ws := client.Workspace("quickstart")
	if _, err := ws.Create(ctx); err != nil {
		return err
	}

	col := client.Collection(ws.Name, "cities")
	col.Sources = []*rockset.Source{{
		S3: &rockset.S3Source{Bucket: "rockset-public-datasets", Prefix: "cities"},
	}}
	col.IngestTransformation = `SELECT _input.* FROM _input`
	if _, err := col.Create(ctx); err != nil {
		return err
	}
	if _, err := col.WaitReady(ctx); err != nil {
		return err
	}

# Query Data

Build a Query, optionally bind named parameters, and execute it to get a
result set:

	rs, err := client.Query(fmt.Sprintf(`
		SELECT name, population FROM %s
		WHERE population > :min_population
		LIMIT :limit
	`, col.Identifier())).
		Bind("min_population", rockset.IntDataType, "1000000").
		Bind("limit", rockset.IntDataType, "5").
		Execute(ctx)
	if err != nil {
		return err
	}
	values, err := rs.ToValues()

# Write Data via Cables

Use DocumentBatchCable to stream documents into a collection:

	cable := col.DocumentBatchCable()
	cable.Start(ctx)
	defer cable.Close()

	done, errCh := cable.Send(rockset.Document{"name": "Berlin", "population": 3677472})
	<-done
	if err := <-errCh; err != nil {
		return err
	}
*/
package rockset
