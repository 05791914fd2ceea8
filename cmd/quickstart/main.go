// Command quickstart walks through the full lifecycle of the service:
// it creates a workspace, two collections sourced from public S3
// datasets, waits for the initial ingest to finish, runs a literal and a
// parameterized query, and tears everything down again unless asked to
// keep the resources.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	rockset "github.com/paytons3/Rockset-Recipe-Quickstart-Guide"
	"github.com/spf13/cobra"
)

const publicDatasetsBucket = "rockset-public-datasets"

var flags struct {
	endpoint  string
	apiKey    string
	workspace string
	keep      bool
	timeout   time.Duration
}

var rootCmd = &cobra.Command{
	Use:           "quickstart",
	Short:         "Create demo collections from public datasets, query them, and tear them down",
	Long: `quickstart drives the service end to end: it creates a workspace and two
collections sourced from the public datasets bucket, waits until both are
ready to serve queries, runs a literal and a parameterized query against
them, and finally deletes everything it created.

Pass --keep to leave the workspace and collections in place.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.Flags().StringVar(&flags.endpoint, "endpoint", rockset.EndpointUsWest2, "API endpoint of the region your organization is hosted in")
	rootCmd.Flags().StringVar(&flags.apiKey, "api-key", "", "API key (defaults to $ROCKSET_API_KEY)")
	rootCmd.Flags().StringVar(&flags.workspace, "workspace", "quickstart", "Name of the workspace to create")
	rootCmd.Flags().BoolVar(&flags.keep, "keep", false, "Keep the created resources instead of deleting them")
	rootCmd.Flags().DurationVar(&flags.timeout, "timeout", 30*time.Minute, "Overall deadline, including the initial ingest")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	apiKey := flags.apiKey
	if apiKey == "" {
		apiKey = os.Getenv("ROCKSET_API_KEY")
	}
	if apiKey == "" {
		return errors.New("no API key: pass --api-key or set ROCKSET_API_KEY")
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), flags.timeout)
	defer cancel()

	c := rockset.NewClient(&rockset.Config{
		Endpoint: flags.endpoint,
		APIKey:   apiKey,
	})
	defer c.Close()

	ws := c.Workspace(flags.workspace)
	ws.Description = "Created by the quickstart. Safe to delete."
	if _, err := ws.Create(ctx); err != nil {
		return fmt.Errorf("create workspace %q: %w", ws.Name, err)
	}
	log.Printf("Created workspace %q", ws.Name)

	cities := c.Collection(ws.Name, "cities")
	cities.Description = "World cities from the public datasets bucket."
	cities.Sources = []*rockset.Source{{
		S3: &rockset.S3Source{
			Bucket: publicDatasetsBucket,
			Prefix: "cities",
			Region: "us-west-2",
		},
	}}
	cities.IngestTransformation = `
SELECT _input.fields.name AS name,
       _input.fields.country AS country,
       TRY_CAST(_input.fields.population AS int) AS population
FROM _input
`

	airports := c.Collection(ws.Name, "airports")
	airports.Description = "World airports from the public datasets bucket."
	airports.Sources = []*rockset.Source{{
		S3: &rockset.S3Source{
			Bucket: publicDatasetsBucket,
			Prefix: "airports",
			Region: "us-west-2",
		},
	}}
	airports.IngestTransformation = `
SELECT _input.fields.name AS name,
       _input.fields.iata AS iata,
       _input.fields.country AS country
FROM _input
WHERE _input.fields.iata IS NOT NULL
`

	collections := []*rockset.Collection{cities, airports}
	for _, col := range collections {
		if _, err := col.Create(ctx); err != nil {
			return fmt.Errorf("create collection %s: %w", col.Identifier(), err)
		}
		log.Printf("Created collection %s", col.Identifier())
	}
	for _, col := range collections {
		log.Printf("Waiting for %s to become ready...", col.Identifier())
		meta, err := col.WaitReady(ctx)
		if err != nil {
			return fmt.Errorf("wait for collection %s: %w", col.Identifier(), err)
		}
		if meta.Stats != nil {
			log.Printf("Collection %s is ready with %d documents", col.Identifier(), meta.Stats.DocCount)
		} else {
			log.Printf("Collection %s is ready", col.Identifier())
		}
	}

	rs, err := c.Query(fmt.Sprintf(`
		SELECT name, country, population
		FROM %s
		WHERE population > 1000000
		ORDER BY population DESC
		LIMIT 5
	`, cities.Identifier())).Execute(ctx)
	if err != nil {
		return fmt.Errorf("query cities: %w", err)
	}
	log.Printf("Largest cities (query %s):", rs.QueryID)
	if err := printResultSet(rs); err != nil {
		return err
	}

	rs, err = c.Query(fmt.Sprintf(`
		SELECT name, iata
		FROM %s
		WHERE country = :country
		ORDER BY name
		LIMIT :limit
	`, airports.Identifier())).
		Bind("country", rockset.StringDataType, "France").
		Bind("limit", rockset.IntDataType, "5").
		Execute(ctx)
	if err != nil {
		return fmt.Errorf("query airports: %w", err)
	}
	log.Printf("Airports in France (query %s):", rs.QueryID)
	if err := printResultSet(rs); err != nil {
		return err
	}

	if flags.keep {
		log.Printf("Keeping workspace %q and its collections", ws.Name)
		return nil
	}

	for _, col := range collections {
		if err := col.Drop(ctx); err != nil {
			return fmt.Errorf("delete collection %s: %w", col.Identifier(), err)
		}
	}
	for _, col := range collections {
		if err := col.WaitDropped(ctx); err != nil {
			return fmt.Errorf("confirm deletion of %s: %w", col.Identifier(), err)
		}
		log.Printf("Deleted collection %s", col.Identifier())
	}

	if err := ws.Drop(ctx); err != nil {
		return fmt.Errorf("delete workspace %q: %w", ws.Name, err)
	}
	if err := ws.WaitDropped(ctx); err != nil {
		return fmt.Errorf("confirm deletion of workspace %q: %w", ws.Name, err)
	}
	log.Printf("Deleted workspace %q", ws.Name)
	return nil
}

func printResultSet(rs *rockset.ResultSet) error {
	rows, err := rs.ToValues()
	if err != nil {
		return err
	}
	for _, fs := range rs.Schema {
		fmt.Printf("%s\t", fs.Name)
	}
	fmt.Println()
	for _, row := range rows {
		for _, v := range row {
			fmt.Printf("%v\t", v)
		}
		fmt.Println()
	}
	return nil
}
