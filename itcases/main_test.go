package itcases

import (
	"os"
	"strings"
	"testing"

	"github.com/lucasepe/codename"
	rockset "github.com/paytons3/Rockset-Recipe-Quickstart-Guide"
	"github.com/stretchr/testify/require"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func NewClient(t testing.TB) *rockset.Client {
	apiKey := os.Getenv("ROCKSET_API_KEY")
	if apiKey == "" {
		t.Skip("ROCKSET_API_KEY not set")
		return nil // unreachable
	}

	endpoint := os.Getenv("ROCKSET_ENDPOINT")
	if endpoint == "" {
		endpoint = rockset.EndpointUsWest2
	}

	return rockset.NewClient(&rockset.Config{
		Endpoint: endpoint,
		APIKey:   apiKey,
	})
}

func RandomName(t testing.TB) string {
	rng, err := codename.DefaultRNG()
	require.NoError(t, err)
	return strings.ReplaceAll(codename.Generate(rng, 10), "-", "_")
}
