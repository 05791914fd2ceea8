package rockset

// Regional API endpoints. Pick the one your organization is hosted in.
const (
	EndpointUsWest2    = "https://api.usw2a1.rockset.com"
	EndpointUsEast1    = "https://api.use1a1.rockset.com"
	EndpointEuCentral1 = "https://api.euc1a1.rockset.com"
)

// Config defines the configuration for the client.
type Config struct {
	// Endpoint is the URL of the regional API server.
	Endpoint string `json:"endpoint"`
	// APIKey authorizes every request sent by the client.
	APIKey string `json:"-"`
}
