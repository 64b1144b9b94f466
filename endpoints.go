package goldencheetah

import "net/url"

// DefaultHost is where a locally running GoldenCheetah instance serves its
// REST API.
const DefaultHost = "http://localhost:12021/"

func (c *Client) athleteListEndpoint() string {
	return c.host
}

// athleteEndpoint percent-encodes the athlete name with form-encoding rules,
// so spaces become "+".
func (c *Client) athleteEndpoint(athlete string) string {
	return c.host + url.QueryEscape(athlete)
}

// activityEndpoint appends the activity filename verbatim: filenames are
// server-assigned and already URL-safe, so they are never re-encoded.
func (c *Client) activityEndpoint(athlete, filename string) string {
	return c.athleteEndpoint(athlete) + "/activity/" + filename
}
