package domain

import "time"

// Credentials holds the login and API token used for write operations
// against a task repository. The legacy API posts both as form fields;
// the REST API only uses the token.
type Credentials struct {
	// ID is the unique identifier (UUID).
	ID string `json:"id"`

	// Username is the GitHub login.
	Username string `json:"username"`

	// APIToken is the API key or personal access token.
	APIToken string `json:"-"`

	// CreatedAt is when the credentials were created.
	CreatedAt time.Time `json:"created_at"`
	// UpdatedAt is when the credentials were last updated.
	UpdatedAt time.Time `json:"updated_at"`
}

// IsEmpty returns true if neither a login nor a token is set.
func (c *Credentials) IsEmpty() bool {
	return c == nil || (c.Username == "" && c.APIToken == "")
}

// HasToken returns true if an API token is available.
func (c *Credentials) HasToken() bool {
	return c != nil && c.APIToken != ""
}

// MaskedToken returns the token with everything but its edges hidden.
func (c *Credentials) MaskedToken() string {
	if c == nil || len(c.APIToken) <= 8 {
		return "****"
	}
	return c.APIToken[:4] + "..." + c.APIToken[len(c.APIToken)-4:]
}
