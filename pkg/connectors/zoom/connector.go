// Package zoom is a thin connector for the Zoom REST API using
// server-to-server OAuth: user management and meeting lookups.
package zoom

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/jbcom/vendor-connectors/pkg/connector"
)

const (
	Name          = "zoom"
	Description   = "Zoom account operations: users and meetings via server-to-server OAuth."
	CredentialEnv = "ZOOM_CLIENT_ID"

	baseURLEnv     = "ZOOM_API_URL"
	defaultBaseURL = "https://api.zoom.us/v2"

	oauthURLEnv     = "ZOOM_OAUTH_URL"
	defaultOAuthURL = "https://zoom.us/oauth/token"

	clientSecretEnv = "ZOOM_CLIENT_SECRET"
	accountIDEnv    = "ZOOM_ACCOUNT_ID"

	// Zoom caps page_size at 300.
	pageSize = 300
)

// BaseURL returns the API base URL, honoring the ZOOM_API_URL override.
func BaseURL() string {
	return connector.BaseURL(Name, baseURLEnv, defaultBaseURL)
}

// Connector wraps the Zoom REST API for one account. Access tokens from
// the account_credentials grant are cached until shortly before expiry.
type Connector struct {
	client    *connector.Client
	oauthURL  string
	clientID  string
	secret    string
	accountID string

	mu          sync.Mutex
	token       string
	tokenExpiry time.Time
}

// New creates a Zoom connector. Empty credentials fall back to
// ZOOM_CLIENT_ID, ZOOM_CLIENT_SECRET, and ZOOM_ACCOUNT_ID.
func New(clientID, clientSecret, accountID string, opts ...connector.ClientOption) (*Connector, error) {
	id, err := connector.Credential(Name, clientID, CredentialEnv)
	if err != nil {
		return nil, err
	}
	secret, err := connector.SecondaryCredential(Name, clientSecret, clientSecretEnv)
	if err != nil {
		return nil, err
	}
	account, err := connector.SecondaryCredential(Name, accountID, accountIDEnv)
	if err != nil {
		return nil, err
	}

	c := &Connector{
		oauthURL:  connector.BaseURLFromEnv(oauthURLEnv, defaultOAuthURL),
		clientID:  id,
		secret:    secret,
		accountID: account,
	}
	opts = append([]connector.ClientOption{connector.WithHeaderFunc(c.authHeaders)}, opts...)
	c.client = connector.NewClient(Name, BaseURL(), opts...)
	return c, nil
}

func (c *Connector) authHeaders(ctx context.Context) (map[string]string, error) {
	token, err := c.accessToken(ctx)
	if err != nil {
		return nil, err
	}
	return map[string]string{"Authorization": "Bearer " + token}, nil
}

// accessToken fetches (or reuses) a server-to-server OAuth token.
func (c *Connector) accessToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && time.Now().Before(c.tokenExpiry) {
		return c.token, nil
	}

	basic := base64.StdEncoding.EncodeToString([]byte(c.clientID + ":" + c.secret))
	form := url.Values{
		"grant_type": {"account_credentials"},
		"account_id": {c.accountID},
	}

	var resp struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	err := c.client.PostForm(ctx, c.oauthURL, map[string]string{"Authorization": "Basic " + basic}, form, &resp)
	if err != nil {
		return "", err
	}
	if resp.AccessToken == "" {
		return "", connector.AuthError(Name, "OAuth token response missing access_token")
	}

	c.token = resp.AccessToken
	// Renew a minute early to avoid using a token mid-expiry.
	c.tokenExpiry = time.Now().Add(time.Duration(resp.ExpiresIn)*time.Second - time.Minute)
	return c.token, nil
}

// User is the subset of Zoom user fields the tools expose.
type User struct {
	Email     string `json:"email"`
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Type      int    `json:"type"`
	Status    string `json:"status"`
	Timezone  string `json:"timezone,omitempty"`
	PMI       int64  `json:"pmi,omitempty"`
}

// ListUsers lists account users up to maxResults (0 means no limit),
// following next_page_token pagination.
func (c *Connector) ListUsers(ctx context.Context, maxResults int) ([]User, error) {
	var users []User
	nextToken := ""
	for {
		query := url.Values{"page_size": {strconv.Itoa(pageSize)}}
		if nextToken != "" {
			query.Set("next_page_token", nextToken)
		}

		var resp struct {
			Users         []User `json:"users"`
			NextPageToken string `json:"next_page_token"`
		}
		if err := c.client.Get(ctx, "/users", query, &resp); err != nil {
			return nil, err
		}
		users = append(users, resp.Users...)

		if maxResults > 0 && len(users) >= maxResults {
			return users[:maxResults], nil
		}
		nextToken = resp.NextPageToken
		if nextToken == "" {
			break
		}
	}
	return users, nil
}

// GetUser returns one user by ID or email address.
func (c *Connector) GetUser(ctx context.Context, userID string) (*User, error) {
	if userID == "" {
		return nil, connector.ValidationError(Name, "user_id is required")
	}
	var out User
	if err := c.client.Get(ctx, "/users/"+url.PathEscape(userID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Meeting is the subset of Zoom meeting fields the tools expose.
type Meeting struct {
	ID        int64  `json:"id"`
	UUID      string `json:"uuid"`
	Topic     string `json:"topic"`
	StartTime string `json:"start_time"`
	Duration  int    `json:"duration"`
	Timezone  string `json:"timezone,omitempty"`
	Type      int    `json:"type"`
	JoinURL   string `json:"join_url"`
	HostID    string `json:"host_id,omitempty"`
	HostEmail string `json:"host_email,omitempty"`
}

// ListMeetings lists a user's meetings. meetingType is one of scheduled,
// live, upcoming, previous_meetings; maxResults of 0 means no limit.
func (c *Connector) ListMeetings(ctx context.Context, userID, meetingType string, maxResults int) ([]Meeting, error) {
	if userID == "" {
		return nil, connector.ValidationError(Name, "user_id is required")
	}
	if meetingType == "" {
		meetingType = "scheduled"
	}

	var meetings []Meeting
	nextToken := ""
	for {
		query := url.Values{
			"type":      {meetingType},
			"page_size": {strconv.Itoa(pageSize)},
		}
		if nextToken != "" {
			query.Set("next_page_token", nextToken)
		}

		var resp struct {
			Meetings      []Meeting `json:"meetings"`
			NextPageToken string    `json:"next_page_token"`
		}
		if err := c.client.Get(ctx, fmt.Sprintf("/users/%s/meetings", url.PathEscape(userID)), query, &resp); err != nil {
			return nil, err
		}
		meetings = append(meetings, resp.Meetings...)

		if maxResults > 0 && len(meetings) >= maxResults {
			return meetings[:maxResults], nil
		}
		nextToken = resp.NextPageToken
		if nextToken == "" {
			break
		}
	}
	return meetings, nil
}

// GetMeeting returns one meeting by ID.
func (c *Connector) GetMeeting(ctx context.Context, meetingID string) (*Meeting, error) {
	if meetingID == "" {
		return nil, connector.ValidationError(Name, "meeting_id is required")
	}
	var out Meeting
	if err := c.client.Get(ctx, "/meetings/"+url.PathEscape(meetingID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateUser provisions a licensed user in the account.
func (c *Connector) CreateUser(ctx context.Context, email, firstName, lastName string) error {
	if email == "" {
		return connector.ValidationError(Name, "email is required")
	}
	body := map[string]any{
		"action": "create",
		"user_info": map[string]any{
			"email":      email,
			"type":       2,
			"first_name": firstName,
			"last_name":  lastName,
		},
	}
	return c.client.Post(ctx, "/users", body, nil)
}

// RemoveUser deletes a user from the account by ID or email.
func (c *Connector) RemoveUser(ctx context.Context, userID string) error {
	if userID == "" {
		return connector.ValidationError(Name, "user_id is required")
	}
	return c.client.Delete(ctx, "/users/"+url.PathEscape(userID))
}
