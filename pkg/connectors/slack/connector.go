// Package slack is a thin connector for the Slack Web API: posting
// messages and listing workspace users and conversations.
package slack

import (
	"context"
	"strings"

	slackapi "github.com/slack-go/slack"

	"github.com/jbcom/vendor-connectors/pkg/connector"
)

const (
	Name          = "slack"
	Description   = "Slack workspace operations: messages, users, and channels."
	CredentialEnv = "SLACK_TOKEN"

	baseURLEnv     = "SLACK_API_URL"
	defaultBaseURL = "https://slack.com/api/"
)

// BaseURL returns the API base URL, honoring the SLACK_API_URL override.
// The Slack client requires a trailing slash.
func BaseURL() string {
	u := connector.BaseURL(Name, baseURLEnv, defaultBaseURL)
	if !strings.HasSuffix(u, "/") {
		u += "/"
	}
	return u
}

// Connector wraps the Slack Web API client.
type Connector struct {
	client *slackapi.Client
}

// New creates a Slack connector. An empty token falls back to SLACK_TOKEN.
func New(token string) (*Connector, error) {
	resolved, err := connector.Credential(Name, token, CredentialEnv)
	if err != nil {
		return nil, err
	}
	return &Connector{
		client: slackapi.New(resolved, slackapi.OptionAPIURL(BaseURL())),
	}, nil
}

// SendMessage posts text to a channel by name (without the leading #) or
// ID, optionally threading under threadTS. Returns the message timestamp.
func (c *Connector) SendMessage(ctx context.Context, channel, text, threadTS string) (string, error) {
	if channel == "" || text == "" {
		return "", connector.ValidationError(Name, "channel and text are required")
	}

	target, err := c.resolveChannel(ctx, channel)
	if err != nil {
		return "", err
	}

	opts := []slackapi.MsgOption{slackapi.MsgOptionText(text, false)}
	if threadTS != "" {
		opts = append(opts, slackapi.MsgOptionTS(threadTS))
	}

	_, ts, err := c.client.PostMessageContext(ctx, target, opts...)
	if err != nil {
		return "", wrapErr(err)
	}
	return ts, nil
}

// resolveChannel maps a channel name to its ID. IDs pass through.
func (c *Connector) resolveChannel(ctx context.Context, channel string) (string, error) {
	channel = strings.TrimPrefix(channel, "#")

	// Channel IDs start with C (public), G (private), or D (DM).
	if len(channel) > 8 && strings.IndexByte("CGD", channel[0]) >= 0 && channel == strings.ToUpper(channel) {
		return channel, nil
	}

	channels, err := c.ListChannels(ctx, "public_channel,private_channel", 0)
	if err != nil {
		return "", err
	}
	for _, ch := range channels {
		if ch.Name == channel {
			return ch.ID, nil
		}
	}
	return "", connector.NotFoundError(Name, "channel not found: "+channel)
}

// User is the subset of Slack user fields the tools expose.
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	RealName string `json:"real_name"`
	Email    string `json:"email,omitempty"`
	IsBot    bool   `json:"is_bot"`
	IsAdmin  bool   `json:"is_admin"`
	Deleted  bool   `json:"deleted"`
	Timezone string `json:"tz,omitempty"`
}

// ListUsers lists workspace members. Bots and deleted accounts are
// filtered out unless includeBots is set; limit of 0 means no limit.
func (c *Connector) ListUsers(ctx context.Context, includeBots bool, limit int) ([]User, error) {
	raw, err := c.client.GetUsersContext(ctx)
	if err != nil {
		return nil, wrapErr(err)
	}

	users := make([]User, 0, len(raw))
	for _, u := range raw {
		if u.Deleted {
			continue
		}
		if !includeBots && (u.IsBot || u.ID == "USLACKBOT") {
			continue
		}
		users = append(users, User{
			ID:       u.ID,
			Name:     u.Name,
			RealName: u.RealName,
			Email:    u.Profile.Email,
			IsBot:    u.IsBot,
			IsAdmin:  u.IsAdmin,
			Timezone: u.TZ,
		})
		if limit > 0 && len(users) >= limit {
			break
		}
	}
	return users, nil
}

// Channel is the subset of Slack conversation fields the tools expose.
type Channel struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Topic      string `json:"topic,omitempty"`
	Purpose    string `json:"purpose,omitempty"`
	IsPrivate  bool   `json:"is_private"`
	IsArchived bool   `json:"is_archived"`
	NumMembers int    `json:"num_members"`
}

// ListChannels lists conversations of the given comma-separated types
// (public_channel, private_channel, im, mpim), following cursor
// pagination. limit of 0 means no limit.
func (c *Connector) ListChannels(ctx context.Context, types string, limit int) ([]Channel, error) {
	if types == "" {
		types = "public_channel,private_channel"
	}

	var channels []Channel
	cursor := ""
	for {
		raw, next, err := c.client.GetConversationsContext(ctx, &slackapi.GetConversationsParameters{
			Types:           strings.Split(types, ","),
			Cursor:          cursor,
			Limit:           200,
			ExcludeArchived: false,
		})
		if err != nil {
			return nil, wrapErr(err)
		}
		for _, ch := range raw {
			channels = append(channels, Channel{
				ID:         ch.ID,
				Name:       ch.Name,
				Topic:      ch.Topic.Value,
				Purpose:    ch.Purpose.Value,
				IsPrivate:  ch.IsPrivate,
				IsArchived: ch.IsArchived,
				NumMembers: ch.NumMembers,
			})
			if limit > 0 && len(channels) >= limit {
				return channels, nil
			}
		}
		cursor = next
		if cursor == "" {
			break
		}
	}
	return channels, nil
}

// wrapErr maps Slack client errors onto the connector taxonomy.
func wrapErr(err error) error {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "invalid_auth"), strings.Contains(msg, "not_authed"), strings.Contains(msg, "token_revoked"):
		return connector.AuthError(Name, msg)
	case strings.Contains(msg, "channel_not_found"), strings.Contains(msg, "user_not_found"):
		return connector.NotFoundError(Name, msg)
	case strings.Contains(msg, "rate_limited"), strings.Contains(msg, "ratelimited"):
		return connector.NewError(Name, connector.TypeRateLimit, msg)
	default:
		return connector.NewError(Name, connector.TypeProvider, msg)
	}
}
