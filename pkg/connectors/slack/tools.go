package slack

import (
	"context"

	"github.com/jbcom/vendor-connectors/pkg/agent"
	"github.com/jbcom/vendor-connectors/pkg/tools"
)

// Definitions returns the Slack tool table. The bot token comes from
// SLACK_TOKEN.
func Definitions() []tools.Definition {
	return []tools.Definition{
		{
			Name:        "slack_send_message",
			Description: "Send a message to a Slack channel. Useful for notifications or replies.",
			InputSchema: tools.Object(
				tools.String("channel", "The name of the channel to send the message to (without #)"),
				tools.String("text", "The text content of the message"),
				tools.StringOpt("thread_ts", "Optional thread timestamp to reply in a thread", ""),
			),
			Handler: func(ctx context.Context, args map[string]any) (any, error) {
				c, err := New("")
				if err != nil {
					return nil, err
				}
				ts, err := c.SendMessage(ctx,
					tools.ArgString(args, "channel"),
					tools.ArgString(args, "text"),
					tools.ArgString(args, "thread_ts"))
				if err != nil {
					return nil, err
				}
				return map[string]string{"ts": ts}, nil
			},
		},
		{
			Name:        "slack_list_users",
			Description: "List users in the Slack workspace. Useful for finding member IDs or emails.",
			InputSchema: tools.Object(
				tools.BoolOpt("include_bots", "Whether to include bot accounts", false),
				tools.IntOpt("limit", "Maximum number of users to return", 100),
			),
			Handler: func(ctx context.Context, args map[string]any) (any, error) {
				c, err := New("")
				if err != nil {
					return nil, err
				}
				return c.ListUsers(ctx, tools.ArgBool(args, "include_bots"), tools.ArgInt(args, "limit", 100))
			},
		},
		{
			Name:        "slack_list_channels",
			Description: "List available Slack channels and conversations.",
			InputSchema: tools.Object(
				tools.StringOpt("types", "Comma-separated conversation types (public_channel, private_channel, im, mpim)", "public_channel,private_channel"),
				tools.IntOpt("limit", "Maximum number of conversations to return", 100),
			),
			Handler: func(ctx context.Context, args map[string]any) (any, error) {
				c, err := New("")
				if err != nil {
					return nil, err
				}
				return c.ListChannels(ctx, tools.ArgString(args, "types"), tools.ArgInt(args, "limit", 100))
			},
		},
	}
}

// Tools returns the Slack tool table in the requested framework's form.
func Tools(framework string) ([]any, error) {
	return agent.Tools(framework, Definitions())
}
