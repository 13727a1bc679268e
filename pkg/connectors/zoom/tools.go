package zoom

import (
	"context"

	"github.com/jbcom/vendor-connectors/pkg/agent"
	"github.com/jbcom/vendor-connectors/pkg/tools"
)

// Definitions returns the Zoom tool table. Credentials come from
// ZOOM_CLIENT_ID, ZOOM_CLIENT_SECRET, and ZOOM_ACCOUNT_ID.
func Definitions() []tools.Definition {
	return []tools.Definition{
		{
			Name:        "zoom_list_users",
			Description: "List all Zoom users. Returns user details including email, id, name, and status.",
			InputSchema: tools.Object(
				tools.IntOpt("max_results", "Maximum number of users to return", 100),
			),
			Handler: func(ctx context.Context, args map[string]any) (any, error) {
				c, err := New("", "", "")
				if err != nil {
					return nil, err
				}
				return c.ListUsers(ctx, tools.ArgInt(args, "max_results", 100))
			},
		},
		{
			Name:        "zoom_get_user",
			Description: "Get details of a specific Zoom user by ID or email. Returns comprehensive user information.",
			InputSchema: tools.Object(
				tools.String("user_id", "User ID or email address"),
			),
			Handler: func(ctx context.Context, args map[string]any) (any, error) {
				c, err := New("", "", "")
				if err != nil {
					return nil, err
				}
				return c.GetUser(ctx, tools.ArgString(args, "user_id"))
			},
		},
		{
			Name:        "zoom_list_meetings",
			Description: "List meetings for a specific user. Returns meeting details including id, topic, start time, and join URL.",
			InputSchema: tools.Object(
				tools.String("user_id", "User ID or email address"),
				tools.StringOpt("meeting_type", "Type of meetings: scheduled, live, upcoming, previous_meetings", "scheduled"),
				tools.IntOpt("max_results", "Maximum number of meetings to return", 100),
			),
			Handler: func(ctx context.Context, args map[string]any) (any, error) {
				c, err := New("", "", "")
				if err != nil {
					return nil, err
				}
				return c.ListMeetings(ctx,
					tools.ArgString(args, "user_id"),
					tools.ArgString(args, "meeting_type"),
					tools.ArgInt(args, "max_results", 100))
			},
		},
		{
			Name:        "zoom_get_meeting",
			Description: "Get details of a specific meeting by meeting ID. Returns comprehensive meeting information.",
			InputSchema: tools.Object(
				tools.String("meeting_id", "Meeting ID"),
			),
			Handler: func(ctx context.Context, args map[string]any) (any, error) {
				c, err := New("", "", "")
				if err != nil {
					return nil, err
				}
				return c.GetMeeting(ctx, tools.ArgString(args, "meeting_id"))
			},
		},
	}
}

// Tools returns the Zoom tool table in the requested framework's form.
func Tools(framework string) ([]any, error) {
	return agent.Tools(framework, Definitions())
}
