// Package google is a thin connector for Google Cloud and Workspace
// admin APIs: projects, enabled services, billing accounts, and
// Workspace users and groups.
package google

import (
	"context"
	"net/url"
	"strconv"

	"github.com/jbcom/vendor-connectors/pkg/connector"
)

const (
	Name          = "google"
	Description   = "Google Cloud and Workspace operations: projects, services, billing, users, and groups."
	CredentialEnv = "GOOGLE_ACCESS_TOKEN"

	crmURLEnv     = "GOOGLE_CRM_API_URL"
	defaultCRMURL = "https://cloudresourcemanager.googleapis.com"

	serviceUsageURLEnv     = "GOOGLE_SERVICEUSAGE_API_URL"
	defaultServiceUsageURL = "https://serviceusage.googleapis.com"

	billingURLEnv     = "GOOGLE_BILLING_API_URL"
	defaultBillingURL = "https://cloudbilling.googleapis.com"

	adminURLEnv     = "GOOGLE_ADMIN_API_URL"
	defaultAdminURL = "https://admin.googleapis.com"
)

// BaseURL returns the Cloud Resource Manager base URL, honoring the
// GOOGLE_CRM_API_URL override. The other Google APIs have their own
// overrides resolved in New.
func BaseURL() string {
	return connector.BaseURL(Name, crmURLEnv, defaultCRMURL)
}

// Connector wraps the Google admin surface. Each API family has its own
// host, so the connector carries one client per family sharing the same
// bearer token.
type Connector struct {
	crm      *connector.Client
	services *connector.Client
	billing  *connector.Client
	admin    *connector.Client
}

// New creates a Google connector. An empty token falls back to
// GOOGLE_ACCESS_TOKEN (an OAuth2 access token with the cloud-platform
// and admin.directory readonly scopes).
func New(accessToken string, opts ...connector.ClientOption) (*Connector, error) {
	resolved, err := connector.Credential(Name, accessToken, CredentialEnv)
	if err != nil {
		return nil, err
	}

	headers := func(ctx context.Context) (map[string]string, error) {
		return map[string]string{"Authorization": "Bearer " + resolved}, nil
	}
	opts = append([]connector.ClientOption{connector.WithHeaderFunc(headers)}, opts...)

	return &Connector{
		crm:      connector.NewClient(Name, BaseURL(), opts...),
		services: connector.NewClient(Name, connector.BaseURLFromEnv(serviceUsageURLEnv, defaultServiceUsageURL), opts...),
		billing:  connector.NewClient(Name, connector.BaseURLFromEnv(billingURLEnv, defaultBillingURL), opts...),
		admin:    connector.NewClient(Name, connector.BaseURLFromEnv(adminURLEnv, defaultAdminURL), opts...),
	}, nil
}

// Project is the subset of GCP project fields the tools expose.
type Project struct {
	ProjectID string `json:"project_id"`
	Name      string `json:"name"`
	State     string `json:"state"`
	Parent    string `json:"parent"`
}

// ListProjects lists accessible GCP projects. parent scopes the listing
// to an organization or folder; empty searches all accessible projects.
// maxResults of 0 means no limit.
func (c *Connector) ListProjects(ctx context.Context, parent string, maxResults int) ([]Project, error) {
	var projects []Project
	pageToken := ""
	for {
		query := url.Values{}
		if pageToken != "" {
			query.Set("pageToken", pageToken)
		}

		path := "/v3/projects:search"
		if parent != "" {
			path = "/v3/projects"
			query.Set("parent", parent)
		}

		var resp struct {
			Projects []struct {
				ProjectID   string `json:"projectId"`
				Name        string `json:"name"`
				DisplayName string `json:"displayName"`
				State       string `json:"state"`
				Parent      string `json:"parent"`
			} `json:"projects"`
			NextPageToken string `json:"nextPageToken"`
		}
		if err := c.crm.Get(ctx, path, query, &resp); err != nil {
			return nil, err
		}
		for _, p := range resp.Projects {
			name := p.DisplayName
			if name == "" {
				name = p.Name
			}
			projects = append(projects, Project{
				ProjectID: p.ProjectID,
				Name:      name,
				State:     p.State,
				Parent:    p.Parent,
			})
			if maxResults > 0 && len(projects) >= maxResults {
				return projects, nil
			}
		}
		pageToken = resp.NextPageToken
		if pageToken == "" {
			break
		}
	}
	return projects, nil
}

// Service is one enabled API/service in a project.
type Service struct {
	Name  string `json:"name"`
	Title string `json:"title"`
	State string `json:"state"`
}

// ListEnabledServices lists the enabled services of a project.
// maxResults of 0 means no limit.
func (c *Connector) ListEnabledServices(ctx context.Context, projectID string, maxResults int) ([]Service, error) {
	if projectID == "" {
		return nil, connector.ValidationError(Name, "project_id is required")
	}

	var services []Service
	pageToken := ""
	for {
		query := url.Values{"filter": {"state:ENABLED"}}
		if pageToken != "" {
			query.Set("pageToken", pageToken)
		}

		var resp struct {
			Services []struct {
				Name   string `json:"name"`
				State  string `json:"state"`
				Config struct {
					Title string `json:"title"`
				} `json:"config"`
			} `json:"services"`
			NextPageToken string `json:"nextPageToken"`
		}
		if err := c.services.Get(ctx, "/v1/projects/"+projectID+"/services", query, &resp); err != nil {
			return nil, err
		}
		for _, s := range resp.Services {
			services = append(services, Service{Name: s.Name, Title: s.Config.Title, State: s.State})
			if maxResults > 0 && len(services) >= maxResults {
				return services, nil
			}
		}
		pageToken = resp.NextPageToken
		if pageToken == "" {
			break
		}
	}
	return services, nil
}

// BillingAccount is the subset of billing account fields the tools expose.
type BillingAccount struct {
	Name                 string `json:"name"`
	DisplayName          string `json:"display_name"`
	Open                 bool   `json:"open"`
	MasterBillingAccount string `json:"master_billing_account"`
}

// ListBillingAccounts lists billing accounts. maxResults of 0 means no
// limit.
func (c *Connector) ListBillingAccounts(ctx context.Context, maxResults int) ([]BillingAccount, error) {
	var accounts []BillingAccount
	pageToken := ""
	for {
		query := url.Values{}
		if pageToken != "" {
			query.Set("pageToken", pageToken)
		}

		var resp struct {
			BillingAccounts []struct {
				Name                 string `json:"name"`
				DisplayName          string `json:"displayName"`
				Open                 bool   `json:"open"`
				MasterBillingAccount string `json:"masterBillingAccount"`
			} `json:"billingAccounts"`
			NextPageToken string `json:"nextPageToken"`
		}
		if err := c.billing.Get(ctx, "/v1/billingAccounts", query, &resp); err != nil {
			return nil, err
		}
		for _, a := range resp.BillingAccounts {
			accounts = append(accounts, BillingAccount{
				Name:                 a.Name,
				DisplayName:          a.DisplayName,
				Open:                 a.Open,
				MasterBillingAccount: a.MasterBillingAccount,
			})
			if maxResults > 0 && len(accounts) >= maxResults {
				return accounts, nil
			}
		}
		pageToken = resp.NextPageToken
		if pageToken == "" {
			break
		}
	}
	return accounts, nil
}

// WorkspaceUser is the subset of Workspace user fields the tools expose.
type WorkspaceUser struct {
	Email       string `json:"email"`
	FullName    string `json:"full_name"`
	Suspended   bool   `json:"suspended"`
	OrgUnitPath string `json:"org_unit_path"`
}

// ListWorkspaceUsers lists Workspace users. An empty domain lists the
// whole customer account; maxResults of 0 means no limit.
func (c *Connector) ListWorkspaceUsers(ctx context.Context, domain string, maxResults int) ([]WorkspaceUser, error) {
	var users []WorkspaceUser
	pageToken := ""
	for {
		query := url.Values{"maxResults": {strconv.Itoa(500)}}
		if domain != "" {
			query.Set("domain", domain)
		} else {
			query.Set("customer", "my_customer")
		}
		if pageToken != "" {
			query.Set("pageToken", pageToken)
		}

		var resp struct {
			Users []struct {
				PrimaryEmail string `json:"primaryEmail"`
				Name         struct {
					FullName string `json:"fullName"`
				} `json:"name"`
				Suspended   bool   `json:"suspended"`
				OrgUnitPath string `json:"orgUnitPath"`
			} `json:"users"`
			NextPageToken string `json:"nextPageToken"`
		}
		if err := c.admin.Get(ctx, "/admin/directory/v1/users", query, &resp); err != nil {
			return nil, err
		}
		for _, u := range resp.Users {
			users = append(users, WorkspaceUser{
				Email:       u.PrimaryEmail,
				FullName:    u.Name.FullName,
				Suspended:   u.Suspended,
				OrgUnitPath: u.OrgUnitPath,
			})
			if maxResults > 0 && len(users) >= maxResults {
				return users, nil
			}
		}
		pageToken = resp.NextPageToken
		if pageToken == "" {
			break
		}
	}
	return users, nil
}

// WorkspaceGroup is the subset of Workspace group fields the tools expose.
type WorkspaceGroup struct {
	Email              string `json:"email"`
	Name               string `json:"name"`
	Description        string `json:"description"`
	DirectMembersCount int64  `json:"direct_members_count"`
}

// ListWorkspaceGroups lists Workspace groups. An empty domain lists the
// whole customer account; maxResults of 0 means no limit.
func (c *Connector) ListWorkspaceGroups(ctx context.Context, domain string, maxResults int) ([]WorkspaceGroup, error) {
	var groups []WorkspaceGroup
	pageToken := ""
	for {
		query := url.Values{}
		if domain != "" {
			query.Set("domain", domain)
		} else {
			query.Set("customer", "my_customer")
		}
		if pageToken != "" {
			query.Set("pageToken", pageToken)
		}

		var resp struct {
			Groups []struct {
				Email              string `json:"email"`
				Name               string `json:"name"`
				Description        string `json:"description"`
				DirectMembersCount string `json:"directMembersCount"`
			} `json:"groups"`
			NextPageToken string `json:"nextPageToken"`
		}
		if err := c.admin.Get(ctx, "/admin/directory/v1/groups", query, &resp); err != nil {
			return nil, err
		}
		for _, g := range resp.Groups {
			// The directory API returns the count as a decimal string.
			count, _ := strconv.ParseInt(g.DirectMembersCount, 10, 64)
			groups = append(groups, WorkspaceGroup{
				Email:              g.Email,
				Name:               g.Name,
				Description:        g.Description,
				DirectMembersCount: count,
			})
			if maxResults > 0 && len(groups) >= maxResults {
				return groups, nil
			}
		}
		pageToken = resp.NextPageToken
		if pageToken == "" {
			break
		}
	}
	return groups, nil
}
