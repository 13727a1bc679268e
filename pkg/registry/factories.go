package registry

import (
	"github.com/jbcom/vendor-connectors/pkg/connectors/anthropic"
	"github.com/jbcom/vendor-connectors/pkg/connectors/aws"
	"github.com/jbcom/vendor-connectors/pkg/connectors/cursor"
	"github.com/jbcom/vendor-connectors/pkg/connectors/github"
	"github.com/jbcom/vendor-connectors/pkg/connectors/google"
	"github.com/jbcom/vendor-connectors/pkg/connectors/jules"
	"github.com/jbcom/vendor-connectors/pkg/connectors/meshy"
	"github.com/jbcom/vendor-connectors/pkg/connectors/slack"
	"github.com/jbcom/vendor-connectors/pkg/connectors/vault"
	"github.com/jbcom/vendor-connectors/pkg/connectors/zoom"
)

// builtinFactories is the built-in connector table. New copies it per
// registry, so tests can swap entries on a Registry without touching the
// package default.
var builtinFactories = map[string]EntryFactory{
	"anthropic": func() (Entry, error) {
		return Entry{
			Name:          anthropic.Name,
			Description:   anthropic.Description,
			CredentialEnv: anthropic.CredentialEnv,
			BaseURL:       anthropic.BaseURL(),
			Tools:         anthropic.Definitions,
		}, nil
	},
	"aws": func() (Entry, error) {
		return Entry{
			Name:        aws.Name,
			Description: aws.Description,
			Tools:       aws.Definitions,
		}, nil
	},
	"cursor": func() (Entry, error) {
		return Entry{
			Name:          cursor.Name,
			Description:   cursor.Description,
			CredentialEnv: cursor.CredentialEnv,
			BaseURL:       cursor.BaseURL(),
			Tools:         cursor.Definitions,
		}, nil
	},
	"github": func() (Entry, error) {
		return Entry{
			Name:          github.Name,
			Description:   github.Description,
			CredentialEnv: github.CredentialEnv,
			BaseURL:       github.BaseURL(),
			Tools:         github.Definitions,
		}, nil
	},
	"google": func() (Entry, error) {
		return Entry{
			Name:          google.Name,
			Description:   google.Description,
			CredentialEnv: google.CredentialEnv,
			BaseURL:       google.BaseURL(),
			Tools:         google.Definitions,
		}, nil
	},
	"jules": func() (Entry, error) {
		return Entry{
			Name:          jules.Name,
			Description:   jules.Description,
			CredentialEnv: jules.CredentialEnv,
			BaseURL:       jules.BaseURL(),
			Tools:         jules.Definitions,
		}, nil
	},
	"meshy": func() (Entry, error) {
		return Entry{
			Name:          meshy.Name,
			Description:   meshy.Description,
			CredentialEnv: meshy.CredentialEnv,
			BaseURL:       meshy.BaseURL(),
			Tools:         meshy.Definitions,
		}, nil
	},
	"slack": func() (Entry, error) {
		return Entry{
			Name:          slack.Name,
			Description:   slack.Description,
			CredentialEnv: slack.CredentialEnv,
			BaseURL:       slack.BaseURL(),
			Tools:         slack.Definitions,
		}, nil
	},
	"vault": func() (Entry, error) {
		return Entry{
			Name:          vault.Name,
			Description:   vault.Description,
			CredentialEnv: vault.CredentialEnv,
			BaseURL:       vault.BaseURL(),
			Tools:         vault.Definitions,
		}, nil
	},
	"zoom": func() (Entry, error) {
		return Entry{
			Name:          zoom.Name,
			Description:   zoom.Description,
			CredentialEnv: zoom.CredentialEnv,
			BaseURL:       zoom.BaseURL(),
			Tools:         zoom.Definitions,
		}, nil
	},
}
