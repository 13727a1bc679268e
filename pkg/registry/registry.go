// Package registry provides connector discovery and lookup. It merges two
// sources: the built-in connector table and externally registered
// connectors. External registrations win on name conflict, and a factory
// that fails only removes its own connector from the table.
package registry

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/jbcom/vendor-connectors/pkg/tools"
)

// ErrUnavailable marks a connector whose integration cannot be used in
// this build or environment. Discovery logs and skips it so one broken
// vendor never disables the others.
var ErrUnavailable = errors.New("connector unavailable")

// Entry describes one registered connector.
type Entry struct {
	// Name is the short connector name, e.g. "github".
	Name string

	// Description is a one-line summary of what the connector wraps.
	Description string

	// CredentialEnv is the environment variable holding the primary
	// credential. Empty when the vendor resolves credentials another way
	// (the AWS SDK chain, for example).
	CredentialEnv string

	// BaseURL is the default API base URL.
	BaseURL string

	// Tools builds the connector's tool table.
	Tools func() []tools.Definition
}

// CredentialSet reports whether the entry's credential env var is set.
func (e Entry) CredentialSet() bool {
	return e.CredentialEnv != "" && os.Getenv(e.CredentialEnv) != ""
}

// Tool resolves a tool by bare method name or fully prefixed tool name.
func (e Entry) Tool(method string) (tools.Definition, bool) {
	return tools.Find(e.Name, e.Tools(), method)
}

// EntryFactory builds a connector entry, or reports why it cannot
// (typically wrapping ErrUnavailable).
type EntryFactory func() (Entry, error)

// Registry maps connector names to entries. Callers construct one and
// pass it to the CLI and server entry points. The merged table is
// computed lazily and cached; Clear resets it.
type Registry struct {
	mu       sync.RWMutex
	logger   *slog.Logger
	enabled  map[string]bool
	builtins map[string]EntryFactory
	external map[string]EntryFactory
	entries  map[string]Entry
	built    bool
}

// Option configures a Registry.
type Option func(*Registry)

// WithEnabled restricts built-in connectors to an explicit set. An empty
// list enables all builtins. External registrations are not filtered:
// registering one is already an opt-in.
func WithEnabled(names []string) Option {
	return func(r *Registry) {
		if len(names) == 0 {
			return
		}
		r.enabled = make(map[string]bool, len(names))
		for _, name := range names {
			r.enabled[strings.ToLower(name)] = true
		}
	}
}

// WithLogger sets the discovery logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) { r.logger = logger }
}

// New creates a registry seeded with the built-in connector table.
func New(opts ...Option) *Registry {
	r := &Registry{
		logger:   slog.Default(),
		builtins: make(map[string]EntryFactory, len(builtinFactories)),
		external: make(map[string]EntryFactory),
	}
	for name, factory := range builtinFactories {
		r.builtins[name] = factory
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RegisterExternal registers a connector from outside the built-in table.
// It takes precedence over a builtin of the same name. Registering after
// discovery invalidates the cached table.
func (r *Registry) RegisterExternal(name string, factory EntryFactory) error {
	if name == "" || factory == nil {
		return fmt.Errorf("external connector registration requires a name and factory")
	}
	name = strings.ToLower(name)

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.external[name]; exists {
		return fmt.Errorf("connector %s already registered", name)
	}
	r.external[name] = factory
	r.built = false
	return nil
}

// build computes the merged connector table. Callers hold r.mu.
func (r *Registry) build() {
	if r.built {
		return
	}
	r.entries = make(map[string]Entry, len(r.builtins)+len(r.external))

	for name, factory := range r.builtins {
		if r.enabled != nil && !r.enabled[name] {
			continue
		}
		entry, err := factory()
		if err != nil {
			r.logger.Warn("skipping connector", "connector", name, "error", err)
			continue
		}
		r.entries[name] = entry
	}

	// External registrations win on conflict.
	for name, factory := range r.external {
		entry, err := factory()
		if err != nil {
			r.logger.Warn("skipping external connector", "connector", name, "error", err)
			continue
		}
		entry.Name = name
		r.entries[name] = entry
	}

	r.built = true
}

// List returns all discovered connectors sorted by name.
func (r *Registry) List() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.build()

	entries := make([]Entry, 0, len(r.entries))
	for _, entry := range r.entries {
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries
}

// Names returns all discovered connector names, sorted.
func (r *Registry) Names() []string {
	entries := r.List()
	names := make([]string, len(entries))
	for i, entry := range entries {
		names[i] = entry.Name
	}
	return names
}

// Get returns a connector entry by name. Unknown names error with the
// full list of known connectors.
func (r *Registry) Get(name string) (Entry, error) {
	r.mu.Lock()
	r.build()
	entry, ok := r.entries[strings.ToLower(name)]
	r.mu.Unlock()

	if !ok {
		return Entry{}, fmt.Errorf("unknown connector: %s. Available: %s", name, strings.Join(r.Names(), ", "))
	}
	return entry, nil
}

// Tools returns a connector's tool table by name.
func (r *Registry) Tools(name string) ([]tools.Definition, error) {
	entry, err := r.Get(name)
	if err != nil {
		return nil, err
	}
	return entry.Tools(), nil
}

// Tool resolves a connector name and method to a tool definition.
func (r *Registry) Tool(connector, method string) (tools.Definition, error) {
	entry, err := r.Get(connector)
	if err != nil {
		return tools.Definition{}, err
	}
	def, ok := entry.Tool(method)
	if !ok {
		return tools.Definition{}, fmt.Errorf("method %q not found on %s", method, entry.Name)
	}
	return def, nil
}

// AllTools returns every tool definition from every discovered connector,
// sorted by tool name.
func (r *Registry) AllTools() []tools.Definition {
	var defs []tools.Definition
	for _, entry := range r.List() {
		defs = append(defs, entry.Tools()...)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Name < defs[j].Name })
	return defs
}

// Clear resets the discovery cache so the next lookup rebuilds the table.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = nil
	r.built = false
}
