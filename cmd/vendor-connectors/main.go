// Package main provides the vendor-connectors command line interface.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"
	"syscall"

	"github.com/jbcom/vendor-connectors/internal/server"
	"github.com/jbcom/vendor-connectors/pkg/connector"
	"github.com/jbcom/vendor-connectors/pkg/mcpserver"
	"github.com/jbcom/vendor-connectors/pkg/registry"
	"github.com/jbcom/vendor-connectors/pkg/tools"
)

const usage = `Usage: vendor-connectors <command> [arguments]

Commands:
  list [-json]                       List available connectors
  methods <connector>                List methods for a connector
  info <connector>                   Show connector info as JSON
  call <connector> <method> [--arg value ...]
                                     Call a connector method
  mcp [-config path]                 Start the MCP stdio server
  version                            Show version and exit

Examples:
  vendor-connectors list
  vendor-connectors methods jules
  vendor-connectors call jules list_sources
  vendor-connectors call github list_repositories --github_owner acme
  vendor-connectors mcp
`

// errInterrupted distinguishes SIGINT from ordinary failures so main can
// exit 130.
var errInterrupted = errors.New("interrupted")

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		fmt.Print(usage)
		return 0
	}

	var err error
	switch args[0] {
	case "list":
		err = cmdList(args[1:])
	case "methods":
		err = cmdMethods(args[1:])
	case "info":
		err = cmdInfo(args[1:])
	case "call":
		err = cmdCall(args[1:])
	case "mcp":
		err = cmdMCP(args[1:])
	case "version":
		fmt.Printf("vendor-connectors version %s\n", server.Version)
	case "help", "-h", "--help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command: %s\n\n%s", args[0], usage)
		return 1
	}

	if err != nil {
		if errors.Is(err, errInterrupted) {
			return 130
		}
		fmt.Fprintf(os.Stderr, "%s\n", connector.FormatError(err))
		return 1
	}
	return 0
}

// connectorInfo is the JSON shape of connector metadata for list and info.
type connectorInfo struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	CredentialEnv string   `json:"credential_env,omitempty"`
	CredentialSet bool     `json:"credential_set"`
	BaseURL       string   `json:"base_url,omitempty"`
	Tools         []string `json:"tools"`
}

func infoFor(entry registry.Entry) connectorInfo {
	defs := entry.Tools()
	names := make([]string, len(defs))
	for i, def := range defs {
		names[i] = def.Name
	}
	sort.Strings(names)
	return connectorInfo{
		Name:          entry.Name,
		Description:   entry.Description,
		CredentialEnv: entry.CredentialEnv,
		CredentialSet: entry.CredentialSet(),
		BaseURL:       entry.BaseURL,
		Tools:         names,
	}
}

func cmdList(args []string) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	asJSON := fs.Bool("json", false, "JSON output")
	if err := fs.Parse(args); err != nil {
		return err
	}

	reg := registry.New()
	entries := reg.List()

	if *asJSON {
		infos := make([]connectorInfo, len(entries))
		for i, entry := range entries {
			infos[i] = infoFor(entry)
		}
		return printJSON(infos)
	}

	fmt.Println("Available connectors:")
	fmt.Println(strings.Repeat("-", 70))
	fmt.Printf("%-12s %-8s %s\n", "Name", "Cred", "Env Var")
	fmt.Println(strings.Repeat("-", 70))
	for _, entry := range entries {
		env := entry.CredentialEnv
		if env == "" {
			env = "-"
		}
		mark := " "
		if entry.CredentialSet() {
			mark = "✓"
		}
		fmt.Printf("%-12s [%s]      %s\n", entry.Name, mark, env)
	}
	fmt.Println(strings.Repeat("-", 70))
	fmt.Println("\nUsage: vendor-connectors call <connector> <method> [--arg value ...]")
	return nil
}

func cmdMethods(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: vendor-connectors methods <connector>")
	}

	reg := registry.New()
	entry, err := reg.Get(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("Methods for %s:\n", entry.Name)
	fmt.Println(strings.Repeat("-", 60))
	defs := entry.Tools()
	sort.Slice(defs, func(i, j int) bool { return defs[i].Name < defs[j].Name })
	for _, def := range defs {
		method := strings.TrimPrefix(def.Name, entry.Name+"_")
		fmt.Printf("  %-30s %s\n", method, truncate(def.Description, 50))
	}
	fmt.Println(strings.Repeat("-", 60))
	fmt.Printf("\nUsage: vendor-connectors call %s <method> [--arg value ...]\n", entry.Name)
	return nil
}

func cmdInfo(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: vendor-connectors info <connector>")
	}

	reg := registry.New()
	entry, err := reg.Get(args[0])
	if err != nil {
		return err
	}
	return printJSON(infoFor(entry))
}

func cmdCall(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: vendor-connectors call <connector> <method> [--arg value ...]")
	}

	reg := registry.New()
	def, err := reg.Tool(args[0], args[1])
	if err != nil {
		return err
	}

	callArgs := parseCallArgs(args[2:])
	validated, err := tools.ValidateArgs(def, callArgs)
	if err != nil {
		return err
	}

	ctx := interruptContext()
	result, err := def.Handler(ctx, validated)
	if err != nil {
		if ctx.Err() != nil {
			return errInterrupted
		}
		return err
	}
	return printJSON(result)
}

func cmdMCP(args []string) error {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	configPath := fs.String("config", "", "Path to configuration file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var srv *mcpserver.Server
	var err error
	if *configPath != "" {
		srv, _, err = server.NewWithConfig(*configPath)
		if err != nil {
			return err
		}
	} else {
		srv, _ = server.NewWithDefaults()
	}

	ctx := interruptContext()
	if err := srv.Run(ctx); err != nil {
		if ctx.Err() != nil {
			return errInterrupted
		}
		return err
	}
	return nil
}

// parseCallArgs converts trailing --key value pairs to an argument map.
// Dashes in keys become underscores; a flag without a value is true.
func parseCallArgs(extra []string) map[string]any {
	args := make(map[string]any)
	for i := 0; i < len(extra); i++ {
		arg := extra[i]
		if !strings.HasPrefix(arg, "--") {
			continue
		}
		key := strings.ReplaceAll(arg[2:], "-", "_")
		if i+1 < len(extra) && !strings.HasPrefix(extra[i+1], "--") {
			args[key] = parseArgValue(extra[i+1])
			i++
		} else {
			args[key] = true
		}
	}
	return args
}

// parseArgValue decodes a CLI value: JSON first, then booleans, integers,
// floats, and finally the raw string.
func parseArgValue(value string) any {
	var decoded any
	if err := json.Unmarshal([]byte(value), &decoded); err == nil {
		return decoded
	}

	switch strings.ToLower(value) {
	case "true":
		return true
	case "false":
		return false
	}
	if n, err := strconv.Atoi(value); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(value, 64); err == nil {
		return f
	}
	return value
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// interruptContext returns a context canceled on SIGINT or SIGTERM.
func interruptContext() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()
	return ctx
}
