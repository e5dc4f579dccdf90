package mcp

import (
	"errors"
	"fmt"

	"github.com/felixgeelhaar/mcp-go"

	"github.com/felixgeelhaar/optiflow/adapter/cli"
)

// ToolDependencies provides handlers and context for MCP tools.
type ToolDependencies struct {
	App *cli.App
}

// toolset binds tool handlers to the CLI app. Handlers return errNotConfigured
// when the app lacks the handler they need.
type toolset struct {
	app *cli.App
}

var toolGroups = []struct {
	name     string
	register func(*mcp.Server, *toolset) error
}{
	{"core", registerCoreTools},
	{"task", registerTaskTools},
	{"planning", registerPlanningTools},
	{"focus", registerFocusTools},
}

// RegisterCLITools registers the tools mirroring the optiflow commands.
func RegisterCLITools(srv *mcp.Server, deps ToolDependencies) error {
	if srv == nil {
		return errors.New("server is required")
	}
	if deps.App == nil {
		return errors.New("app is required")
	}

	ts := &toolset{app: deps.App}
	for _, group := range toolGroups {
		if err := group.register(srv, ts); err != nil {
			return fmt.Errorf("register %s tools: %w", group.name, err)
		}
	}
	return nil
}
