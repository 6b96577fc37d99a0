package canvas

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/skematic/wirely"
)

// PlaceArgs are the arguments of the add_component tool.
type PlaceArgs struct {
	ComponentUID string  `json:"component_uid" description:"Catalog uid of the component to place (from component_search)"`
	X            float64 `json:"x,omitempty" description:"X coordinate for the placement"`
	Y            float64 `json:"y,omitempty" description:"Y coordinate for the placement"`
}

// Validate implements wirely.Validatable.
func (a PlaceArgs) Validate() error {
	if strings.TrimSpace(a.ComponentUID) == "" {
		return errors.New("component_uid must not be empty")
	}
	return nil
}

// NewPlaceTool builds the add_component tool. Every invocation mints a
// fresh instance id, independent of the catalog uid: one catalog entry may
// be placed any number of times within a session.
func NewPlaceTool(exec Executor) (wirely.Tool, error) {
	return wirely.NewTool(
		"add_component",
		"Place a component from the parts library onto the canvas.",
		func(_ context.Context, args PlaceArgs) (wirely.ToolResult, error) {
			instanceID := "component_" + uuid.NewString()
			ok := exec.Execute("add_component", map[string]any{
				"component_uid": args.ComponentUID,
				"component_id":  instanceID,
				"x":             args.X,
				"y":             args.Y,
			})
			if !ok {
				return wirely.ToolResult{
					Success: false,
					Message: fmt.Sprintf("the canvas rejected component %s", args.ComponentUID),
				}, nil
			}
			return wirely.ToolResult{
				Success: true,
				Message: fmt.Sprintf("placed %s as %s", args.ComponentUID, instanceID),
				Data:    map[string]any{"component_id": instanceID},
			}, nil
		},
	)
}
