package canvas

import (
	"context"
	"fmt"
	"math"

	"github.com/skematic/wirely"
)

// minSegment is the routing threshold: segments shorter than one canvas
// unit are omitted from the path.
const minSegment = 1.0

// Point is one vertex of a wire path.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ConnectArgs are the arguments of the add_wire tool.
type ConnectArgs struct {
	FromX float64 `json:"from_x" description:"X coordinate of the wire's start point"`
	FromY float64 `json:"from_y" description:"Y coordinate of the wire's start point"`
	ToX   float64 `json:"to_x" description:"X coordinate of the wire's end point"`
	ToY   float64 `json:"to_y" description:"Y coordinate of the wire's end point"`
}

// NewConnectTool builds the add_wire tool: it routes an orthogonal L-path
// between the two endpoints and submits it to the design surface.
func NewConnectTool(exec Executor) (wirely.Tool, error) {
	return wirely.NewTool(
		"add_wire",
		"Connect two points on the canvas with an orthogonal wire.",
		func(_ context.Context, args ConnectArgs) (wirely.ToolResult, error) {
			path := routePath(args.FromX, args.FromY, args.ToX, args.ToY)
			points := make([]map[string]any, len(path))
			for i, p := range path {
				points[i] = map[string]any{"x": p.X, "y": p.Y}
			}
			ok := exec.Execute("add_wire", map[string]any{"path": points})
			if !ok {
				return wirely.ToolResult{
					Success: false,
					Message: "the canvas rejected the wire",
				}, nil
			}
			return wirely.ToolResult{
				Success: true,
				Message: fmt.Sprintf("added a wire with %d points", len(path)),
				Data:    map[string]any{"path": path},
			}, nil
		},
	)
}

// routePath emits an orthogonal path between two endpoints: when the
// horizontal offset magnitude exceeds the vertical one the route goes
// horizontal-then-vertical, otherwise vertical-then-horizontal. Segments
// shorter than minSegment are omitted.
func routePath(fromX, fromY, toX, toY float64) []Point {
	dx := toX - fromX
	dy := toY - fromY

	var corner Point
	if math.Abs(dx) > math.Abs(dy) {
		corner = Point{X: toX, Y: fromY}
	} else {
		corner = Point{X: fromX, Y: toY}
	}

	path := []Point{{X: fromX, Y: fromY}}
	for _, next := range []Point{corner, {X: toX, Y: toY}} {
		last := path[len(path)-1]
		if math.Hypot(next.X-last.X, next.Y-last.Y) < minSegment {
			continue
		}
		path = append(path, next)
	}
	return path
}
