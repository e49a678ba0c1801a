// ABOUTME: Graphviz rendering of the sales pipeline
// ABOUTME: One node per stage with client counts, chained in progression order
package viz

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"
	"github.com/harperreed/lifehub/models"
)

// GeneratePipelineGraph returns DOT source for the stage chain. Stages with
// clients are filled, and the lost stage hangs off the side.
func GeneratePipelineGraph(clients []models.Client) (string, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to create graphviz: %w", err)
	}
	defer gv.Close()

	graph, err := gv.Graph()
	if err != nil {
		return "", fmt.Errorf("failed to create graph: %w", err)
	}
	defer graph.Close()

	graph.SetLabel("Client Pipeline")
	graph.SetRankDir(cgraph.LRRank)

	counts := make(map[models.PipelineStage]int)
	for _, c := range clients {
		counts[c.Status]++
	}

	var prev *cgraph.Node
	for i, stage := range models.Stages() {
		node, err := graph.CreateNodeByName(fmt.Sprintf("stage_%d", i))
		if err != nil {
			return "", fmt.Errorf("failed to create stage node: %w", err)
		}
		node.SetLabel(fmt.Sprintf("%s\n(%d)", stage, counts[stage]))
		node.SetShape("box")
		if counts[stage] > 0 {
			node.SetStyle("filled")
			node.SetFillColor("lightgreen")
		}

		if prev != nil {
			edge, err := graph.CreateEdgeByName(fmt.Sprintf("next_%d", i), prev, node)
			if err != nil {
				return "", fmt.Errorf("failed to create edge: %w", err)
			}
			if stage == models.StageLost {
				edge.SetStyle("dashed")
			}
		}
		if stage != models.StageLost {
			prev = node
		}
	}

	var buf bytes.Buffer
	if err := gv.Render(ctx, graph, graphviz.XDOT, &buf); err != nil {
		return "", fmt.Errorf("failed to render graph: %w", err)
	}
	return buf.String(), nil
}
