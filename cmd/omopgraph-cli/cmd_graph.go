package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/omopgraph/omopgraph/client"
	"github.com/omopgraph/omopgraph/internal/models"
	"github.com/omopgraph/omopgraph/internal/service"
	"github.com/omopgraph/omopgraph/internal/store"
	"github.com/omopgraph/omopgraph/internal/traverse"
)

func newGraphCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Concept graph traversal commands",
	}
	cmd.AddCommand(graphTraverseCmd())
	cmd.AddCommand(graphRelationshipsCmd())
	return cmd
}

// traverseOpts holds the flags of graph traverse.
type traverseOpts struct {
	depth   int
	policy  string
	fixture string
}

func graphTraverseCmd() *cobra.Command {
	var opts traverseOpts
	cmd := &cobra.Command{
		Use:   "traverse <start_id>",
		Short: "Traverse relationships from a concept",
		Long: "Traverse outgoing concept relationships up to --depth levels.\n" +
			"With --fixture the traversal runs locally against a YAML concept graph instead of the server.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			startID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("start_id must be an integer: %q", args[0])
			}
			policy, err := client.ParsePolicy(opts.policy)
			if err != nil {
				return err
			}
			if opts.depth < 0 {
				return fmt.Errorf("--depth must be >= 0")
			}

			var g *client.Graph
			if opts.fixture != "" {
				g, err = traverseFixture(cmd.Context(), opts.fixture, startID, opts.depth, policy)
			} else {
				g, err = apiClient.Graph.RecursiveRelationships(cmd.Context(), startID, opts.depth, policy)
			}
			if err != nil {
				return fmt.Errorf("traverse: %w", err)
			}
			return outputGraph(cmd.OutOrStdout(), g)
		},
	}
	cmd.Flags().IntVar(&opts.depth, "depth", 3, "Max traversal depth")
	cmd.Flags().StringVar(&opts.policy, "policy", string(client.PolicyFiltered), "Traversal policy: filtered|limited|all")
	cmd.Flags().StringVar(&opts.fixture, "fixture", "", "Run locally against a YAML concept graph")
	return cmd
}

func graphRelationshipsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "relationships",
		Short: "List the relationship labels followed by filtered traversals",
		Args:  cobra.NoArgs,
		// Runs offline.
		PersistentPreRun: func(cmd *cobra.Command, args []string) {},
		RunE: func(cmd *cobra.Command, args []string) error {
			labels := traverse.NewAllowList(traverse.DefaultRelationships...).Labels()
			out := cmd.OutOrStdout()
			if flagFmt == "table" {
				rows := make([][]string, len(labels))
				for i, l := range labels {
					rows[i] = []string{l}
				}
				formatTable(out, []string{"RELATIONSHIP_ID"}, rows)
				return nil
			}
			return formatJSON(out, labels)
		},
	}
}

// fixturePolicies maps CLI policy names to engine policy names.
var fixturePolicies = map[client.Policy]string{
	client.PolicyFiltered: traverse.PolicyFiltered,
	client.PolicyLimited:  traverse.PolicyLimited,
	client.PolicyAll:      traverse.PolicyUnfiltered,
}

// traverseFixture runs the traversal in-process over a YAML fixture.
func traverseFixture(ctx context.Context, path string, startID int64, depth int, policy client.Policy) (*client.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	mem, err := store.LoadFixture(f)
	if err != nil {
		return nil, fmt.Errorf("load fixture %s: %w", path, err)
	}

	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetLevel(logrus.WarnLevel)

	svc := service.NewGraphService(
		mem,
		traverse.NewEngine(),
		traverse.NewPolicies(traverse.NewAllowList(traverse.DefaultRelationships...)),
		service.GraphServiceConfig{MaxDepth: max(depth, service.DefaultMaxDepth)},
		log,
	)

	g, err := svc.RecursiveRelationships(ctx, startID, depth, fixturePolicies[policy])
	if err != nil {
		return nil, err
	}
	return toClientGraph(g), nil
}

func toClientGraph(g *models.Graph) *client.Graph {
	out := &client.Graph{
		Nodes: make([]client.Node, len(g.Nodes)),
		Edges: make([]client.Edge, len(g.Edges)),
	}
	for i, n := range g.Nodes {
		out.Nodes[i] = client.Node{ID: n.ID, Name: n.Name, StandardConcept: n.StandardConcept}
	}
	for i, e := range g.Edges {
		out.Edges[i] = client.Edge{SourceID: e.SourceID, TargetID: e.TargetID, RelationshipID: e.RelationshipID}
	}
	return out
}

func outputGraph(w io.Writer, g *client.Graph) error {
	if flagFmt == "table" {
		formatGraphTable(w, g)
		return nil
	}
	return formatJSON(w, g)
}
