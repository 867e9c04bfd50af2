package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/omopgraph/omopgraph/client"
)

func formatJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

func formatTable(w io.Writer, headers []string, rows [][]string) {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	printRow := func(cells []string) {
		parts := make([]string, len(cells))
		for i, cell := range cells {
			wd := 0
			if i < len(widths) {
				wd = widths[i]
			}
			parts[i] = fmt.Sprintf("%-*s", wd, cell)
		}
		fmt.Fprintln(w, strings.TrimRight(strings.Join(parts, "  "), " "))
	}

	printRow(headers)
	seps := make([]string, len(headers))
	for i, wd := range widths {
		seps[i] = strings.Repeat("-", wd)
	}
	printRow(seps)
	for _, row := range rows {
		printRow(row)
	}
}

// formatGraphTable prints one row per edge with both endpoint names.
func formatGraphTable(w io.Writer, g *client.Graph) {
	names := make(map[int64]string, len(g.Nodes))
	for _, n := range g.Nodes {
		name := n.Name
		if n.StandardConcept != nil {
			name += " [" + *n.StandardConcept + "]"
		}
		names[n.ID] = name
	}

	rows := make([][]string, len(g.Edges))
	for i, e := range g.Edges {
		rows[i] = []string{
			strconv.FormatInt(e.SourceID, 10),
			names[e.SourceID],
			e.RelationshipID,
			strconv.FormatInt(e.TargetID, 10),
			names[e.TargetID],
		}
	}
	formatTable(w, []string{"SOURCE", "SOURCE_NAME", "RELATIONSHIP", "TARGET", "TARGET_NAME"}, rows)
	fmt.Fprintf(w, "\n%d nodes, %d edges\n", len(g.Nodes), len(g.Edges))
}
