package main

import (
	"errors"
	"fmt"
	"sort"

	dgraph "github.com/dominikbraun/graph"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/stevenlee02/textnet/pkg/graph"
)

var (
	headColor  = color.New(color.FgCyan, color.Bold)
	labelColor = color.New(color.FgHiBlack)
	warnColor  = color.New(color.FgYellow)
)

func statsCmd() *cobra.Command {
	var top int

	cmd := &cobra.Command{
		Use:   "stats <document.json>",
		Short: "Summarize a document's network structure",
		Long: `Print structural statistics for a document: counts, density,
connected components, and the highest-degree nodes.

  textnet stats network.json
  textnet stats network.json --top 10`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := loadDocument(args[0])
			if err != nil {
				return err
			}
			res, err := graph.Resolve(doc, nil)
			if err != nil {
				return err
			}
			return printStats(res, top)
		},
	}

	cmd.Flags().IntVar(&top, "top", 5, "How many high-degree nodes to list")
	return cmd
}

func printStats(res *graph.Resolved, top int) error {
	g := dgraph.New(dgraph.StringHash, dgraph.Weighted())
	for _, n := range res.Nodes {
		if err := g.AddVertex(n.ID); err != nil {
			return fmt.Errorf("add vertex %q: %w", n.ID, err)
		}
	}
	for _, l := range res.Links {
		err := g.AddEdge(l.Source, l.Target, dgraph.EdgeWeight(int(l.Value)))
		if err != nil && !errors.Is(err, dgraph.ErrEdgeAlreadyExists) {
			return fmt.Errorf("add edge %q-%q: %w", l.Source, l.Target, err)
		}
	}

	order, err := g.Order()
	if err != nil {
		return err
	}
	size, err := g.Size()
	if err != nil {
		return err
	}
	adj, err := g.AdjacencyMap()
	if err != nil {
		return err
	}

	density := 0.0
	if order > 1 {
		density = 2 * float64(size) / (float64(order) * float64(order-1))
	}
	components := countComponents(adj)

	headColor.Println("Network")
	labelColor.Print("  nodes       ")
	fmt.Println(order)
	labelColor.Print("  links       ")
	fmt.Println(size)
	labelColor.Print("  density     ")
	fmt.Printf("%.4f\n", density)
	labelColor.Print("  components  ")
	fmt.Println(components)
	if components > 1 {
		warnColor.Println("  note: disconnected graphs drift apart under repulsion")
	}
	fmt.Println()

	type ranked struct {
		id     string
		degree int
	}
	byDegree := make([]ranked, 0, len(res.Nodes))
	for i, n := range res.Nodes {
		byDegree = append(byDegree, ranked{id: n.ID, degree: res.Degree(i)})
	}
	sort.Slice(byDegree, func(i, j int) bool {
		if byDegree[i].degree != byDegree[j].degree {
			return byDegree[i].degree > byDegree[j].degree
		}
		return byDegree[i].id < byDegree[j].id
	})
	if top > len(byDegree) {
		top = len(byDegree)
	}

	headColor.Println("Top nodes by degree")
	for _, r := range byDegree[:top] {
		fmt.Printf("  %-24s %d\n", r.id, r.degree)
	}
	return nil
}

// countComponents walks the adjacency map breadth-first.
func countComponents(adj map[string]map[string]dgraph.Edge[string]) int {
	visited := make(map[string]bool, len(adj))
	components := 0
	for start := range adj {
		if visited[start] {
			continue
		}
		components++
		queue := []string{start}
		visited[start] = true
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			for next := range adj[cur] {
				if !visited[next] {
					visited[next] = true
					queue = append(queue, next)
				}
			}
		}
	}
	return components
}
