package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fieldcdr/weathering/model"
)

var nodesCmd = &cobra.Command{
	Use:   "nodes",
	Short: "Build the model and list its graph nodes",
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := buildGraph()
		if err != nil {
			return err
		}

		fmt.Printf("Graph %q has %d nodes\n", g.Name, len(g.Nodes))
		for _, n := range g.Nodes {
			if n.Kind == model.Observed {
				fmt.Printf("  %-13s %-28s = %v\n", n.Kind, n.Name, n.Observed)
			} else {
				fmt.Printf("  %-13s %s\n", n.Kind, n.Name)
			}
		}

		return nil
	},
}
