package cmd

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/fieldcdr/weathering/model"
	"github.com/fieldcdr/weathering/rand"
	"github.com/fieldcdr/weathering/sampler"
)

var drawCount int

// credMass is the central credible-interval probability mass reported for
// every summarized node.
const credMass = 0.94

// The headline quantities reported after sampling.
var reportNodes = []string{
	"application rate",
	"mixing fraction",
	"CDR potential (per area)",
	"CDR (per area)",
	"CDR [metric ton CO2]",
	"CDR completion [-]",
}

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Draw prior samples and summarize the CDR estimate",
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := buildGraph()
		if err != nil {
			return err
		}

		gen, err := rand.NewGenerator(randomSeed)
		if err != nil {
			return err
		}

		prior, err := sampler.NewPrior(gen)
		if err != nil {
			return err
		}
		if err := prior.Init(g); err != nil {
			return err
		}

		draws := make([]model.Env, 0, drawCount)
		for i := 0; i < drawCount; i++ {
			env, err := prior.Sample()
			if err != nil {
				return errors.Wrapf(err, "draw %d failed", i)
			}
			draws = append(draws, env)
		}
		fmt.Printf("Drew %d prior samples from %q\n", len(draws), g.Name)

		for _, name := range reportNodes {
			sums, err := sampler.Summarize(draws, name, credMass)
			if err != nil {
				return err
			}
			for _, s := range sums {
				fmt.Printf("%-28s[%d]  mean %12.6g  sd %12.6g  %2.0f%% CI [%12.6g, %12.6g]\n",
					s.Name, s.Element, s.Mean, s.StdDev, credMass*100, s.Lo, s.Hi)
			}
		}

		return nil
	},
}

func init() {
	sampleCmd.Flags().IntVarP(&drawCount, "draws", "n", 1000, "number of prior draws")
}
