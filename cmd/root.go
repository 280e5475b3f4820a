package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fieldcdr/weathering/dataset"
	"github.com/fieldcdr/weathering/model"
	"github.com/fieldcdr/weathering/process"
)

var cubeFile string
var cfgFile string
var realization int
var randomSeed int64
var verbose bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "weathering",
	Short: "Bayesian CDR estimation for enhanced-weathering field trials",
	Long: `weathering builds the generative model for an enhanced-weathering
field trial and draws from it. Among other features:

  - Reading measurement cubes (JSON) and extracting single realizations
  - The five-stage process model with the full named-node vocabulary
  - Prior sampling with credible-interval summaries
`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("weathering\n")
		fmt.Printf("Verbose:     %v\n", verbose)
		fmt.Printf("Cube:        %s\n", cubeFile)
		fmt.Printf("Realization: %d\n", realization)
		fmt.Printf("Rnd Seed:    %d\n", randomSeed)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.PersistentFlags().StringVarP(&cubeFile, "cube", "m", "", "measurement cube JSON file to read")
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "deployment config YAML (built-in defaults if empty)")
	rootCmd.PersistentFlags().IntVarP(&realization, "realization", "i", 0, "realization index to extract")
	rootCmd.PersistentFlags().Int64VarP(&randomSeed, "seed", "r", 1, "Random seed to use")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose logging (default is much more parsimonious)")

	rootCmd.MarkPersistentFlagRequired("cube")

	rootCmd.AddCommand(nodesCmd)
	rootCmd.AddCommand(sampleCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// buildGraph is the shared load-extract-build pipeline behind the
// subcommands.
func buildGraph() (*model.Graph, error) {
	cube, err := dataset.NewCubeFromFile(dataset.JSONReader{}, cubeFile)
	if err != nil {
		return nil, err
	}
	if verbose {
		fmt.Printf("Cube: %d samples, %d analytes, %d realizations\n",
			cube.Samples(), len(cube.Analytes()), cube.Realizations())
	}

	tbl, err := dataset.Extract(cube, realization)
	if err != nil {
		return nil, err
	}

	cfg := process.DefaultConfig()
	if len(cfgFile) > 0 {
		cfg, err = process.LoadConfig(cfgFile)
		if err != nil {
			return nil, err
		}
	}

	return process.BuildConfig(tbl, cfg)
}
