package main

import (
	"context"
	"fmt"

	"github.com/rmohr/plstats/pkg/configio"
	"github.com/rmohr/plstats/pkg/report"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type statsOpts struct {
	population   string
	attributes   string
	onlySelected bool
	output       string
}

var statsopts = statsOpts{}

func NewStatsCmd() *cobra.Command {

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "computes statistics of a population of configurations",
		Long:  `computes feature inclusion frequencies and probabilities, the product distribution and its descriptive statistics for a population of configurations`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			var r *report.Report
			switch {
			case statsopts.attributes != "":
				records, err := configio.LoadAttributes(ctx, statsopts.attributes)
				if err != nil {
					return err
				}
				r = report.BuildWithAttributes(records)
			case statsopts.population != "":
				pop, err := configio.Load(ctx, statsopts.population, configio.ReadOptions{OnlySelected: statsopts.onlySelected})
				if err != nil {
					return err
				}
				r = report.Build(pop)
			default:
				return fmt.Errorf("either --population or --attributes is required")
			}
			logrus.Infof("Population of %d products over %d features.", r.Products, len(r.Features))

			w, _, err := createOutput(statsopts.output)
			if err != nil {
				return err
			}
			defer w.Close()
			return r.Encode(w, config.Format)
		},
	}

	statsCmd.Flags().StringVarP(&statsopts.population, "population", "p", "", "population file in csv or list format, optionally compressed")
	statsCmd.Flags().StringVarP(&statsopts.attributes, "attributes", "a", "", "csv file with a Configuration column and attribute columns")
	statsCmd.Flags().BoolVar(&statsopts.onlySelected, "only-selected", false, "drop deselected csv entries when reading the population")
	addFormatFlag(statsCmd)
	statsCmd.Flags().StringVarP(&statsopts.output, "output", "o", "", "report file, stdout if empty")
	statsCmd.MarkFlagsMutuallyExclusive("population", "attributes")
	return statsCmd
}
