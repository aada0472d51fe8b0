package main

import (
	"context"
	"fmt"

	"github.com/rmohr/plstats/pkg/api"
	"github.com/rmohr/plstats/pkg/complete"
	"github.com/rmohr/plstats/pkg/configio"
	"github.com/rmohr/plstats/pkg/sat"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type completeOpts struct {
	population string
	output     string
}

var completeopts = completeOpts{}

func NewCompleteCmd() *cobra.Command {

	completeCmd := &cobra.Command{
		Use:   "complete [FEATURE[=true|false]...]",
		Short: "completes a partial configuration to a valid product",
		Long:  `completes the given partial configuration, or every configuration of a population, to a full configuration which satisfies the feature model`,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := loadModel()
			if err != nil {
				return err
			}
			completer := complete.NewCompleter(sat.NewSession())

			if completeopts.population == "" {
				partial, err := toPartial(args)
				if err != nil {
					return err
				}
				full, err := completer.Complete(m, partial)
				if err != nil {
					return err
				}
				fmt.Println(configio.FormatListLiteral(full.Selected()))
				return nil
			}

			pop, err := configio.Load(context.Background(), completeopts.population, configio.ReadOptions{OnlySelected: true})
			if err != nil {
				return err
			}
			logrus.Infof("Completing %d configurations.", pop.Len())
			completed := make([]api.Configuration, 0, pop.Len())
			for _, partial := range pop.Configurations() {
				full, err := completer.Complete(m, partial)
				if err != nil {
					return fmt.Errorf("failed to complete %v: %w", partial, err)
				}
				completed = append(completed, full)
			}
			if err := writePopulation(completeopts.output, m, completed); err != nil {
				return err
			}
			logrus.Info("Done.")
			return nil
		},
	}

	addModelFlag(completeCmd)
	completeCmd.Flags().StringVarP(&completeopts.population, "population", "p", "", "complete every configuration of this population file instead of the arguments")
	completeCmd.Flags().StringVarP(&completeopts.output, "output", "o", "", "where to write completed populations, stdout if empty")
	return completeCmd
}
