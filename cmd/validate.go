package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/rmohr/plstats/pkg/configio"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type validateOpts struct {
	population string
	complete   bool
}

var validateopts = validateOpts{}

var errInvalidConfigurations = errors.New("population contains invalid configurations")

func NewValidateCmd() *cobra.Command {

	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "checks every configuration of a population against the feature model",
		Long:  `checks every configuration of a population against the feature model, optionally completing partial configurations first`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := loadModel()
			if err != nil {
				return err
			}
			pop, err := configio.Load(context.Background(), validateopts.population, configio.ReadOptions{})
			if err != nil {
				return err
			}
			invalid, err := validatePopulation(m, pop.Configurations(), validateopts.complete)
			if err != nil {
				return err
			}
			logrus.Infof("%d of %d configurations are valid.", pop.Len()-invalid, pop.Len())
			if invalid > 0 {
				return fmt.Errorf("%w: %d of %d", errInvalidConfigurations, invalid, pop.Len())
			}
			return nil
		},
	}

	addModelFlag(validateCmd)
	validateCmd.Flags().StringVarP(&validateopts.population, "population", "p", "", "population file in csv or list format, optionally compressed")
	validateCmd.Flags().BoolVarP(&validateopts.complete, "complete", "c", false, "complete each configuration before checking it")
	_ = validateCmd.MarkFlagRequired("population")
	return validateCmd
}
