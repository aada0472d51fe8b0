package main

import (
	"github.com/rmohr/plstats/pkg/api"
	"github.com/rmohr/plstats/pkg/enumerate"
	"github.com/rmohr/plstats/pkg/sat"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type enumerateOpts struct {
	output string
}

var enumerateopts = enumerateOpts{}

func NewEnumerateCmd() *cobra.Command {

	enumerateCmd := &cobra.Command{
		Use:   "enumerate [FEATURE[=true|false]...]",
		Short: "enumerates all products extending a partial configuration",
		Long:  `enumerates every full configuration of the feature model which extends the given partial configuration`,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := loadModel()
			if err != nil {
				return err
			}
			partial, err := toPartial(args)
			if err != nil {
				return err
			}
			it, err := enumerate.NewEnumerator(sat.NewSession()).Iterate(m, partial, config.Limit)
			if err != nil {
				return err
			}
			defer it.Close()
			var products []api.Configuration
			for it.Next() {
				products = append(products, it.Configuration())
			}
			if err := it.Err(); err != nil {
				return err
			}
			logrus.Infof("Found %d products.", len(products))
			if err := writePopulation(enumerateopts.output, m, api.NewPopulation(products...).Configurations()); err != nil {
				return err
			}
			logrus.Info("Done.")
			return nil
		},
	}

	addModelFlag(enumerateCmd)
	addLimitFlag(enumerateCmd)
	enumerateCmd.Flags().StringVarP(&enumerateopts.output, "output", "o", "", "output file, .csv writes a True/False matrix, anything else lists; stdout if empty")
	return enumerateCmd
}
