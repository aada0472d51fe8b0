package main

import (
	"github.com/rmohr/plstats/pkg/featuremodel"
	"github.com/rmohr/plstats/pkg/report"
	"github.com/rmohr/plstats/pkg/sat"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type infoOpts struct {
	output string
}

var infoopts = infoOpts{}

func NewInfoCmd() *cobra.Command {

	infoCmd := &cobra.Command{
		Use:   "info",
		Short: "summarizes a feature model",
		Long:  `prints the features, groups and constraints of a feature model together with its core features, dead features and the number of products`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := loadModel()
			if err != nil {
				return err
			}
			summary, err := featuremodel.Summarize(m, sat.NewSession())
			if err != nil {
				return err
			}
			logrus.Infof("Model %s has %d features and %d products.", summary.Name, summary.Features, summary.Products)

			w, _, err := createOutput(infoopts.output)
			if err != nil {
				return err
			}
			defer w.Close()
			return report.EncodeValue(w, config.Format, summary)
		},
	}

	addModelFlag(infoCmd)
	addFormatFlag(infoCmd)
	infoCmd.Flags().StringVarP(&infoopts.output, "output", "o", "", "summary file, stdout if empty")
	return infoCmd
}
