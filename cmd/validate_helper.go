package main

import (
	"errors"

	"github.com/rmohr/plstats/pkg/api"
	"github.com/rmohr/plstats/pkg/complete"
	"github.com/rmohr/plstats/pkg/featuremodel"
	"github.com/rmohr/plstats/pkg/sat"
	"github.com/sirupsen/logrus"
)

// validatePopulation counts the configurations which violate the model.
// Unknown features and infeasible completions count as violations, any other
// error aborts the check.
func validatePopulation(m *featuremodel.Model, configurations []api.Configuration, completeFirst bool) (invalid int, err error) {
	completer := complete.NewCompleter(sat.NewSession())
	for _, c := range configurations {
		if err := featuremodel.CheckReferences(m, c); err != nil {
			logrus.Warnf("Configuration %v is invalid: %v.", c, err)
			invalid++
			continue
		}
		if completeFirst {
			full, err := completer.Complete(m, c)
			if errors.Is(err, complete.ErrInfeasiblePartialConfiguration) {
				logrus.Warnf("Configuration %v cannot be completed.", c)
				invalid++
				continue
			} else if err != nil {
				return invalid, err
			}
			c = full
		}
		if !m.Valid(c) {
			logrus.Warnf("Configuration %v violates the model.", c)
			invalid++
			continue
		}
		logrus.Debugf("Configuration %v is valid.", c)
	}
	return invalid, nil
}
