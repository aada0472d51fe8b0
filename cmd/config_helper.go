package main

import (
	"cmp"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/rmohr/plstats/pkg/api"
	"github.com/rmohr/plstats/pkg/configio"
	"github.com/rmohr/plstats/pkg/featuremodel"
	"github.com/sirupsen/logrus"
	"golang.org/x/exp/maps"
)

func sortedKeys[K cmp.Ordered, V any](m map[K]V) []K {
	keys := maps.Keys(m)
	slices.Sort(keys)
	return keys
}

// toPartial turns command line arguments into a partial configuration. An
// argument is a feature name, optionally followed by =true or =false.
func toPartial(args []string) (api.Configuration, error) {
	elements := map[string]bool{}
	for _, arg := range args {
		name, value, found := strings.Cut(arg, "=")
		name = strings.TrimSpace(name)
		if name == "" {
			return api.Configuration{}, fmt.Errorf("empty feature name in %q", arg)
		}
		selected := true
		if found {
			var err error
			selected, err = strconv.ParseBool(value)
			if err != nil {
				return api.Configuration{}, fmt.Errorf("invalid value for feature %s: %w", name, err)
			}
		}
		if previous, ok := elements[name]; ok && previous != selected {
			return api.Configuration{}, fmt.Errorf("feature %s is both selected and deselected", name)
		}
		elements[name] = selected
	}
	logrus.Debugf("Partial configuration %v.", sortedKeys(elements))
	return api.NewConfiguration(elements), nil
}

// loadModel loads the feature model given by the merged configuration.
func loadModel() (*featuremodel.Model, error) {
	if config.Model == "" {
		return nil, fmt.Errorf("no feature model given")
	}
	return featuremodel.LoadModelFile(config.Model)
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

// createOutput opens the output file or stdout for an empty path. The
// population format is derived from the file name, stdout gets lists.
func createOutput(path string) (io.WriteCloser, configio.Format, error) {
	if path == "" || path == "-" {
		return nopCloser{os.Stdout}, configio.FormatList, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create output file: %w", err)
	}
	return f, configio.FormatOf(path), nil
}

// writePopulation writes configurations with all model features as columns.
func writePopulation(path string, m *featuremodel.Model, configurations []api.Configuration) (err error) {
	w, format, err := createOutput(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := w.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return configio.Write(w, format, m.Features(), configurations)
}
