package report

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"slices"

	"github.com/fxamacker/cbor/v2"
	"github.com/rmohr/plstats/pkg/api"
	"github.com/rmohr/plstats/pkg/stats"
	"golang.org/x/exp/maps"
	"sigs.k8s.io/yaml"
)

const (
	FormatYAML = "yaml"
	FormatJSON = "json"
	FormatCBOR = "cbor"
)

// Formats lists the supported encodings.
var Formats = []string{FormatYAML, FormatJSON, FormatCBOR}

// Report is the serializable statistics view of a population.
type Report struct {
	Products              int                         `json:"products"`
	Hash                  string                      `json:"hash"`
	Features              []string                    `json:"features"`
	Frequency             map[string]uint64           `json:"frequency"`
	Probability           map[string]float64          `json:"probability"`
	ProductDistribution   []uint64                    `json:"productDistribution"`
	InclusionDistribution []uint64                    `json:"inclusionDistribution"`
	Summary               stats.Summary               `json:"summary"`
	Attributes            map[string]AttributeSummary `json:"attributes,omitempty"`
}

// AttributeSummary aggregates a numeric attribute over all records that
// carry it as an integer or float.
type AttributeSummary struct {
	Count int     `json:"count"`
	Mean  float64 `json:"mean"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
}

func Build(pop *api.Population) *Report {
	distribution := stats.ProductDistribution(pop)
	return &Report{
		Products:              pop.Len(),
		Hash:                  pop.Hash(),
		Features:              pop.Features(),
		Frequency:             stats.FeatureInclusionFrequency(pop),
		Probability:           stats.FeatureInclusionProbability(pop),
		ProductDistribution:   distribution.Counts(),
		InclusionDistribution: stats.InclusionDistribution(pop).Counts(),
		Summary:               stats.Describe(distribution),
	}
}

// BuildWithAttributes reports on the configurations of the records and adds
// a summary for every numeric attribute.
func BuildWithAttributes(records []api.Record) *Report {
	configurations := make([]api.Configuration, 0, len(records))
	for _, r := range records {
		configurations = append(configurations, r.Configuration)
	}
	report := Build(api.NewPopulation(configurations...))
	report.Attributes = summarizeAttributes(records)
	return report
}

func summarizeAttributes(records []api.Record) map[string]AttributeSummary {
	summaries := map[string]AttributeSummary{}
	sums := map[string]float64{}
	for _, r := range records {
		keys := maps.Keys(r.Attributes)
		slices.Sort(keys)
		for _, key := range keys {
			value, err := r.Attributes.Float(key)
			if err != nil {
				continue
			}
			s, ok := summaries[key]
			if !ok {
				s = AttributeSummary{Min: math.Inf(1), Max: math.Inf(-1)}
			}
			s.Count++
			s.Min = math.Min(s.Min, value)
			s.Max = math.Max(s.Max, value)
			sums[key] += value
			summaries[key] = s
		}
	}
	for key, s := range summaries {
		s.Mean = sums[key] / float64(s.Count)
		summaries[key] = s
	}
	return summaries
}

// Encode writes the report in the given format.
func (r *Report) Encode(w io.Writer, format string) error {
	return EncodeValue(w, format, r)
}

// EncodeValue writes v in the given format. CBOR output uses the core
// deterministic encoding.
func EncodeValue(w io.Writer, format string, v interface{}) error {
	var data []byte
	var err error
	switch format {
	case FormatYAML:
		data, err = yaml.Marshal(v)
	case FormatJSON:
		data, err = json.MarshalIndent(v, "", "  ")
		data = append(data, '\n')
	case FormatCBOR:
		var mode cbor.EncMode
		mode, err = cbor.CoreDetEncOptions().EncMode()
		if err == nil {
			data, err = mode.Marshal(v)
		}
	default:
		return fmt.Errorf("unsupported report format %q, expected one of %v", format, Formats)
	}
	if err != nil {
		return fmt.Errorf("failed to encode as %s: %w", format, err)
	}
	_, err = w.Write(data)
	return err
}
