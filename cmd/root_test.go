package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	. "github.com/onsi/gomega"
	"github.com/rmohr/plstats/pkg/configio"
	"github.com/rmohr/plstats/pkg/featuremodel"
	"github.com/rmohr/plstats/pkg/report"
	"github.com/sirupsen/logrus"
)

const pizzaModel = "../testdata/pizza.yaml"

func runCmd(t *testing.T, args ...string) error {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_DIRS", t.TempDir())
	xdg.Reload()
	t.Cleanup(xdg.Reload)

	cmd := NewRootCmd()
	cmd.SetArgs(args)
	cmd.SilenceUsage = true
	return cmd.Execute()
}

func readProducts(g *WithT, path string) int {
	f, err := os.Open(path)
	g.Expect(err).Should(BeNil())
	defer f.Close()
	configurations, err := configio.ReadCSV(f, configio.ReadOptions{})
	g.Expect(err).Should(BeNil())
	return len(configurations)
}

func TestEnumerateCommand(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		products int
	}{
		{name: "all products", args: nil, products: 42},
		{name: "limit flag", args: []string{"-l", "5"}, products: 5},
		{name: "long limit flag", args: []string{"--limit", "7"}, products: 7},
		{name: "partial configuration", args: []string{"Salami"}, products: 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGomegaWithT(t)
			out := filepath.Join(t.TempDir(), "products.csv")

			args := append([]string{"enumerate", "-m", pizzaModel, "-o", out}, tt.args...)
			g.Expect(runCmd(t, args...)).To(Succeed())
			g.Expect(config.Model).To(Equal(pizzaModel))
			g.Expect(readProducts(g, out)).To(Equal(tt.products))
		})
	}
}

func TestModelFlagIsUsed(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.yaml")
	for _, args := range [][]string{
		{"enumerate", "-m", missing},
		{"complete", "--model", missing, "Salami"},
		{"validate", "-m", missing, "-p", "../testdata/population.csv"},
		{"info", "-m", missing},
	} {
		t.Run(args[0], func(t *testing.T) {
			g := NewGomegaWithT(t)

			g.Expect(runCmd(t, args...)).To(MatchError(ContainSubstring("missing.yaml")))
			g.Expect(config.Model).To(Equal(missing))
		})
	}
}

func TestStatsCommandFormat(t *testing.T) {
	g := NewGomegaWithT(t)
	out := filepath.Join(t.TempDir(), "report.json")

	g.Expect(runCmd(t, "stats", "-p", "../testdata/population.txt", "-f", "json", "-o", out)).To(Succeed())
	g.Expect(config.Format).To(Equal(report.FormatJSON))
	data, err := os.ReadFile(out)
	g.Expect(err).Should(BeNil())
	r := &report.Report{}
	g.Expect(json.Unmarshal(data, r)).To(Succeed())
	g.Expect(r.Products).To(BeNumerically(">", 0))
	g.Expect(r.Features).To(ContainElement("Pizza"))

	g.Expect(runCmd(t, "stats", "-p", "../testdata/population.txt", "-f", "xml", "-o", out)).To(MatchError(ContainSubstring("unsupported")))
}

func TestInfoCommand(t *testing.T) {
	g := NewGomegaWithT(t)
	out := filepath.Join(t.TempDir(), "info.json")

	g.Expect(runCmd(t, "info", "-m", pizzaModel, "-f", "json", "-o", out)).To(Succeed())
	data, err := os.ReadFile(out)
	g.Expect(err).Should(BeNil())
	summary := &featuremodel.Summary{}
	g.Expect(json.Unmarshal(data, summary)).To(Succeed())
	g.Expect(summary.Name).To(Equal("pizzas"))
	g.Expect(summary.Features).To(Equal(12))
	g.Expect(summary.Core).To(ConsistOf("Pizza", "Topping", "Size", "Dough"))
	g.Expect(summary.Products).To(Equal(42))
}

func TestVerboseFlag(t *testing.T) {
	g := NewGomegaWithT(t)
	out := filepath.Join(t.TempDir(), "info.yaml")
	level := logrus.GetLevel()
	t.Cleanup(func() { logrus.SetLevel(level) })

	g.Expect(runCmd(t, "info", "-v", "-m", pizzaModel, "-o", out)).To(Succeed())
	g.Expect(config.Verbose).To(BeTrue())
	g.Expect(config.Format).To(Equal(report.FormatYAML))
	g.Expect(logrus.GetLevel()).To(Equal(logrus.DebugLevel))
}
