package main

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"tereborace.com/enerxia/energy"
)

// ==== Configuración ====
//
// Ficheiro YAML opcional (--config). Exemplo:
//
//	default_country: Colombia
//	tables:
//	  electricity: Monthly_Electricity_Statistics
//	exclude_countries_like: ["%OECD%", "%Total%"]
//	classifier:
//	  renewable: [Hydro, Wind, Geothermal, Combustible Renewables, Solar, Other Renewables]
//	percent_scope: classified   # classified | all
//	column_order: canonical     # canonical | first-seen | alphabetical
//	top_n: 10
//
// As claves que falten quedan cos valores por defecto.
type config struct {
	DefaultCountry       string                  `yaml:"default_country"`
	Tables               tablesConfig            `yaml:"tables"`
	ExcludeCountriesLike []string                `yaml:"exclude_countries_like"`
	Classifier           energy.ClassifierConfig `yaml:"classifier"`
	PercentScope         string                  `yaml:"percent_scope"`
	ColumnOrder          string                  `yaml:"column_order"`
	TopN                 int                     `yaml:"top_n"`
}

type tablesConfig struct {
	Electricity string `yaml:"electricity"`
	Consumption string `yaml:"consumption"`
	Emissions   string `yaml:"emissions"`
}

func defaultConfig() config {
	return config{
		DefaultCountry: "Colombia",
		Tables: tablesConfig{
			Electricity: "Monthly_Electricity_Statistics",
			Consumption: "International Energy Agency - electricity final consumption by sector in Colombia",
			Emissions:   "International Energy Agency - CO2 emissions by sector in Colombia",
		},
		ExcludeCountriesLike: []string{"%OECD%", "%Total%"},
		Classifier: energy.ClassifierConfig{
			Excluded:  energy.DefaultExcluded,
			Renewable: energy.DefaultRenewable,
		},
		PercentScope: string(energy.ScopeClassified),
		ColumnOrder:  string(energy.Canonical),
		TopN:         10,
	}
}

// loadConfig le o YAML sobre os valores por defecto. path == "" devolve os defectos.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	if cfg.TopN <= 0 {
		cfg.TopN = 10
	}
	return cfg, nil
}

func (c config) table(src energy.Source) string {
	switch src {
	case energy.SourceConsumption:
		return c.Tables.Consumption
	case energy.SourceEmissions:
		return c.Tables.Emissions
	default:
		return c.Tables.Electricity
	}
}

func (c config) runner() *energy.Runner {
	return energy.NewRunner(c.Classifier.Classifier(), energy.Options{
		Scope:       energy.ParsePercentScope(c.PercentScope),
		ColumnOrder: energy.ParseColumnOrder(c.ColumnOrder),
		TopN:        c.TopN,
	})
}

// valor dunha variable de entorno ou o defecto se está baleira
func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}
