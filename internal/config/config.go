package config

import (
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
)

const envPrefix = "FINPULSE_"

type Application struct {
	Host       string     `koanf:"host"`
	Database   Database   `koanf:"db"`
	Redis      Redis      `koanf:"redis"`
	Finance    Finance    `koanf:"finance"`
	MarketRate MarketRate `koanf:"marketrate"`
}

type Database struct {
	Host   string `koanf:"host"`
	Port   int    `koanf:"port"`
	User   string `koanf:"user"`
	Pass   string `koanf:"pass"`
	Name   string `koanf:"name"`
	Schema string `koanf:"schema"`
}

// Redis backs the market rate cache when enabled, memory is used otherwise.
type Redis struct {
	Enabled bool   `koanf:"enabled"`
	Addr    string `koanf:"addr"`
	DB      int    `koanf:"db"`
}

type Finance struct {
	TrailingMonths       int    `koanf:"trailingmonths"`
	EmergencyMonths      int    `koanf:"emergencymonths"`
	ProjectionMonths     int    `koanf:"projectionmonths"`
	SavingsAssetCategory string `koanf:"savingsassetcategory"`
}

type MarketRate struct {
	URL             string        `koanf:"url"`
	Series          string        `koanf:"series"`
	TTL             time.Duration `koanf:"ttl"`
	Timeout         time.Duration `koanf:"timeout"`
	YieldCategories []string      `koanf:"yieldcategories"`
}

func Defaults() Application {
	return Application{
		Host: "0.0.0.0:8181",
		Database: Database{
			Host:   "localhost",
			Port:   5432,
			User:   "finpulse",
			Pass:   "",
			Name:   "finpulse",
			Schema: "finpulse",
		},
		Redis: Redis{
			Enabled: false,
			Addr:    "localhost:6379",
		},
		Finance: Finance{
			TrailingMonths:       3,
			EmergencyMonths:      6,
			ProjectionMonths:     6,
			SavingsAssetCategory: "savings",
		},
		MarketRate: MarketRate{
			URL:             "https://api.bcb.gov.br/dados/serie/bcdata.sgs.%s/dados/ultimos/1?formato=json",
			Series:          "432",
			TTL:             6 * time.Hour,
			Timeout:         10 * time.Second,
			YieldCategories: []string{"savings", "investments"},
		},
	}
}

func Load(path string) (Application, error) {
	var k = koanf.New(".")

	err := k.Load(structs.Provider(Defaults(), "koanf"), nil)
	if err != nil {
		log.Errorf("error loading config from structs: %v", err)
		return Application{}, err
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if os.IsNotExist(err) {
			log.Infof("Config file not found at %s, using defaults and environment variables", path)
		} else {
			log.Errorf("error loading config from YAML: %v", err)
			return Application{}, err
		}
	} else {
		log.Infof("Loaded configuration from file: %s", path)
	}

	err = k.Load(env.Provider(".", env.Opt{
		Prefix: envPrefix,
		TransformFunc: func(k, v string) (string, any) {
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, envPrefix)), "_", ".")
			// comma separated lists
			if strings.Contains(v, ",") {
				return k, strings.Split(v, ",")
			}
			return k, v
		},
	}), nil)
	if err != nil {
		log.Errorf("error loading config from envs: %v", err)
		return Application{}, err
	}

	var app Application
	if err := k.Unmarshal("", &app); err != nil {
		return Application{}, err
	}

	return app, nil
}
