package mongodb

import (
	"gopkg.in/yaml.v3"
	"os"
)

type MongoConfig struct {
	Host       string `yaml:"host"`
	DBName     string `yaml:"dbname"`
	Username   string `yaml:"username"`
	Password   string `yaml:"password"`
	AuthSource string `yaml:"authSource"`
}

type ServerConfig struct {
	Listen string `yaml:"listen"`
}

type Config struct {
	Mongo  MongoConfig  `yaml:"mongo"`
	Server ServerConfig `yaml:"server"`
	// Local timezone the crawl schedule is anchored to.
	Timezone string `yaml:"timezone"`
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if cfg.Server.Listen == "" {
		cfg.Server.Listen = ":8080"
	}
	if cfg.Timezone == "" {
		cfg.Timezone = "America/Chicago"
	}
	return &cfg, nil
}
