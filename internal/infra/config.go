package infra

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config는 애플리케이션의 모든 설정을 담습니다.
// LoadConfig로 로드된 후에 환경 변수를 통해 데이터 디렉토리를 덮어씁니다.
type Config struct {
	App struct {
		Name    string `yaml:"name"`
		Version string `yaml:"version"`
	} `yaml:"app"`

	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`

	Data struct {
		Dir string `yaml:"dir"` // base directory for snapshots and history files
	} `yaml:"data"`

	Master struct {
		FetchTimeoutSec int `yaml:"fetch_timeout_sec"`
	} `yaml:"master"`

	Logging struct {
		Level string `yaml:"level"`
	} `yaml:"logging"`
}

// LoadConfig는 설정 파일을 읽고 파싱합니다. A missing file is not an
// error; defaults apply. HANTOO_DATA_DIR overrides the data directory.
func LoadConfig(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg.applyDefaults()
	cfg.applyEnvOverrides()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.App.Name == "" {
		c.App.Name = "hantoo-master"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Data.Dir == "" {
		c.Data.Dir = "."
	}
	if c.Master.FetchTimeoutSec <= 0 {
		c.Master.FetchTimeoutSec = 60
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}

func (c *Config) applyEnvOverrides() {
	if dir := os.Getenv("HANTOO_DATA_DIR"); dir != "" {
		c.Data.Dir = dir
	}
}
