package config

import (
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v2"
)

type SysConfig struct {
	Appid    string `yaml:"appid" json:"appid"`
	Location string `yaml:"location" json:"location"`
	Workdir  string `yaml:"workdir" json:"workdir"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

type WebConfig struct {
	Host      string `yaml:"host" json:"host"`
	Port      int    `yaml:"port" json:"port"`
	JwtSecret string `yaml:"jwt_secret" json:"jwt_secret"`
}

type DBConfig struct {
	Type     string `yaml:"type" json:"type"`
	Host     string `yaml:"host" json:"host"`
	Port     int    `yaml:"port" json:"port"`
	Name     string `yaml:"name" json:"name"`
	User     string `yaml:"user" json:"user"`
	Passwd   string `yaml:"passwd" json:"passwd"`
	MaxConn  int    `yaml:"max_conn" json:"max_conn"`
	IdleConn int    `yaml:"idle_conn" json:"idle_conn"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

type LoggerConfig struct {
	Mode       string `yaml:"mode" json:"mode"`
	FileEnable bool   `yaml:"file_enable" json:"file_enable"`
	Filename   string `yaml:"filename" json:"filename"`
}

type AppConfig struct {
	System   SysConfig    `yaml:"system" json:"system"`
	Web      WebConfig    `yaml:"web" json:"web"`
	Database DBConfig     `yaml:"database" json:"database"`
	Logger   LoggerConfig `yaml:"logger" json:"logger"`
}

func (c *AppConfig) GetLogDir() string {
	return filepath.Join(c.System.Workdir, "logs")
}

func (c *AppConfig) GetDataDir() string {
	return filepath.Join(c.System.Workdir, "data")
}

var DefaultAppConfig = &AppConfig{
	System: SysConfig{
		Appid:    "GreenHaven",
		Location: "Africa/Tunis",
		Workdir:  "/var/greenhaven",
		Debug:    true,
	},
	Web: WebConfig{
		Host:      "0.0.0.0",
		Port:      1820,
		JwtSecret: "9b6de5cc-0731-1203-xxtt-0f568ac9da37",
	},
	Database: DBConfig{
		Type:     "postgres",
		Host:     "127.0.0.1",
		Port:     5432,
		Name:     "greenhaven",
		User:     "postgres",
		Passwd:   "myroot",
		MaxConn:  100,
		IdleConn: 10,
		Debug:    false,
	},
	Logger: LoggerConfig{
		Mode:       "development",
		FileEnable: true,
		Filename:   "/var/greenhaven/greenhaven.log",
	},
}

func setEnvStrValue(env string, val *string) {
	evalue := os.Getenv(env)
	if evalue != "" {
		*val = evalue
	}
}

func setEnvIntValue(env string, val *int) {
	evalue := os.Getenv(env)
	if evalue == "" {
		return
	}
	p, err := strconv.ParseInt(evalue, 10, 64)
	if err == nil {
		*val = int(p)
	}
}

func setEnvBoolValue(env string, val *bool) {
	evalue := os.Getenv(env)
	if evalue != "" {
		*val = evalue == "true" || evalue == "1" || evalue == "on"
	}
}

// LoadConfig reads the YAML configuration file and applies environment
// variable overrides. A missing file falls back to DefaultAppConfig.
func LoadConfig(cfile string) *AppConfig {
	cfg := new(AppConfig)
	*cfg = *DefaultAppConfig
	if cfile != "" {
		if data, err := os.ReadFile(cfile); err == nil {
			_ = yaml.Unmarshal(data, cfg)
		}
	}

	setEnvStrValue("GREENHAVEN_SYSTEM_WORKDIR", &cfg.System.Workdir)
	setEnvBoolValue("GREENHAVEN_SYSTEM_DEBUG", &cfg.System.Debug)

	setEnvStrValue("GREENHAVEN_WEB_HOST", &cfg.Web.Host)
	setEnvIntValue("GREENHAVEN_WEB_PORT", &cfg.Web.Port)
	setEnvStrValue("GREENHAVEN_WEB_JWT_SECRET", &cfg.Web.JwtSecret)

	setEnvStrValue("GREENHAVEN_DB_HOST", &cfg.Database.Host)
	setEnvIntValue("GREENHAVEN_DB_PORT", &cfg.Database.Port)
	setEnvStrValue("GREENHAVEN_DB_NAME", &cfg.Database.Name)
	setEnvStrValue("GREENHAVEN_DB_USER", &cfg.Database.User)
	setEnvStrValue("GREENHAVEN_DB_PWD", &cfg.Database.Passwd)
	setEnvBoolValue("GREENHAVEN_DB_DEBUG", &cfg.Database.Debug)

	setEnvStrValue("GREENHAVEN_LOGGER_MODE", &cfg.Logger.Mode)
	setEnvBoolValue("GREENHAVEN_LOGGER_FILE_ENABLE", &cfg.Logger.FileEnable)
	setEnvStrValue("GREENHAVEN_LOGGER_FILENAME", &cfg.Logger.Filename)

	return cfg
}
