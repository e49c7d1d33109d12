package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// SysConfig system level configuration
type SysConfig struct {
	Appid    string `yaml:"appid" json:"appid"`
	Location string `yaml:"location" json:"location"`
	Workdir  string `yaml:"workdir" json:"workdir"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

// WebConfig web server configuration
type WebConfig struct {
	Host      string `yaml:"host" json:"host"`
	Port      int    `yaml:"port" json:"port"`
	Secret    string `yaml:"secret" json:"secret"`
	JwtExpire int    `yaml:"jwt_expire" json:"jwt_expire"` // hours
}

// DBConfig database configuration
type DBConfig struct {
	Type     string `yaml:"type" json:"type"` // postgres or sqlite
	Host     string `yaml:"host" json:"host"`
	Port     int    `yaml:"port" json:"port"`
	Name     string `yaml:"name" json:"name"`
	User     string `yaml:"user" json:"user"`
	Passwd   string `yaml:"passwd" json:"passwd"`
	MaxConn  int    `yaml:"max_conn" json:"max_conn"`
	IdleConn int    `yaml:"idle_conn" json:"idle_conn"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

// LogConfig logging configuration
type LogConfig struct {
	Mode       string `yaml:"mode" json:"mode"` // development or production
	FileEnable bool   `yaml:"file_enable" json:"file_enable"`
	Filename   string `yaml:"filename" json:"filename"`
}

// MailConfig smtp configuration for order notifications
type MailConfig struct {
	Enable   bool   `yaml:"enable" json:"enable"`
	Host     string `yaml:"host" json:"host"`
	Port     int    `yaml:"port" json:"port"`
	Username string `yaml:"username" json:"username"`
	Password string `yaml:"password" json:"password"`
	From     string `yaml:"from" json:"from"`
	NotifyTo string `yaml:"notify_to" json:"notify_to"`
}

type AppConfig struct {
	System   SysConfig  `yaml:"system" json:"system"`
	Web      WebConfig  `yaml:"web" json:"web"`
	Database DBConfig   `yaml:"database" json:"database"`
	Logger   LogConfig  `yaml:"logger" json:"logger"`
	Mail     MailConfig `yaml:"mail" json:"mail"`
}

var DefaultAppConfig = &AppConfig{
	System: SysConfig{
		Appid:    "EliteSupps",
		Location: "Africa/Cairo",
		Workdir:  "/var/elitesupps",
		Debug:    true,
	},
	Web: WebConfig{
		Host:      "0.0.0.0",
		Port:      1816,
		Secret:    "9b6de5cc-0001-5ac9-f9ff-62bc35657ec0",
		JwtExpire: 24,
	},
	Database: DBConfig{
		Type:     "postgres",
		Host:     "127.0.0.1",
		Port:     5432,
		Name:     "elitesupps",
		User:     "postgres",
		Passwd:   "root",
		MaxConn:  100,
		IdleConn: 10,
	},
	Logger: LogConfig{
		Mode:       "development",
		FileEnable: true,
		Filename:   "/var/elitesupps/elitesupps.log",
	},
	Mail: MailConfig{
		Enable: false,
		Port:   465,
	},
}

func setEnvValue(name string, val *string) {
	var evalue = os.Getenv(name)
	if evalue != "" {
		*val = evalue
	}
}

func setEnvBoolValue(name string, val *bool) {
	var evalue = os.Getenv(name)
	if evalue != "" {
		*val = evalue == "true" || evalue == "1" || evalue == "on"
	}
}

func setEnvIntValue(name string, val *int) {
	var evalue = os.Getenv(name)
	if evalue != "" {
		if ivalue, err := strconv.Atoi(evalue); err == nil {
			*val = ivalue
		}
	}
}

// LoadConfig reads configuration from the given yaml file, falling back to
// defaults, then applies ELITESUPPS_* environment overrides.
func LoadConfig(cfile string) *AppConfig {
	if cfile == "" {
		cfile = "elitesupps.yml"
	}
	// copy the defaults so env overrides never mutate the shared value
	cfg := new(AppConfig)
	*cfg = *DefaultAppConfig
	if FileExists(cfile) {
		data, err := os.ReadFile(cfile)
		if err != nil {
			panic(errors.Wrap(err, "read config file error"))
		}
		cfg = new(AppConfig)
		if err := yaml.Unmarshal(data, cfg); err != nil {
			panic(errors.Wrap(err, "parse config file error"))
		}
	}

	setEnvValue("ELITESUPPS_SYSTEM_WORKDIR", &cfg.System.Workdir)
	setEnvBoolValue("ELITESUPPS_SYSTEM_DEBUG", &cfg.System.Debug)
	setEnvValue("ELITESUPPS_DB_TYPE", &cfg.Database.Type)
	setEnvValue("ELITESUPPS_DB_HOST", &cfg.Database.Host)
	setEnvIntValue("ELITESUPPS_DB_PORT", &cfg.Database.Port)
	setEnvValue("ELITESUPPS_DB_NAME", &cfg.Database.Name)
	setEnvValue("ELITESUPPS_DB_USER", &cfg.Database.User)
	setEnvValue("ELITESUPPS_DB_PWD", &cfg.Database.Passwd)
	setEnvValue("ELITESUPPS_WEB_HOST", &cfg.Web.Host)
	setEnvIntValue("ELITESUPPS_WEB_PORT", &cfg.Web.Port)
	setEnvValue("ELITESUPPS_WEB_SECRET", &cfg.Web.Secret)
	setEnvValue("ELITESUPPS_MAIL_HOST", &cfg.Mail.Host)
	setEnvValue("ELITESUPPS_MAIL_USERNAME", &cfg.Mail.Username)
	setEnvValue("ELITESUPPS_MAIL_PASSWORD", &cfg.Mail.Password)

	return cfg
}

func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil || os.IsExist(err)
}

// InitDirs ensures working directories exist
func (c *AppConfig) InitDirs() {
	_ = os.MkdirAll(filepath.Join(c.System.Workdir, "logs"), 0755)
	_ = os.MkdirAll(filepath.Join(c.System.Workdir, "data"), 0755)
	_ = os.MkdirAll(filepath.Join(c.System.Workdir, "metrics"), 0755)
}
