package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mcvisor/mcvisor-go/internal/safefile"
	"github.com/mcvisor/mcvisor-go/pkg/mcvisor"
	"github.com/mcvisor/mcvisor-go/pkg/mcvisor/event"
)

// Environment variables read by the CLI.
const (
	EnvConfig       = "MCVISOR_CONFIG"
	EnvJar          = "MCVISOR_JAR"
	EnvRCONPassword = "MCVISOR_RCON_PASSWORD"
)

// maxConfigSize bounds config file reads.
const maxConfigSize = 1 * 1024 * 1024

// Config is the CLI configuration file.
//
// Example:
//
//	server:
//	  jar: minecraft_server.1.8.9.jar
//	  dir: /srv/minecraft
//	  java_opts: ["-Xms1G", "-Xmx2G"]
//	  shutdown_timeout: 60s
//	patterns:
//	  - /etc/mcvisor/templates.yaml
//	rcon:
//	  host: 127.0.0.1
//	  port: "25575"
//	metrics:
//	  endpoint: otel-collector:4317
//	  insecure: true
//	hooks:
//	  - on: login
//	    command: /tell {player} Welcome back, {player}!
//	  - on: chat
//	    pattern: '!day$'
//	    command: /time set day
type Config struct {
	Server             ServerConfig  `yaml:"server"`
	Patterns           []string      `yaml:"patterns"`
	StopOnHandlerError bool          `yaml:"stop_on_handler_error"`
	RCON               RCONConfig    `yaml:"rcon"`
	Metrics            MetricsConfig `yaml:"metrics"`
	Hooks              []Hook        `yaml:"hooks"`
}

// ServerConfig describes how to start the server process.
type ServerConfig struct {
	Jar             string        `yaml:"jar"`
	Dir             string        `yaml:"dir"`
	Java            string        `yaml:"java"`
	JavaOpts        []string      `yaml:"java_opts"`
	Command         []string      `yaml:"command"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// RCONConfig locates the server's RCON listener. The password is read from
// MCVISOR_RCON_PASSWORD only, so config files can be shared.
type RCONConfig struct {
	Host     string        `yaml:"host"`
	Port     string        `yaml:"port"`
	Password string        `yaml:"-"`
	Timeout  time.Duration `yaml:"timeout"`
}

// Enabled reports whether RCON is configured.
func (c RCONConfig) Enabled() bool {
	return c.Host != "" && c.Password != ""
}

// MetricsConfig controls OTLP metric export. Export is off without an endpoint.
type MetricsConfig struct {
	Endpoint    string        `yaml:"endpoint"`
	Insecure    bool          `yaml:"insecure"`
	Interval    time.Duration `yaml:"interval"`
	ServiceName string        `yaml:"service_name"`
}

// Hook sends a console command when an event is dispatched.
type Hook struct {
	// On is the event kind: login, logout, death, chat or generic.
	On string `yaml:"on"`

	// Pattern, Level and Thread filter chat hooks like mcvisor.ChatFilter.
	Pattern string `yaml:"pattern"`
	Level   string `yaml:"level"`
	Thread  string `yaml:"thread"`

	// Command is the console command template. See expandCommand for the
	// placeholders.
	Command string `yaml:"command"`
}

func defaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Java: "java",
		},
		RCON: RCONConfig{
			Port:    "25575",
			Timeout: 5 * time.Second,
		},
		Metrics: MetricsConfig{
			Interval:    30 * time.Second,
			ServiceName: "mcvisor",
		},
	}
}

// LoadConfig reads the config file at path, if any, and applies
// environment overrides. An empty path yields the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := defaultConfig()

	if path != "" {
		data, err := safefile.ReadRegular(path, maxConfigSize)
		if err != nil {
			return cfg, fmt.Errorf("reading config: %w", safefile.SanitizePathError(err))
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config: %w", err)
		}
	}

	if v := os.Getenv(EnvJar); v != "" {
		cfg.Server.Jar = v
	}
	cfg.RCON.Password = os.Getenv(EnvRCONPassword)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks hook definitions and durations.
func (c Config) Validate() error {
	if c.Server.ShutdownTimeout < 0 {
		return errors.New("server.shutdown_timeout must not be negative")
	}
	if c.Metrics.Endpoint != "" && c.Metrics.Interval <= 0 {
		return errors.New("metrics.interval must be positive")
	}
	for i, h := range c.Hooks {
		kind, err := event.ParseKind(h.On)
		if err != nil {
			return fmt.Errorf("hooks[%d]: %w", i, err)
		}
		if h.Command == "" {
			return fmt.Errorf("hooks[%d]: command is required", i)
		}
		if kind != mcvisor.EventChat && (h.Pattern != "" || h.Level != "" || h.Thread != "") {
			return fmt.Errorf("hooks[%d]: pattern, level and thread only apply to chat hooks", i)
		}
	}
	return nil
}
