package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Debug bool `yaml:"debug"`

	Account string `yaml:"account"`
	Region  string `yaml:"region"`

	// Alarm notifications are also mailed here when set.
	AlarmEmail string `yaml:"alarm_email"`

	Webservice struct {
		StackName     string `yaml:"stack_name"`
		DashboardName string `yaml:"dashboard_name"`
		TopicName     string `yaml:"topic_name"`
		Canary        bool   `yaml:"canary"`
	} `yaml:"webservice"`

	GraphQL struct {
		StackName     string `yaml:"stack_name"`
		APIName       string `yaml:"api_name"`
		DashboardName string `yaml:"dashboard_name"`
		TopicName     string `yaml:"topic_name"`
	} `yaml:"graphql"`
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	c := &Config{Region: "us-east-1"}
	c.Webservice.StackName = "ServerlessWebserviceStack"
	c.Webservice.DashboardName = "ServerlessWebservice"
	c.Webservice.TopicName = "webservice-alarms"
	c.Webservice.Canary = true
	c.GraphQL.StackName = "GraphQLServiceStack"
	c.GraphQL.APIName = "items-api"
	c.GraphQL.DashboardName = "GraphQLService"
	c.GraphQL.TopicName = "graphql-alarms"
	return c
}

// DefaultFile is read when MONITORING_CONFIG is unset.
const DefaultFile = "monitoring.yaml"

// Load builds the configuration from, in increasing precedence: defaults,
// the YAML file named by MONITORING_CONFIG (or DefaultFile), and the
// environment. A .env file in the working directory is loaded into the
// environment first, so it may name the YAML file too. Both files are
// optional.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(errors.Cause(err)) {
		return nil, errors.Wrap(err, "load .env")
	}

	filename := os.Getenv("MONITORING_CONFIG")
	if filename == "" {
		filename = DefaultFile
	}

	c := Default()
	data, err := os.ReadFile(filename)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, errors.WithStack(err)
	default:
		if err := yaml.Unmarshal(data, c); err != nil {
			return nil, errors.Wrapf(err, "parse %s", filename)
		}
	}

	if err := c.applyEnv(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("CDK_DEFAULT_ACCOUNT"); v != "" {
		c.Account = v
	}
	if v := os.Getenv("CDK_DEFAULT_REGION"); v != "" {
		c.Region = v
	}
	if v := os.Getenv("ALARM_EMAIL"); v != "" {
		c.AlarmEmail = v
	}
	if v := os.Getenv("MONITORING_DEBUG"); v != "" {
		debug, err := strconv.ParseBool(v)
		if err != nil {
			return errors.Wrapf(err, "MONITORING_DEBUG=%q", v)
		}
		c.Debug = debug
	}
	return nil
}

// Require returns the value of an environment variable that must be set.
func Require(key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", errors.Errorf("%s environment variable is required", key)
	}
	return value, nil
}
