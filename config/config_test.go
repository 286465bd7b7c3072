package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir moves into an empty directory so no stray .env file is picked up.
func chdir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func clearEnv(t *testing.T) {
	for _, k := range []string{"CDK_DEFAULT_ACCOUNT", "CDK_DEFAULT_REGION", "ALARM_EMAIL", "MONITORING_DEBUG", "MONITORING_CONFIG"} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t)
	clearEnv(t)

	t.Setenv("MONITORING_CONFIG", "missing.yaml")
	c, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "us-east-1", c.Region)
	assert.Equal(t, "ServerlessWebserviceStack", c.Webservice.StackName)
	assert.True(t, c.Webservice.Canary)
	assert.Equal(t, "GraphQLServiceStack", c.GraphQL.StackName)
	assert.False(t, c.Debug)
}

func TestLoad_FileThenEnv(t *testing.T) {
	dir := chdir(t)
	clearEnv(t)

	path := filepath.Join(dir, "monitoring.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
region: eu-west-1
alarm_email: ops@example.com
webservice:
  dashboard_name: Hits
  canary: false
graphql:
  api_name: catalog
`), 0o600))

	t.Setenv("CDK_DEFAULT_REGION", "eu-central-1")
	t.Setenv("MONITORING_DEBUG", "true")

	t.Setenv("MONITORING_CONFIG", path)

	c, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "eu-central-1", c.Region)
	assert.Equal(t, "ops@example.com", c.AlarmEmail)
	assert.Equal(t, "Hits", c.Webservice.DashboardName)
	assert.Equal(t, "ServerlessWebserviceStack", c.Webservice.StackName)
	assert.False(t, c.Webservice.Canary)
	assert.Equal(t, "catalog", c.GraphQL.APIName)
	assert.True(t, c.Debug)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := chdir(t)
	clearEnv(t)
	require.NoError(t, os.Unsetenv("ALARM_EMAIL"))
	t.Cleanup(func() { os.Unsetenv("ALARM_EMAIL") })

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("ALARM_EMAIL=dotenv@example.com\n"), 0o600))

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "dotenv@example.com", c.AlarmEmail)
}

func TestLoad_DefaultFile(t *testing.T) {
	dir := chdir(t)
	clearEnv(t)

	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultFile), []byte("region: ap-south-1\n"), 0o600))

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "ap-south-1", c.Region)
}

func TestLoad_FileNamedInDotEnv(t *testing.T) {
	dir := chdir(t)
	clearEnv(t)
	require.NoError(t, os.Unsetenv("MONITORING_CONFIG"))
	t.Cleanup(func() { os.Unsetenv("MONITORING_CONFIG") })

	require.NoError(t, os.WriteFile(filepath.Join(dir, "stage.yaml"), []byte("region: sa-east-1\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("MONITORING_CONFIG=stage.yaml\n"), 0o600))

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "sa-east-1", c.Region)
}

func TestLoad_Errors(t *testing.T) {
	dir := chdir(t)
	clearEnv(t)

	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("webservice: [not, a, map]"), 0o600))
	t.Setenv("MONITORING_CONFIG", path)
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("MONITORING_CONFIG", "")
	t.Setenv("MONITORING_DEBUG", "sometimes")
	_, err = Load()
	assert.ErrorContains(t, err, "MONITORING_DEBUG")
}

func TestRequire(t *testing.T) {
	t.Setenv("TABLE_NAME", "hits")
	v, err := Require("TABLE_NAME")
	require.NoError(t, err)
	assert.Equal(t, "hits", v)

	t.Setenv("TABLE_NAME", "")
	_, err = Require("TABLE_NAME")
	assert.ErrorContains(t, err, "TABLE_NAME environment variable is required")
}
