package bedrockllm

import (
	"os"
)

// Environment variable names for credential/region configuration.
// AWS_REGION_NAME is the primary region variable; the standard SDK
// variables are honored as fallbacks.
const (
	EnvAccessKey     = "AWS_ACCESS_KEY"
	EnvSecretKey     = "AWS_SECRET_KEY"
	EnvRegionName    = "AWS_REGION_NAME"
	EnvRegion        = "AWS_REGION"
	EnvDefaultRegion = "AWS_DEFAULT_REGION"
)

// Config holds the environment-sourced provider configuration. Consumed
// once at startup or refresh; a changed Config is applied by rebuilding the
// owning provider's client handles wholesale.
type Config struct {
	// AccessKey is the AWS access key id. Empty means use the SDK's
	// default credential chain (instance/task role, shared config, ...).
	AccessKey string

	// SecretKey is the AWS secret access key.
	SecretKey string

	// Region is the AWS region hosting the Bedrock endpoints.
	Region string
}

// ConfigFromEnv reads configuration from the environment.
// Region resolution order: AWS_REGION_NAME, AWS_REGION, AWS_DEFAULT_REGION.
func ConfigFromEnv() Config {
	region := os.Getenv(EnvRegionName)
	if region == "" {
		region = os.Getenv(EnvRegion)
	}
	if region == "" {
		region = os.Getenv(EnvDefaultRegion)
	}

	return Config{
		AccessKey: os.Getenv(EnvAccessKey),
		SecretKey: os.Getenv(EnvSecretKey),
		Region:    region,
	}
}

// HasStaticCredentials reports whether the config carries an explicit
// key pair (as opposed to relying on the SDK's default chain).
func (c Config) HasStaticCredentials() bool {
	return c.AccessKey != "" && c.SecretKey != ""
}
