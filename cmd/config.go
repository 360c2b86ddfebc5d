package cmd

import (
	"strings"
	"time"

	"github.com/bnema/yamcl/internal/adapters/curserinth"
	"github.com/bnema/yamcl/internal/adapters/mojang"
	"github.com/bnema/yamcl/internal/application"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	envPrefix = "YAMCL"

	keyLogLevel           = "log.level"
	keyLogFormat          = "log.format"
	keyGatherRetryDelay   = "gather.retry_delay"
	keyGatherMaxRetries   = "gather.max_retries"
	keySuccessTTL         = "notifications.success_ttl"
	keyErrorTTL           = "notifications.error_ttl"
	keyManifestEndpoint   = "endpoints.version_manifest"
	keyIconLookupEndpoint = "endpoints.icon_lookup"
	keyScanConcurrency    = "scan.concurrency"
	keyRequestTimeout     = "http.timeout"
)

// newConfig layers defaults, config.toml and YAMCL_* environment variables.
// A .env file in the working directory is loaded first when present.
func newConfig() *viper.Viper {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault(keyLogLevel, "warn")
	v.SetDefault(keyLogFormat, "console")
	v.SetDefault(keyGatherRetryDelay, application.DefaultGatherRetryDelay)
	v.SetDefault(keyGatherMaxRetries, application.DefaultGatherMaxRetries)
	v.SetDefault(keySuccessTTL, application.DefaultNotificationSuccessTTL)
	v.SetDefault(keyErrorTTL, application.DefaultNotificationErrorTTL)
	v.SetDefault(keyManifestEndpoint, mojang.DefaultManifestURL)
	v.SetDefault(keyIconLookupEndpoint, curserinth.DefaultBaseURL)
	v.SetDefault(keyScanConcurrency, 8)
	v.SetDefault(keyRequestTimeout, 15*time.Second)

	return v
}
