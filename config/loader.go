package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load populates cfg from (in order of precedence, lowest first):
// a config.yml file, the process environment, and a .env file.
// Environment variables in UPPER_SNAKE form are bound to nested config
// keys, so JWT_SECRET reaches jwt.secret and AUTH_AD_TENANT_ID reaches
// auth.ad.tenant_id without explicit per-key bindings.
func Load(serviceName string, cfg interface{}, opts ...Option) error {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	v := viper.New()

	configFile := o.configFile
	if configFile == "" {
		configFile = findFile([]string{
			fmt.Sprintf("./cmd/%s/config.yml", serviceName),
			"./config/config.yml",
			"./config.yml",
		})
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			fmt.Printf("[config] warning: failed to load config file %s: %v\n", configFile, err)
		}
	}

	v.AutomaticEnv()
	bindEnvVars(v)

	envFile := o.envFile
	if envFile == "" {
		envFile = findFile([]string{
			fmt.Sprintf("./cmd/%s/.env", serviceName),
			"./.env",
		})
	}
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			fmt.Printf("[config] warning: failed to load .env file %s: %v\n", envFile, err)
		} else {
			// Re-bind to pick up variables the .env file introduced.
			bindEnvVars(v)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unmarshal config for service %s: %w", serviceName, err)
	}
	return nil
}

// options holds optional explicit file paths for Load.
type options struct {
	configFile string
	envFile    string
}

// Option is a functional option for Load.
type Option func(*options)

// WithConfigFile sets an explicit config file path.
func WithConfigFile(path string) Option {
	return func(o *options) { o.configFile = path }
}

// WithEnvFile sets an explicit .env file path.
func WithEnvFile(path string) Option {
	return func(o *options) { o.envFile = path }
}

func findFile(paths []string) string {
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// bindEnvVars sets every environment variable on viper under all plausible
// nested-key spellings of its name.
func bindEnvVars(v *viper.Viper) {
	for _, env := range os.Environ() {
		pair := strings.SplitN(env, "=", 2)
		if len(pair) != 2 {
			continue
		}
		for _, variant := range envKeyVariants(pair[0]) {
			v.Set(variant, pair[1])
		}
	}
}

// envKeyVariants expands an UPPER_SNAKE environment key into the nested key
// spellings viper may be asked for. Examples:
//
//	JWT_SECRET         -> [jwt_secret, jwt.secret]
//	AUTH_AD_TENANT_ID  -> [auth_ad_tenant_id, auth.ad.tenant.id,
//	                       auth.ad_tenant_id, auth.ad.tenant_id, ...]
func envKeyVariants(envKey string) []string {
	lowerKey := strings.ToLower(envKey)
	parts := strings.Split(lowerKey, "_")
	if len(parts) <= 1 {
		return []string{lowerKey}
	}

	variants := []string{
		lowerKey,
		strings.ReplaceAll(lowerKey, "_", "."),
	}
	for i := 1; i < len(parts); i++ {
		variants = append(variants, strings.Join(parts[:i], ".")+"."+strings.Join(parts[i:], "_"))
	}

	seen := make(map[string]bool, len(variants))
	out := make([]string, 0, len(variants))
	for _, variant := range variants {
		if !seen[variant] {
			seen[variant] = true
			out = append(out, variant)
		}
	}
	return out
}
