package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/dotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// EnvPrefix is the prefix of sheetview environment variables. A double
// underscore separates nested keys: SHEETVIEW_SHEETS__SPREADSHEET_ID sets
// sheets.spreadsheet_id.
const EnvPrefix = "SHEETVIEW_"

// legacyEnv maps the variable names of the first sheet viewer onto config keys.
var legacyEnv = map[string]string{
	"PRIVATE_KEY_PATH": "sheets.credentials_file",
	"SHEET_ID":         "sheets.spreadsheet_id",
}

// flagKeys maps command line flags onto config keys.
var flagKeys = map[string]string{
	"source":         "source",
	"sheet-id":       "sheets.spreadsheet_id",
	"credentials":    "sheets.credentials_file",
	"range":          "sheets.ranges",
	"file":           "file.path",
	"delta-profile":  "delta.profile_path",
	"delta-table":    "delta.table",
	"on-fetch-error": "fetch.on_error",
	"fetch-timeout":  "fetch.timeout",
	"rows":           "table.visible_rows",
	"log-level":      "log.level",
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"source":             SourceSheets,
		"sheets.ranges":      []string{DefaultRange},
		"fetch.timeout":      DefaultFetchTimeout.String(),
		"fetch.on_error":     OnErrorContinue,
		"table.visible_rows": 1000,
		"table.striped":      true,
		"table.resizable":    true,
		"table.clickable":    true,
		"window.title":       DefaultWindowTitle,
		"window.width":       DefaultWindowWidth,
		"window.height":      DefaultWindowHeight,
		"log.level":          "info",
		"log.development":    false,
	}
}

// RegisterFlags adds the sheetview flags to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "config file (default: ./"+DefaultConfigFile+")")
	fs.String("env-file", "", "dotenv file (default: ./"+DefaultEnvFile+" when present)")
	fs.String("source", "", "data source: sheets, file or delta")
	fs.String("sheet-id", "", "Google spreadsheet ID")
	fs.String("credentials", "", "path to the service account key file")
	fs.StringSlice("range", nil, "A1 range or sheet name to read (repeatable)")
	fs.String("file", "", "local CSV, Parquet or JSON file")
	fs.String("delta-profile", "", "Delta Sharing profile file")
	fs.String("delta-table", "", "Delta Sharing table as share.schema.table")
	fs.String("on-fetch-error", "", "startup fetch failure policy: continue or exit")
	fs.Duration("fetch-timeout", 0, "startup fetch timeout")
	fs.Int("rows", 0, "initial number of visible rows")
	fs.String("log-level", "", "log level: debug, info, warn or error")
}

// envKey turns an environment variable name into a config key, or "" when
// the variable is not a sheetview setting.
func envKey(name string) string {
	if strings.HasPrefix(name, EnvPrefix) {
		key := strings.ToLower(strings.TrimPrefix(name, EnvPrefix))
		return strings.ReplaceAll(key, "__", ".")
	}
	return legacyEnv[name]
}

// Load builds the configuration from defaults, the config file, the dotenv
// file, environment variables and explicitly set flags, in that order of
// increasing precedence. The result is validated.
func Load(flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file
	cfgFile, explicit := flagString(flags, "config"), true
	if cfgFile == "" {
		cfgFile, explicit = DefaultConfigFile, false
	}
	if err := loadOptional(cfgFile, explicit, func(path string) error {
		return k.Load(file.Provider(path), yaml.Parser())
	}); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", cfgFile, err)
	}

	// 3. Dotenv file, using the same names as the process environment
	envFile, explicit := flagString(flags, "env-file"), true
	if envFile == "" {
		envFile, explicit = DefaultEnvFile, false
	}
	if err := loadOptional(envFile, explicit, func(path string) error {
		return loadDotenv(k, path)
	}); err != nil {
		return nil, fmt.Errorf("error reading env file %s: %w", envFile, err)
	}

	// 4. Environment variables
	if err := k.Load(env.Provider("", ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 5. Flags, only those explicitly set
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			key, ok := flagKeys[f.Name]
			if !ok || !f.Changed {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.Sheets.Ranges = cleanRanges(cfg.Sheets.Ranges)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// loadOptional runs load for path. A missing file is an error only when the
// path was given explicitly.
func loadOptional(path string, explicit bool, load func(string) error) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && !explicit {
			return nil
		}
		return err
	}
	return load(path)
}

func loadDotenv(k *koanf.Koanf, path string) error {
	raw := koanf.New(".")
	if err := raw.Load(file.Provider(path), dotenv.Parser()); err != nil {
		return err
	}

	values := make(map[string]interface{})
	for name, v := range raw.All() {
		if key := envKey(name); key != "" {
			values[key] = v
		}
	}
	return k.Load(confmap.Provider(values, "."), nil)
}

func cleanRanges(ranges []string) []string {
	out := make([]string, 0, len(ranges))
	for _, r := range ranges {
		if r = strings.TrimSpace(r); r != "" {
			out = append(out, r)
		}
	}
	if len(out) == 0 {
		out = append(out, DefaultRange)
	}
	return out
}

func flagString(flags *pflag.FlagSet, name string) string {
	if flags == nil || flags.Lookup(name) == nil {
		return ""
	}
	v, _ := flags.GetString(name)
	return v
}
