package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/ksindesign/little-lemon-rn/internal/menusource"
	"github.com/ksindesign/little-lemon-rn/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	cfgKeyBackend      = "backend"
	cfgKeyDataDir      = "data_dir"
	cfgKeyMenuSource   = "menu_source"
	cfgKeyImageBaseURL = "image_base_url"
	cfgKeyLogFormat    = "log.format"
	cfgKeyLogLevel     = "log.level"
	cfgKeyLogFile      = "log.file"

	defaultLogFormat = "text"
	defaultLogLevel  = "warn"
)

// configFile holds the structure written to config.yaml on first run.
type configFile struct {
	Backend      string        `yaml:"backend"`
	DataDir      string        `yaml:"data_dir,omitempty"`
	MenuSource   string        `yaml:"menu_source"`
	ImageBaseURL string        `yaml:"image_base_url"`
	Log          configFileLog `yaml:"log"`
}

type configFileLog struct {
	Format string `yaml:"format"`
	Level  string `yaml:"level"`
	File   string `yaml:"file,omitempty"`
}

func defaultConfigFile() configFile {
	return configFile{
		Backend:      types.BackendSQLite,
		MenuSource:   menusource.DefaultURL,
		ImageBaseURL: menusource.DefaultImageBaseURL,
		Log:          configFileLog{Format: defaultLogFormat, Level: defaultLogLevel},
	}
}

// loadConfig reads config.yaml from configDir, writing a default file on
// first run. LITTLELEMON_LOG_LEVEL and LITTLELEMON_LOG_FORMAT override the
// file's log settings.
func loadConfig(fs afero.Fs, configDir string) (*viper.Viper, error) {
	if err := fs.MkdirAll(configDir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := ensureDefaultConfigFile(fs, configDir); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	def := defaultConfigFile()
	v := viper.New()
	v.SetFs(fs)
	v.SetDefault(cfgKeyBackend, def.Backend)
	v.SetDefault(cfgKeyMenuSource, def.MenuSource)
	v.SetDefault(cfgKeyImageBaseURL, def.ImageBaseURL)
	v.SetDefault(cfgKeyLogFormat, def.Log.Format)
	v.SetDefault(cfgKeyLogLevel, def.Log.Level)
	_ = v.BindEnv(cfgKeyLogLevel, "LITTLELEMON_LOG_LEVEL")
	_ = v.BindEnv(cfgKeyLogFormat, "LITTLELEMON_LOG_FORMAT")
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// ensureDefaultConfigFile creates config.yaml with default values if the file
// does not exist. An existing file is left alone.
func ensureDefaultConfigFile(fs afero.Fs, configDir string) error {
	path := filepath.Join(configDir, configFileExt)
	exists, err := afero.Exists(fs, path)
	if err != nil {
		return fmt.Errorf("stat config file: %w", err)
	}
	if exists {
		return nil
	}

	def := defaultConfigFile()
	data, err := yaml.Marshal(&def)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	header := []byte("# littlelemon configuration\n")
	return afero.WriteFile(fs, path, append(header, data...), 0o644)
}
