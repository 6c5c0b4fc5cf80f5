// Package config thread-safe settings built on viper
package config

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Laisky/errors/v2"
	zap "github.com/Laisky/zap"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/Laisky/go-sss/log"
)

const settingsIncludeKey = "include"

// Keys used by gsss
const (
	KeyDebug       = "debug"
	KeyLogLevel    = "log.level"
	KeyLogEncoding = "log.encoding"
	KeyLogOutput   = "log.output"
	KeyCases       = "cases"
	KeyParallel    = "parallel"
)

// Config settings of project
//
// enhance viper.Viper with threadsafe.
type Config struct {
	sync.RWMutex

	v *viper.Viper
}

// Shared is the settings for this project
//
// Basic Usage
//
//	import "github.com/Laisky/go-sss/config"
//
//	config.Shared.GetString(config.KeyLogLevel)
var Shared = New()

// New new settings with defaults
func New() *Config {
	c := &Config{
		v: viper.New(),
	}
	c.v.SetDefault(KeyLogLevel, string(log.LevelInfo))
	c.v.SetDefault(KeyLogEncoding, string(log.EncodingConsole))
	c.v.SetDefault(KeyParallel, 1)

	return c
}

// Settings typed view of all settings
type Settings struct {
	Debug    bool     `mapstructure:"debug"`
	Cases    []string `mapstructure:"cases"`
	Parallel int      `mapstructure:"parallel"`
	Log      struct {
		Level    string   `mapstructure:"level"`
		Encoding string   `mapstructure:"encoding"`
		Output   []string `mapstructure:"output"`
	} `mapstructure:"log"`
}

// Settings unmarshal all settings
func (s *Config) Settings() (*Settings, error) {
	st := new(Settings)
	if err := s.Unmarshal(st); err != nil {
		return nil, errors.Wrap(err, "unmarshal settings")
	}

	if st.Parallel < 1 {
		return nil, errors.Errorf("parallel should be at least 1, got %d", st.Parallel)
	}

	return st, nil
}

// BindPFlag bind one pflag to key
func (s *Config) BindPFlag(key string, flag *pflag.Flag) error {
	s.Lock()
	defer s.Unlock()

	return s.v.BindPFlag(key, flag)
}

// GetString get setting by key
func (s *Config) GetString(key string) string {
	s.RLock()
	defer s.RUnlock()

	return s.v.GetString(key)
}

// GetStringSlice get setting by key
func (s *Config) GetStringSlice(key string) []string {
	s.RLock()
	defer s.RUnlock()

	return s.v.GetStringSlice(key)
}

// GetBool get setting by key
func (s *Config) GetBool(key string) bool {
	s.RLock()
	defer s.RUnlock()

	return s.v.GetBool(key)
}

// Unmarshal unmarshals the config into a Struct. Make sure that the tags
// on the fields of the structure are properly set.
func (s *Config) Unmarshal(obj interface{}) error {
	s.RLock()
	defer s.RUnlock()

	return s.v.Unmarshal(obj)
}

// readConfig replace settings by content from in
func (s *Config) readConfig(in io.Reader) error {
	s.Lock()
	defer s.Unlock()

	return s.v.ReadConfig(in)
}

// mergeConfig merge content from in into settings
func (s *Config) mergeConfig(in io.Reader) error {
	s.Lock()
	defer s.Unlock()

	return s.v.MergeConfig(in)
}

// LoadFromFile load settings from file
//
// file could point to another file by `include`,
// files are merged from the last included to entryFile,
// so entryFile has the highest priority.
func (s *Config) LoadFromFile(entryFile string) (err error) {
	logger := log.Shared.With(zap.String("file", entryFile))

	curFpath := entryFile
	cfgDir := filepath.Dir(entryFile)
	cfgFiles := []string{entryFile}

RECUR_INCLUDE_LOOP:
	for {
		if err = s.readFile(curFpath, s.readConfig); err != nil {
			return err
		}

		if curFpath = s.GetString(settingsIncludeKey); curFpath == "" {
			break
		}

		curFpath = filepath.Join(cfgDir, curFpath)
		for _, f := range cfgFiles {
			if f == curFpath {
				break RECUR_INCLUDE_LOOP
			}
		}

		cfgFiles = append(cfgFiles, curFpath)
	}

	for i := len(cfgFiles) - 1; i >= 0; i-- {
		if err = s.readFile(cfgFiles[i], s.mergeConfig); err != nil {
			return err
		}
	}

	logger.Debug("load configs", zap.Strings("config_files", cfgFiles))
	return nil
}

func (s *Config) readFile(fpath string, read func(io.Reader) error) error {
	fp, err := os.Open(fpath)
	if err != nil {
		return errors.Wrapf(err, "open config file %q", fpath)
	}
	defer fp.Close() // nolint: errcheck

	s.Lock()
	s.v.SetConfigType(strings.TrimLeft(filepath.Ext(fpath), "."))
	s.Unlock()

	if err = read(fp); err != nil {
		return errors.Wrapf(err, "load config from file %q", fpath)
	}

	return nil
}
