package config

import (
	"errors"
	"fmt"
	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
	"log"
	"os"
	"path"
)

var ErrInvalidIgnorePattern = errors.New("invalid ignore pattern")

type yamlConfig struct {
	IsDebug                     bool     `yaml:"debug"`
	LogDirectory                string   `yaml:"log_directory"`
	ReportDirectory             string   `yaml:"report_directory"`
	DBPath                      string   `yaml:"db_path"`
	ProjectRoot                 string   `yaml:"project_root"`
	MaxConcurrentFileOperations int64    `yaml:"max_concurrent_file_operations"`
	FileNamesToIgnore           []string `yaml:"file_names_to_ignore"`
	FolderNamesToIgnore         []string `yaml:"folder_names_to_ignore"`
}

type Config struct {
	IsDebug                     bool
	LogDirectory                string
	ReportDirectory             string
	DBPath                      string
	ProjectRoot                 string
	MaxConcurrentFileOperations int64
	FileNamesToIgnore           []string
	FolderNamesToIgnore         []string
}

// Load reads configFile, writing the embedded default there first if it does not exist.
func Load(configFile string, defaultConfigData []byte) (*Config, error) {
	_, err := os.Stat(configFile)

	if err != nil {
		log.Printf("No config file found. Creating \"%s\"...", configFile)
		err := os.WriteFile(configFile, defaultConfigData, 0600)

		if err != nil {
			return nil, err
		}
	}

	return parseConfigFile(configFile)
}

func parseConfigFile(configFilePath string) (*Config, error) {
	yamlFile, err := os.ReadFile(path.Clean(configFilePath))

	if err != nil {
		return nil, err
	}

	return Parse(yamlFile)
}

func Parse(data []byte) (*Config, error) {
	config := &yamlConfig{}

	err := yaml.Unmarshal(data, config)

	if err != nil {
		return nil, err
	}

	// At least one worker is needed to hash anything
	if config.MaxConcurrentFileOperations < 1 {
		config.MaxConcurrentFileOperations = 1
	}

	for _, pattern := range append(append([]string{}, config.FileNamesToIgnore...), config.FolderNamesToIgnore...) {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("%w: \"%s\"", ErrInvalidIgnorePattern, pattern)
		}
	}

	return &Config{
		IsDebug:                     config.IsDebug,
		LogDirectory:                config.LogDirectory,
		ReportDirectory:             config.ReportDirectory,
		DBPath:                      config.DBPath,
		ProjectRoot:                 config.ProjectRoot,
		MaxConcurrentFileOperations: config.MaxConcurrentFileOperations,
		FileNamesToIgnore:           config.FileNamesToIgnore,
		FolderNamesToIgnore:         config.FolderNamesToIgnore,
	}, nil
}
