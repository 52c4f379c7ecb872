// Licensed to NASA JPL under one or more contributor
// license agreements. See the NOTICE file distributed with
// this work for additional information regarding copyright
// ownership. NASA JPL licenses this file to you under
// the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied.  See the License for the
// specific language governing permissions and limitations
// under the License.

// Converter configuration as read from JSON/TOML files, .env files and environment variables
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/pixlise/specimiq/core/logger"
	"github.com/pixlise/specimiq/core/utils"
)

////////////////////////////////////////////////////////////////////////////////////////////////////////////
// Configuration for the converter

// ConverterConfig combines config file values, env vars and command line flags
type ConverterConfig struct {
	LogLevel  string // debug, info, error
	LogFormat string // "text" or "json"

	WhiteRefMode string // "captured" or "pick"
	WhiteRefROI  string // x,y,width,height used in pick mode instead of asking
	PreviewDir   string // Where pick mode writes its preview images

	// Publishing, only done if UploadBucket is set
	UploadBucket string
	UploadPrefix string
	AWSRegion    string

	SentryEndpoint  string
	EnvironmentName string
}

// EnvPrefix - environment variables named this plus a field name override that field
const EnvPrefix = "SPECIMIQ_CONFIG_"

const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Default - config used when nothing else is supplied
func Default() ConverterConfig {
	return ConverterConfig{
		LogLevel:     "info",
		LogFormat:    LogFormatText,
		WhiteRefMode: "captured",
	}
}

// NewConfigFromFile - reads a .toml or .json config file over the defaults, then applies env var overrides
func NewConfigFromFile(configFilePath string) (ConverterConfig, error) {
	cfg := Default()

	data, err := os.ReadFile(configFilePath)
	if err != nil {
		return cfg, fmt.Errorf("could not read config file at %s", configFilePath)
	}

	if strings.EqualFold(filepath.Ext(configFilePath), ".toml") {
		return NewConfigFromTOML(data)
	}
	return NewConfigFromJSON(data)
}

// NewConfigFromJSON - defaults, overwritten by the JSON, then env vars
func NewConfigFromJSON(configJSON []byte) (ConverterConfig, error) {
	cfg := Default()
	if err := json.Unmarshal(configJSON, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config JSON: %v", err)
	}
	ApplyEnvOverrides(&cfg)
	return cfg, nil
}

// NewConfigFromTOML - defaults, overwritten by the TOML, then env vars
func NewConfigFromTOML(configTOML []byte) (ConverterConfig, error) {
	cfg := Default()
	if _, err := toml.Decode(string(configTOML), &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config TOML: %v", err)
	}
	ApplyEnvOverrides(&cfg)
	return cfg, nil
}

// LoadDotEnv - loads env vars from the given .env files (or ./.env if none given) without replacing
// any already set. Missing files are skipped.
func LoadDotEnv(paths ...string) error {
	if len(paths) <= 0 {
		paths = []string{".env"}
	}

	existing := []string{}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			existing = append(existing, path)
		}
	}
	if len(existing) <= 0 {
		return nil
	}
	return godotenv.Load(existing...)
}

// ApplyEnvOverrides - sets any field with a matching SPECIMIQ_CONFIG_<FieldName> env var
func ApplyEnvOverrides(cfg *ConverterConfig) {
	reflection := reflect.ValueOf(cfg).Elem()
	for i := 0; i < reflection.NumField(); i++ {
		fieldName := reflection.Type().Field(i).Name
		field := reflection.Field(i)
		val, present := os.LookupEnv(EnvPrefix + fieldName)
		if !present {
			continue
		}

		if field.Kind() == reflect.String {
			field.SetString(val)
		}
	}
}

// Validate - checks the values that have a fixed set of options
func (cfg ConverterConfig) Validate() error {
	if _, err := logger.GetLogLevel(cfg.LogLevel); err != nil {
		return err
	}

	if !utils.ItemInSlice(strings.ToLower(cfg.LogFormat), []string{"", LogFormatText, LogFormatJSON}) {
		return fmt.Errorf("unknown log format: %v", cfg.LogFormat)
	}
	return nil
}
