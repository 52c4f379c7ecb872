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

package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/pixlise/specimiq/core/awsutil"
	"github.com/pixlise/specimiq/core/config"
	"github.com/pixlise/specimiq/core/errorwithstatus"
	"github.com/pixlise/specimiq/core/fileaccess"
	"github.com/pixlise/specimiq/core/logger"
	"github.com/pixlise/specimiq/core/specimiq"
	"github.com/pixlise/specimiq/core/timestamper"
	"github.com/pkg/errors"
)

const converterVersion = "1.0.0"

type options struct {
	source       string
	out          string
	whiteRef     string
	whiteROI     string
	configPath   string
	uploadBucket string
	uploadPrefix string
	logLevel     string
	logFormat    string
}

func parseArgs(args []string) (options, error) {
	opts := options{}

	fs := flag.NewFlagSet("specim-converter", flag.ContinueOnError)
	fs.StringVar(&opts.source, "source", "", "Path to the Specim IQ acquisition root folder")
	fs.StringVar(&opts.out, "out", "", "Container file to write, defaults to <acquisition name>.h5 in the current directory")
	fs.StringVar(&opts.whiteRef, "whiteref", "", "White reference for reflectance: captured, pick")
	fs.StringVar(&opts.whiteROI, "white-roi", "", "White region as x,y,width,height, used by pick instead of asking")
	fs.StringVar(&opts.configPath, "customConfigPath", "", "Path to a .json or .toml config file")
	fs.StringVar(&opts.uploadBucket, "upload-bucket", "", "S3 bucket (or s3://bucket/prefix) to copy the container and summary to")
	fs.StringVar(&opts.uploadPrefix, "upload-prefix", "", "Key prefix within the upload bucket")
	fs.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, error")
	fs.StringVar(&opts.logFormat, "log-format", "", "Log format: text, json")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	if len(opts.source) <= 0 {
		return opts, errors.New("source not set")
	}
	if len(opts.out) <= 0 {
		opts.out = specimiq.AcquisitionName(opts.source) + ".h5"
	}
	return opts, nil
}

// buildConfig - defaults, then config file (if any), .env and env vars, then command line flags
func buildConfig(opts options) (config.ConverterConfig, error) {
	if err := config.LoadDotEnv(); err != nil {
		return config.ConverterConfig{}, errors.Wrap(err, "failed to load .env")
	}

	var cfg config.ConverterConfig
	var err error
	if len(opts.configPath) > 0 {
		cfg, err = config.NewConfigFromFile(opts.configPath)
		if err != nil {
			return cfg, err
		}
	} else {
		cfg = config.Default()
		config.ApplyEnvOverrides(&cfg)
	}

	overrides := map[*string]string{
		&cfg.WhiteRefMode: opts.whiteRef,
		&cfg.WhiteRefROI:  opts.whiteROI,
		&cfg.UploadBucket: opts.uploadBucket,
		&cfg.UploadPrefix: opts.uploadPrefix,
		&cfg.LogLevel:     opts.logLevel,
		&cfg.LogFormat:    opts.logFormat,
	}
	for field, value := range overrides {
		if len(value) > 0 {
			*field = value
		}
	}

	// Bucket can also be given as s3://bucket/prefix, any separate prefix goes under that
	if strings.HasPrefix(cfg.UploadBucket, "s3://") {
		bucket, prefix, err := fileaccess.ParseS3Url(cfg.UploadBucket)
		if err != nil {
			return cfg, err
		}
		cfg.UploadBucket = bucket
		cfg.UploadPrefix = path.Join(prefix, cfg.UploadPrefix)
	}

	return cfg, cfg.Validate()
}

func makeLogger(cfg config.ConverterConfig, w io.Writer) (logger.ILogger, error) {
	level, err := logger.GetLogLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	if strings.EqualFold(cfg.LogFormat, config.LogFormatJSON) {
		fields := map[string]string{"app": "specim-converter"}
		if len(cfg.EnvironmentName) > 0 {
			fields["env"] = cfg.EnvironmentName
		}
		return logger.NewZeroLogger(w, level, fields), nil
	}
	return logger.NewStdErrLogger(level), nil
}

// makePicker - a fixed region if one is configured, otherwise ask on the terminal
func makePicker(cfg config.ConverterConfig) (specimiq.RegionPicker, error) {
	if len(cfg.WhiteRefROI) > 0 {
		region, err := specimiq.ParseRegion(cfg.WhiteRefROI)
		if err != nil {
			return nil, errorwithstatus.MakeBadRequestError(errors.Wrap(err, "bad white-roi"))
		}
		return specimiq.FixedRegionPicker{Region: region}, nil
	}
	return specimiq.NewTerminalRegionPicker(cfg.PreviewDir), nil
}

// convert - reads the acquisition, writes the container and summary, and in pick mode the recalibrated
// reflectance as ENVI. Returns the local files written.
func convert(opts options, cfg config.ConverterConfig, reader *specimiq.Reader, localFS fileaccess.FileAccess, ts timestamper.ITimeStamper, log logger.ILogger) ([]string, error) {
	mode, err := specimiq.ParseWhiteRefMode(cfg.WhiteRefMode)
	if err != nil {
		return nil, err
	}

	if len(cfg.WhiteRefROI) > 0 && mode != specimiq.WhiteRefPick {
		log.Infof("White reference region %v is only used with whiteref \"pick\", ignoring it", cfg.WhiteRefROI)
	}

	if exists, err := localFS.ObjectExists("", opts.out); err == nil && exists {
		log.Infof("Replacing existing %v", opts.out)
	}

	ds, err := reader.ConvertWithOptions(opts.source, opts.out, specimiq.ReadOptions{WhiteRef: mode})
	if err != nil {
		return nil, err
	}

	summaryPath, err := specimiq.Summarise(localFS, ds, opts.out, mode, ts)
	if err != nil {
		return nil, errors.Wrap(err, "failed to write summary")
	}
	log.Infof("Wrote %v and %v", opts.out, summaryPath)

	files := []string{opts.out, summaryPath}

	if mode == specimiq.WhiteRefPick {
		exported, err := reader.WriteReflectance(ds, specimiq.ReflectanceExportPath(opts.out))
		if err != nil {
			return nil, err
		}
		files = append(files, exported...)
	}

	return files, nil
}

func publish(cfg config.ConverterConfig, files []string, log logger.ILogger) error {
	sess, err := awsutil.GetSession(cfg.AWSRegion)
	if err != nil {
		return errors.Wrap(err, "AWS GetSession failed")
	}

	svc, err := awsutil.GetS3(sess)
	if err != nil {
		return errors.Wrap(err, "AWS GetS3 failed")
	}

	_, err = specimiq.Publish(fileaccess.MakeS3Access(svc), files, cfg.UploadBucket, cfg.UploadPrefix, log)
	return err
}

func exitCode(err error) int {
	if status, ok := errorwithstatus.GetStatus(err); ok {
		return status.ExitCode()
	}
	return 1
}

func main() {
	opts, err := parseArgs(os.Args[1:])
	if err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		log.Fatalf("%v", err)
	}

	cfg, err := buildConfig(opts)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ilog, err := makeLogger(cfg, os.Stderr)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if len(cfg.SentryEndpoint) > 0 {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.SentryEndpoint,
			Environment: cfg.EnvironmentName,
			Release:     converterVersion,
		}); err != nil {
			ilog.Errorf("Sentry initialization failed: %v", err)
		}
	}

	picker, err := makePicker(cfg)
	if err != nil {
		ilog.Errorf("%v", err)
		os.Exit(exitCode(err))
	}

	if len(cfg.PreviewDir) > 0 {
		if err := os.MkdirAll(cfg.PreviewDir, 0755); err != nil {
			ilog.Errorf("Failed to create preview dir: %v", err)
			os.Exit(1)
		}
	}
	if dir := filepath.Dir(opts.out); len(dir) > 0 {
		if err := os.MkdirAll(dir, 0755); err != nil {
			ilog.Errorf("Failed to create output dir: %v", err)
			os.Exit(1)
		}
	}

	localFS := &fileaccess.FSAccess{}
	reader := specimiq.NewReader(nil, picker, nil, ilog)

	files, err := convert(opts, cfg, reader, localFS, &timestamper.UnixTimeNowStamper{}, ilog)
	if err == nil && len(cfg.UploadBucket) > 0 {
		err = publish(cfg, files, ilog)
	}

	if err != nil {
		ilog.Errorf("Conversion of %v failed: %v", opts.source, err)
		if len(cfg.SentryEndpoint) > 0 {
			sentry.CaptureException(err)
			sentry.Flush(2 * time.Second)
		}
		os.Exit(exitCode(err))
	}

	fmt.Println(opts.out)
}
