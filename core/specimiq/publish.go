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

package specimiq

import (
	"fmt"
	"os"

	"github.com/pixlise/specimiq/core/fileaccess"
	"github.com/pixlise/specimiq/core/logger"
)

// Publish - copies local files (the container, its summary) to bucket under keyPrefix. Returns the
// keys written, in the order of localPaths. Stops at the first failure. Files are streamed, never
// read into memory whole.
func Publish(remoteFS fileaccess.FileAccess, localPaths []string, bucket string, keyPrefix string, log logger.ILogger) ([]string, error) {
	if len(bucket) <= 0 {
		return nil, fmt.Errorf("no bucket to publish to")
	}

	keys := []string{}
	for _, localPath := range localPaths {
		key := fileaccess.MakeObjectKey(keyPrefix, localPath)
		if err := publishFile(remoteFS, localPath, bucket, key, log); err != nil {
			return keys, err
		}
		keys = append(keys, key)
	}
	return keys, nil
}

func publishFile(remoteFS fileaccess.FileAccess, localPath string, bucket string, key string, log logger.ILogger) error {
	f, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("failed to read %v for publishing: %v", localPath, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("failed to read %v for publishing: %v", localPath, err)
	}

	exists, err := remoteFS.ObjectExists(bucket, key)
	if err != nil {
		return fmt.Errorf("failed to check s3://%v/%v: %v", bucket, key, err)
	}
	if exists {
		log.Infof("Replacing existing s3://%v/%v", bucket, key)
	}

	log.Infof("Uploading %v to s3://%v/%v (%v bytes)", localPath, bucket, key, info.Size())
	if err := remoteFS.WriteObjectFrom(bucket, key, f); err != nil {
		return fmt.Errorf("failed to upload %v to s3://%v/%v: %v", localPath, bucket, key, err)
	}
	return nil
}
