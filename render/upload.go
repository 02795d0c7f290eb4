// Copyright 2024
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package render

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kothar/go-backblaze"
	"github.com/rs/zerolog/log"
)

// B2Config holds the Backblaze credentials and bucket exports are uploaded to
type B2Config struct {
	ApplicationID  string
	ApplicationKey string
	Bucket         string
}

// Enabled reports if enough configuration is present to upload
func (config B2Config) Enabled() bool {
	return config.ApplicationID != "" && config.ApplicationKey != "" && config.Bucket != ""
}

// Upload copies each exported file into dirname of the configured bucket
func Upload(config B2Config, dirname string, files ...string) error {
	b2, err := backblaze.NewB2(backblaze.Credentials{
		KeyID:          config.ApplicationID,
		ApplicationKey: config.ApplicationKey,
	})
	if err != nil {
		log.Error().Err(err).Str("BucketName", config.Bucket).Msg("authorize backblaze failed")
		return err
	}

	bucket, err := b2.Bucket(config.Bucket)
	if err != nil {
		log.Error().Err(err).Str("BucketName", config.Bucket).Msg("lookup bucket failed")
		return err
	}
	if bucket == nil {
		log.Error().Str("BucketName", config.Bucket).Msg("bucket does not exist")
		return errors.New("bucket not found")
	}

	for _, fn := range files {
		if err := uploadFile(bucket, config.Bucket, dirname, fn); err != nil {
			return err
		}
	}

	return nil
}

func uploadFile(bucket *backblaze.Bucket, bucketName, dirname, fn string) error {
	reader, err := os.Open(fn)
	if err != nil {
		return err
	}
	defer reader.Close()

	outName := fmt.Sprintf("%s/%s", dirname, filepath.Base(fn))
	metadata := make(map[string]string)

	file, err := bucket.UploadFile(outName, metadata, reader)
	if err != nil {
		log.Error().Err(err).Str("FileName", outName).Str("BucketName", bucketName).Msg("save file to backblaze failed")
		return err
	}

	log.Info().Str("FileName", file.Name).Int64("Size", file.ContentLength).Str("ID", file.ID).Msg("uploaded file to backblaze")
	return nil
}
