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
package data

import "errors"

var (
	// ErrNotFound is returned when a ticker, or the base fiscal year of a
	// company, cannot be found
	ErrNotFound = errors.New("not found")

	// ErrInvalidAssumption is returned when an assumption is outside of the
	// range the forecast engine can sensibly project
	ErrInvalidAssumption = errors.New("invalid assumption")
)
