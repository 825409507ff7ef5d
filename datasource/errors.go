// Copyright 2025 Magnus Pierre
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package datasource

import (
	"errors"
	"fmt"
)

// Common errors returned by the datasource package.
var (
	// ErrUnsupportedFile is returned for files whose type cannot be detected.
	ErrUnsupportedFile = errors.New("unsupported file type")

	// ErrEmptyData is returned when a file holds no document at all.
	ErrEmptyData = errors.New("data is empty")

	// ErrNoFiles is returned when a Delta Sharing table lists no data files.
	ErrNoFiles = errors.New("no files available for table")
)

// FetchError reports a failed table fetch. Network, authentication and
// decoding failures are not distinguished; callers get a message.
type FetchError struct {
	// Source names the data source that failed.
	Source string
	// Err is the underlying cause.
	Err error
}

func newFetchError(source string, err error) *FetchError {
	return &FetchError{Source: source, Err: err}
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Source, e.Err)
}

// Unwrap returns the underlying cause.
func (e *FetchError) Unwrap() error {
	return e.Err
}

// Message returns the human readable diagnostic without the source prefix.
func (e *FetchError) Message() string {
	if e.Err == nil {
		return "unknown error"
	}
	return e.Err.Error()
}

// AsFetchError wraps err into a FetchError for source unless it already is one.
func AsFetchError(source string, err error) *FetchError {
	if err == nil {
		return nil
	}
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe
	}
	return newFetchError(source, err)
}
