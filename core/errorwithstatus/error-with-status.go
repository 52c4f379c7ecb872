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

package errorwithstatus

import (
	"errors"
	"fmt"
)

////////////////////////////////////////////////////////////////////////////////////////////////////////////
// Neater error handling

// Status is the class of failure an acquisition read can end in. Callers switch on it rather than
// matching message strings.
type Status int

const (
	// ResourceNotFound - a product path was resolved but nothing exists there
	ResourceNotFound Status = iota + 1

	// InvalidArgument - an unrecognised mode/sensor string or mismatched inputs
	InvalidArgument

	// InteractionUnavailable - the region picker failed or cannot run here
	InteractionUnavailable

	// AcquisitionRootNotFound - the top-level acquisition path does not exist
	AcquisitionRootNotFound
)

var statusNames = map[Status]string{
	ResourceNotFound:        "ResourceNotFound",
	InvalidArgument:         "InvalidArgument",
	InteractionUnavailable:  "InteractionUnavailable",
	AcquisitionRootNotFound: "AcquisitionRootNotFound",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// ExitCode - what a command line tool should exit with for this status
func (s Status) ExitCode() int {
	switch s {
	case ResourceNotFound, AcquisitionRootNotFound:
		return 2
	case InvalidArgument:
		return 3
	case InteractionUnavailable:
		return 4
	}
	return 1
}

// Error represents an error that knows its Status
type Error interface {
	error
	Status() Status
}

// StatusError carries a status, the path involved (if any) and the underlying error.
type StatusError struct {
	Code Status
	Path string
	Err  error
}

func (se StatusError) Error() string {
	return se.Err.Error()
}

func (se StatusError) Status() Status {
	return se.Code
}

func (se StatusError) Unwrap() error {
	return se.Err
}

// Is lets errors.Is(err, StatusError{Code: X}) match on status alone. An AcquisitionRootNotFound
// is also a ResourceNotFound, callers checking for missing files shouldn't need to know the difference.
func (se StatusError) Is(target error) bool {
	t, ok := target.(StatusError)
	if !ok || t.Err != nil || len(t.Path) > 0 {
		return false
	}
	if t.Code == se.Code {
		return true
	}
	return t.Code == ResourceNotFound && se.Code == AcquisitionRootNotFound
}

// HasStatus - true if anything in err's chain carries the given status
func HasStatus(err error, code Status) bool {
	return errors.Is(err, StatusError{Code: code})
}

// GetStatus - returns the status of the first StatusError in err's chain
func GetStatus(err error) (Status, bool) {
	var se Error
	if errors.As(err, &se) {
		return se.Status(), true
	}
	return 0, false
}

// Some common errors
func MakeNotFoundError(path string, hint string) StatusError {
	msg := fmt.Sprintf("%v not found", path)
	if len(hint) > 0 {
		msg += ". " + hint
	}
	return StatusError{
		Code: ResourceNotFound,
		Path: path,
		Err:  errors.New(msg),
	}
}

func MakeRootNotFoundError(path string) StatusError {
	return StatusError{
		Code: AcquisitionRootNotFound,
		Path: path,
		Err:  fmt.Errorf("path to acquisition does not exist: %v", path),
	}
}

func MakeBadRequestError(err error) StatusError {
	return StatusError{
		Code: InvalidArgument,
		Err:  err,
	}
}

func MakeInteractionError(err error) StatusError {
	return StatusError{
		Code: InteractionUnavailable,
		Err:  err,
	}
}

// Mainly so we don't get a bunch of errors for not using field names in StatusError{}
func MakeStatusError(code Status, err error) StatusError {
	return StatusError{
		Code: code,
		Err:  err,
	}
}
