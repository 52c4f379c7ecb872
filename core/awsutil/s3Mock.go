// Copyright (c) 2018-2022 California Institute of Technology (“Caltech”). U.S.
// Government sponsorship acknowledged.
// All rights reserved.
// Redistribution and use in source and binary forms, with or without
// modification, are permitted provided that the following conditions are
// met:
//
// * Redistributions of source code must retain the above copyright notice, this
//   list of conditions and the following disclaimer.
// * Redistributions in binary form must reproduce the above copyright notice,
//   this list of conditions and the following disclaimer in the documentation
//   and/or other materials provided with the distribution.
// * Neither the name of Caltech nor its operating division, the Jet Propulsion
//   Laboratory, nor the names of its contributors may be used to endorse or
//   promote products derived from this software without specific prior written
//   permission.
//
// THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
// AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
// IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE
// ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT OWNER OR CONTRIBUTORS BE
// LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR
// CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF
// SUBSTITUTE GOODS OR SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS
// INTERRUPTION) HOWEVER CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN
// CONTRACT, STRICT LIABILITY, OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE)
// ARISING IN ANY WAY OUT OF THE USE OF THIS SOFTWARE, EVEN IF ADVISED OF THE
// POSSIBILITY OF SUCH DAMAGE.

package awsutil

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/client/metadata"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

// MockS3Client - mock S3 client for unit tests. Don't forget to call FinishTest() at the end of your test to check
// that all calls to S3 were made, and there were no unexpected calls!
type MockS3Client struct {
	mutex sync.Mutex

	s3iface.S3API

	// Expected requests
	ExpHeadObjectInput []s3.HeadObjectInput
	ExpPutObjectInput  []s3.PutObjectInput

	// Responses replayed as each request comes in. A nil response is returned as an error
	QueuedHeadObjectOutput []*s3.HeadObjectOutput
	QueuedPutObjectOutput  []*s3.PutObjectOutput

	// Keys whose PutObject body isn't compared, eg binary container files
	SkipPutCheckNames []string
}

const ErrNoMoreInputsExpected = "No more inputs expected for "
const ErrWrongInput = "Incorrect input in "
const ErrNothingToReturn = "Nothing to return from "
const ErrReturningError = "Returning error from "

// NOTE: This function MUST be called at the end of a unit test/example test. Use defer when declaring MockS3Client!
func (m *MockS3Client) FinishTest() error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	err := m.getFinishTestResult()

	// If we found something unexpected, print an error so any example tests get this in their output
	if err != nil {
		fmt.Println(err)
	}

	return err
}

func (m *MockS3Client) getFinishTestResult() error {
	if len(m.ExpHeadObjectInput) > 0 {
		return errors.New("Test expected more HeadObject calls to func")
	}
	if len(m.ExpPutObjectInput) > 0 {
		return errors.New("Test expected more PutObject calls to func")
	}

	if len(m.QueuedHeadObjectOutput) > 0 {
		return errors.New("Remaining output HeadObject for func")
	}
	if len(m.QueuedPutObjectOutput) > 0 {
		return errors.New("Remaining output PutObject for func")
	}

	return nil
}

// popFront - takes the next expected input and queued output, nil output means "return an error"
func popFront[I any, O any](name string, expList *[]I, outputs *[]*O) (I, *O, error) {
	var exp I
	if len(*expList) <= 0 {
		return exp, nil, errors.New(ErrNoMoreInputsExpected + name)
	}

	exp = (*expList)[0]
	(*expList) = (*expList)[1:]

	if len(*outputs) <= 0 {
		return exp, nil, errors.New(ErrNothingToReturn + name)
	}

	result := (*outputs)[0]
	(*outputs) = (*outputs)[1:]

	return exp, result, nil
}

func (m *MockS3Client) HeadObject(input *s3.HeadObjectInput) (*s3.HeadObjectOutput, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	name := "HeadObject"
	exp, result, err := popFront(name, &m.ExpHeadObjectInput, &m.QueuedHeadObjectOutput)
	if err != nil {
		return nil, err
	}

	if exp.String() != input.String() {
		return nil, fmt.Errorf("%v expected: \"%v\" S3 recvd: \"%v\"\n", ErrWrongInput+name, exp.String(), input.String())
	}

	if result == nil {
		return nil, awserr.New("NotFound", ErrReturningError+name, nil)
	}
	return result, nil
}

func (m *MockS3Client) PutObject(input *s3.PutObjectInput) (*s3.PutObjectOutput, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	name := "PutObject"
	exp, result, err := popFront(name, &m.ExpPutObjectInput, &m.QueuedPutObjectOutput)
	if err != nil {
		return nil, err
	}

	if *input.Bucket != *exp.Bucket {
		return nil, fmt.Errorf("%v - bucket\nexpected: \"%v\"\nS3 recvd: \"%v\"\n", ErrWrongInput+name, *exp.Bucket, *input.Bucket)
	}
	if *input.Key != *exp.Key {
		return nil, fmt.Errorf("%v - key\nexpected: \"%v\"\nS3 recvd: \"%v\"\n", ErrWrongInput+name, *exp.Key, *input.Key)
	}

	skip := false
	for _, key := range m.SkipPutCheckNames {
		if key == *input.Key {
			skip = true
			break
		}
	}

	if !skip {
		inpBody := readAll(input.Body)
		expBody := readAll(exp.Body)
		if !bytes.Equal(inpBody, expBody) {
			return nil, fmt.Errorf("%v - body\nexpected: \"%v\"\nS3 recvd: \"%v\"\n", ErrWrongInput+name, string(expBody), string(inpBody))
		}
	}

	if result == nil {
		return nil, errors.New(ErrReturningError + name)
	}
	return result, nil
}

// PutObjectRequest - what s3manager.Uploader calls for single part uploads. Sending the request
// goes through PutObject so the same expectations apply.
func (m *MockS3Client) PutObjectRequest(input *s3.PutObjectInput) (*request.Request, *s3.PutObjectOutput) {
	output := &s3.PutObjectOutput{}
	op := &request.Operation{Name: "PutObject", HTTPMethod: "PUT", HTTPPath: "/{Bucket}/{Key+}"}

	req := request.New(aws.Config{}, metadata.ClientInfo{}, request.Handlers{}, nil, op, input, output)
	req.Handlers.Send.PushBack(func(r *request.Request) {
		result, err := m.PutObject(input)
		if err != nil {
			r.Error = err
			return
		}
		*output = *result
	})
	return req, output
}

func readAll(r io.Reader) []byte {
	if r == nil {
		return nil
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return []byte("ERROR GETTING DATA")
	}
	return data
}
