// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
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

package sample

import (
	"errors"
	"strings"
)

// Field error types.
const (
	ErrTypeMissing   = "missing"
	ErrTypeFloat     = "float_type"
	ErrTypeExtra     = "extra_forbidden"
	ErrTypeMalformed = "malformed"
)

// FieldBody is the Field reported when the document as a whole is unusable.
const FieldBody = "body"

const (
	msgMissing   = "field required"
	msgNotNumber = "value is not a valid number"
	msgNotFinite = "value must be a finite number"
	msgExtra     = "extra fields not permitted"
)

// FieldError describes one offending field.
type FieldError struct {
	Field   string `json:"field" yaml:"field"`
	Type    string `json:"type" yaml:"type"`
	Message string `json:"message" yaml:"message"`
}

// ValidationError lists every problem found in a sample document.
type ValidationError struct {
	Errors []FieldError `json:"errors" yaml:"errors"`
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return "invalid water sample: " + strings.Join(parts, "; ")
}

// Fields returns the names of the offending fields in report order.
func (e *ValidationError) Fields() []string {
	out := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		out = append(out, fe.Field)
	}
	return out
}

func (e *ValidationError) add(field, typ, msg string) {
	e.Errors = append(e.Errors, FieldError{Field: field, Type: typ, Message: msg})
}

func (e *ValidationError) orNil() error {
	if len(e.Errors) == 0 {
		return nil
	}
	return e
}

func malformed(msg string) *ValidationError {
	return &ValidationError{Errors: []FieldError{{Field: FieldBody, Type: ErrTypeMalformed, Message: msg}}}
}

// AsValidationError returns the ValidationError in err's chain, if any.
func AsValidationError(err error) (*ValidationError, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}
