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

// Package client is a typed Go client for the potability API.
//
//	c, err := client.New("http://localhost:8000")
//	if err != nil {
//	    return err
//	}
//	result, err := c.Predict(ctx, sample.WaterSample{PH: 7.0, ...})
//	if apiErr, ok := client.AsAPIError(err); ok && apiErr.IsValidation() {
//	    for _, fe := range apiErr.FieldErrors {
//	        fmt.Println(fe.Field, fe.Message)
//	    }
//	}
//
// Every request carries a fresh X-Request-Id so client and server logs
// can be correlated.
package client
