// Package errors provides structured error types for better observability
// and programmatic error handling across the application.
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeUnavailable,
//	    "predictor is saturated",
//	    ctx.Err(),
//	    map[string]interface{}{
//	        "limit": 8,
//	    },
//	)
package errors
