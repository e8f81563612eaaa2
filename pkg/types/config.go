// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "pubinfo/0.1").
	UserAgent string
}
