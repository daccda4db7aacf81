// Package assets holds the static fixture content: the manifest bundle, log
// message pools and the planned Terraform resources.
package assets

import (
	_ "embed"
	"strings"

	"github.com/miradorstack/mirador-fixtures/internal/models"
)

// Manifests is the Kubernetes manifest bundle written verbatim. It carries
// planted issues: a hardcoded DB_PASSWORD, containers without limits or
// probes, a privileged container and a floating :latest tag.
//
//go:embed k8s-manifests.yaml
var Manifests string

// ManifestSeparator starts every document in Manifests.
const ManifestSeparator = "---\n"

// ManifestDocumentCount returns the number of YAML documents in Manifests.
func ManifestDocumentCount() int {
	return strings.Count("\n"+Manifests, "\n"+ManifestSeparator)
}

// Services are the emitting services shared by the log and metrics producers.
var Services = []string{
	"api-gateway",
	"user-service",
	"order-service",
	"payment-service",
	"inventory-service",
}

// Messages maps each level to its message pool.
var Messages = map[models.Level][]string{
	models.LevelInfo: {
		"Request processed successfully",
		"Connection established",
		"Cache hit for key",
		"Health check passed",
		"Task completed",
		"User authenticated successfully",
		"Order created",
		"Payment processed",
		"Inventory updated",
	},
	models.LevelWarn: {
		"High memory usage detected: 85%",
		"Slow query detected (>1s)",
		"Rate limit approaching: 80%",
		"Connection pool running low: 3 available",
		"Retry attempt 2/3",
		"Deprecated API version used",
		"Cache miss ratio high: 40%",
	},
	models.LevelError: {
		"Database connection failed: timeout after 30s",
		"Timeout waiting for response from downstream service",
		"NullPointerException in request handler",
		"Authentication failed: invalid token",
		"Service unavailable: circuit breaker open",
		"Out of memory error",
		"Connection refused to redis:6379",
		"SSL handshake failed",
	},
	models.LevelDebug: {
		"Entering method processRequest",
		"Variable state: active=true, retries=0",
		"Query execution time: 45ms",
		"Cache miss for key: user_123",
		"HTTP request: GET /api/v1/users",
		"Response payload size: 2.3KB",
	},
}

// Chained exception lines appended after some stack traces.
const (
	CausedByLine      = "Caused by: java.sql.SQLException: Connection timed out"
	CausedByFrameLine = "    at com.mysql.jdbc.ConnectionImpl.connect(ConnectionImpl.java:456)"
)
