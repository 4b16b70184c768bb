// Package domain contains the core business entities and rules for job
// search aggregation, enrichment, and persistence. It has no dependencies
// on infrastructure or external services.
package domain
