// Package services implements the core application logic: provider
// registry, search aggregation, the upsert repository, settings mapping,
// and run orchestration. Services depend only on domain types and ports.
package services
