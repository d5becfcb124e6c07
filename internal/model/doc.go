// Package model defines the core domain types of the redaction workflow:
// the PII category registry, selection sets, use cases, pending files and
// processed artifacts.
package model
