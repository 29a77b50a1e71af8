// Package models contains GORM persistence models. Domain types carry no ORM
// tags; each model here maps one table and converts to and from its domain
// type with ToDomain / ...FromDomain.
//
//   - base.go: shared id, timestamp and version columns
//   - agency.go: agencies and sub_accounts
//   - sidebar.go: sidebar_options
//   - access.go: permission_grants and audit_logs
package models
