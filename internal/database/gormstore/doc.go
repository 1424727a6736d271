// Recommendations - Product Recommendation REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recommendations

// Package gormstore implements database.Store with GORM.
//
// The "postgres" driver is intended for shared deployments; "sqlite" serves
// single-node installs and tests (":memory:" gives a private database). The
// schema is created by AutoMigrate from the gorm tags on
// models.Recommendation, including its CHECK constraints.
//
// Duplicate detection runs inside the write transaction. On PostgreSQL the
// transaction first takes an advisory lock on the (sku a, sku b, type)
// triple, then reads any existing row FOR UPDATE.
package gormstore
