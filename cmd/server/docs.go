// Recommendations - Product Recommendation REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recommendations

// Package main provides the Recommendations HTTP server
//
// @title Recommendations API
// @version 1.0
// @description CRUD REST API for product recommendations linking a source product to a target product.
// @description
// @description ## Error Responses
// @description
// @description All error responses follow this format:
// @description ```json
// @description {
// @description   "status": 404,
// @description   "error": "Not Found",
// @description   "message": "Recommendation with id '7' was not found."
// @description }
// @description ```
// @description
// @description ## Rate Limiting
// @description
// @description When enabled, /recommendations is limited per client IP (default 100 requests per minute).
//
// @contact.name GitHub Repository
// @contact.url https://github.com/tomtom215/recommendations/issues
//
// @license.name AGPL-3.0-or-later
// @license.url https://www.gnu.org/licenses/agpl-3.0.html
//
// @host localhost:5000
// @BasePath /
// @schemes http https
//
// @tag.name Core
// @tag.description Service information and health probes
//
// @tag.name Recommendations
// @tag.description Product recommendation records and their like counters
package main
