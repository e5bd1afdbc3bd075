// Filmgraph - Film Catalog and Social Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmgraph

// General API information for swag.
//
// @title Filmgraph API
// @version 1.0
// @description Film catalog with likes, friendships, reviews, an activity feed and recommendations.
// @description
// @description ## Error Responses
// @description
// @description All error responses follow this format:
// @description ```json
// @description {
// @description   "status": "error",
// @description   "data": null,
// @description   "error": {
// @description     "code": "NOT_FOUND",
// @description     "message": "film 42 not found",
// @description     "details": {}
// @description   },
// @description   "metadata": {
// @description     "timestamp": "2026-10-17T12:34:56Z"
// @description   }
// @description }
// @description ```
//
// @contact.name GitHub Repository
// @contact.url https://github.com/tomtom215/filmgraph/issues
//
// @license.name AGPL-3.0-or-later
// @license.url https://www.gnu.org/licenses/agpl-3.0.html
//
// @host localhost:8080
// @BasePath /
// @schemes http https
//
// @tag.name Films
// @tag.description Film catalog, likes, popularity, search
//
// @tag.name Users
// @tag.description Users, friendships, feed and recommendations
//
// @tag.name Reviews
// @tag.description Reviews and review votes
//
// @tag.name Catalog
// @tag.description Directors, genres and MPA ratings
//
// @tag.name Core
// @tag.description Health check
package main
