// Filmgraph - Film Catalog and Social Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmgraph

/*
Package services adapts Filmgraph components to suture.Service.

HTTPServerService binds the API address itself, hands the listener to
http.Server and drains in-flight requests when its context ends.

CheckpointService runs DuckDB CHECKPOINT on a ticker so the write-ahead log
is folded into the database file while the server runs. A failed checkpoint
ends Serve with an error and suture restarts the loop.

Both implement fmt.Stringer so supervisor events name them.
*/
package services
