// Filmgraph - Film Catalog and Social Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmgraph

/*
Package supervisor runs Filmgraph's long-lived services under suture v4.

# Overview

	RootSupervisor ("filmgraph")
	├── DataSupervisor ("data-layer")
	│   └── CheckpointService (when database.checkpoint_interval > 0)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Each layer counts failures on its own, so a checkpoint loop that keeps
failing backs off without restarting the HTTP server.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddDataService(services.NewCheckpointService(db, cfg.Database.CheckpointInterval))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.Addr(), cfg.Server.ShutdownTimeout))

	if err := tree.Run(ctx); err != nil {
	    logging.Error().Err(err).Msg("Supervisor tree stopped")
	}

Run returns once the tree has stopped; a stop caused by ctx is not an
error. Services still running after the shutdown timeout are logged.

# Failure Handling

Suture keeps a failure counter per supervisor that decays over FailureDecay
seconds. Above FailureThreshold the supervisor waits FailureBackoff before the
next restart. Supervisor events reach zerolog through sutureslog and the
logging package's slog handler.
*/
package supervisor
