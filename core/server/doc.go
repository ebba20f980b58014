// Package server runs an http.Handler with timeouts and graceful shutdown.
//
//	srv, err := server.NewFromConfig(cfg, server.WithLogger(log))
//	if err != nil {
//		return err
//	}
//	// Blocks until ctx is canceled, then drains connections.
//	return srv.Run(ctx, handler)
package server
