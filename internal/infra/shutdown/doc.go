// Package shutdown provides graceful shutdown for respkv.
//
// A Handler waits for SIGINT/SIGTERM (or for its context to end), then runs
// the registered hooks in reverse registration order under one timeout:
//
//	h := shutdown.NewHandler(10*time.Second, logger)
//	h.OnShutdown("redis server", srv.Shutdown)
//	err := h.Wait(ctx)
package shutdown
