// Package server implements the chariotd daemon.
//
// The daemon listens on a Unix domain socket for JSON-encoded commands
// from the chariot CLI. Each connection carries a single request-response
// exchange: the client sends a newline-delimited JSON envelope, the
// server dispatches the command, and writes the result back before
// closing the connection.
//
// Supported commands build a recipe set's forced recipes, query daemon
// status, and initiate shutdown. Build commands are delegated to the
// build package, which in turn uses the runtime package for container
// operations against containerd and the image package for the layered
// rootfs cache. Every build command funnels through a single mutex, since
// the on-disk cache is a single-writer structure (spec.md §5).
//
// Example usage:
//
//	srv, err := server.New(server.Config{
//	    ContainerdAddress:   "/run/containerd/containerd.sock",
//	    ContainerdNamespace: "chariotd",
//	})
//	if err != nil {
//	    return err
//	}
//
//	if err := srv.Start(); err != nil {
//	    return err
//	}
//	defer srv.Stop()
//
//	srv.Wait()
package server
