// Package cli implements the kong-based command lines for both chariot
// binaries.
//
// chariotd (DaemonCmd) accepts:
//
//	-q, --quiet     Suppress informational output.
//	-v, --verbose   Enable verbose output.
//	-d, --debug     Enable debug output.
//	-s, --socket    Unix socket path.
//
// chariot (ClientCmd) accepts the long-option flags from the recipe build
// workflow (--config, --exec, --var, --hide-conflicts, --wipe-container,
// --clean-cache, --thread-count, --local, --socket) plus positional
// "namespace/name" recipes to force-rebuild.
//
// Flags override build-time defaults set via linker flags. After parsing,
// the global logger is reconfigured to reflect the final level and
// verbosity before the command runs.
package cli
