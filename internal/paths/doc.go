// Package paths provides platform-appropriate paths for the daemon.
//
// Runtime files (sockets, PIDs) follow XDG conventions on Linux and
// platform-native conventions on macOS and Windows. The build cache
// defaults to a directory relative to the current working directory,
// matching the recipe-adjacent ".chariot-cache" convention.
package paths
