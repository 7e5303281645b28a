package protocol

// Command names one operation a client can request of the daemon.
type Command string

const (
	// CmdBuild processes a recipe set's forced recipes.
	CmdBuild Command = "build"
	// CmdStatus reports daemon uptime and build counters.
	CmdStatus Command = "status"
	// CmdShutdown requests a graceful daemon exit.
	CmdShutdown Command = "shutdown"

	// CmdOK wraps a successful response payload.
	CmdOK Command = "ok"
	// CmdError wraps an ErrorResult payload.
	CmdError Command = "error"
)
