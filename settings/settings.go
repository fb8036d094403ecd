// Package settings aggregates all runtime configuration for the node,
// read once at startup through gocore and injected where needed.
package settings

import (
	"time"
)

type Settings struct {
	ClientName    string
	ClientVersion string
	LogLevel      string
	SAPI          SAPISettings
}

type SAPISettings struct {
	// ListenAddresses are tried in order; the server starts if at least one
	// binds.
	ListenAddresses []string

	WorkerThreads  int
	WorkQueueDepth int
	ServerTimeout  time.Duration
	MaxHeaderBytes int
	MaxBodySize    string
	JSONIndent     int
	EchoDebug      bool
}

func NewSettings() *Settings {
	return &Settings{
		ClientName:    getString("clientName", "Core-Smart"),
		ClientVersion: getString("clientVersion", "dev"),
		LogLevel:      getString("logLevel", "INFO"),
		SAPI: SAPISettings{
			ListenAddresses: getMultiString("sapi_listen", ":9680"),
			WorkerThreads:   getInt("sapi_workers", 4),
			WorkQueueDepth:  getInt("sapi_workqueue", 16),
			ServerTimeout:   time.Duration(getInt("sapi_servertimeout", 30)) * time.Second,
			MaxHeaderBytes:  getInt("sapi_maxheadersize", 8192),
			MaxBodySize:     getString("sapi_maxbodysize", "32M"),
			JSONIndent:      getInt("sapi_jsonindent", 2),
			EchoDebug:       getBool("ECHO_DEBUG", false),
		},
	}
}
