// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Download Pipeline - these keys govern stream fetching behavior.
const (
	DownloadDir     = "download.dir"
	DownloadRetries = "download.retries"
)

// Proxy Probing - these keys configure the optional local intercepting proxy.
const (
	ProxyAddress = "proxy.address"
	ProxyTimeout = "proxy.timeout_seconds"
)

// Multiplexing - these keys configure the external multiplexer invocation.
const (
	MuxContainer      = "mux.container"
	MuxFFmpegFallback = "mux.ffmpeg_fallback"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these settings govern general CLI behavior.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)
