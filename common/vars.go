package common

var (
	// Version is set at build time via -ldflags.
	Version = "dev"

	// PackageName is used as the metrics namespace.
	PackageName = "tee_intent_signer"
)
