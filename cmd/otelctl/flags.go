package main

// GlobalFlags holds the persistent flags shared by all commands.
type GlobalFlags struct {
	ConfigPath string
}

// projectEnvVar is the fallback source for the GCP project id when the
// start-gcp argument is omitted.
const projectEnvVar = "OTLP_GOOGLE_CLOUD_PROJECT"
