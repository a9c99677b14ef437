package logging

// Structured field keys. Keep keys snake_case so log output can be grepped.
const (
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldWorkingDir = "working_dir"
	FieldCached     = "cached"

	FieldLanguage = "language"
	FieldFix      = "fix"
	FieldDryRun   = "dry_run"
	FieldJobs     = "jobs"
	FieldCacheDir = "cache_dir"

	FieldFilesProcessed   = "files_processed"
	FieldDiagnosticsTotal = "diagnostics_total"
	FieldDiagnostics      = "diagnostics"
	FieldCacheHits        = "cache_hits"
	FieldDuration         = "duration"

	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"

	FieldSeverity    = "severity"
	FieldFixable     = "fixable"
	FieldDescription = "description"
)
