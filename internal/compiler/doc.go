// Package compiler is the configuration front of the ActionScript/MXML
// compiler as seen by the language server.
//
// It owns the process-wide Workspace and the Configurator that turns
// command-line style arguments plus optional XML configuration files into
// TargetSettings. Problems found on the way are collected as diag.Diagnostic
// values and never abort the process.
//
// The package only models configuration: parsing, type checking and code
// generation live elsewhere and consume TargetSettings.
//
// Concurrency: a Workspace is shared mutable state. Nothing here serializes
// resolutions; callers must hold exclusive access to the workspace for the
// duration of one Configurator.ApplyToProject call.
package compiler
