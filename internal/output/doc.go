// Package output prints styled, human-facing progress messages.
//
// # Usage
//
//	output.Info("Updating 7 files...")
//	output.Step("inlist_project: 3 lines changed")
//	output.Success("Model ready")
//	output.Warn("./mk exited with status 2")
//
// Verbose messages only print after SetVerbose(true):
//
//	output.Verbose("version marker: /opt/mesa/data/version_number")
//
// Styling is done with lipgloss:
//
//   - Success: ✨ green bold
//   - Error: ❌ red bold
//   - Warn: ⚠️ yellow
//   - Info: ℹ️ cyan
//   - Step: indented gray
//   - Verbose: 🔍 gray (when enabled)
//
// Messages go to stdout unless SetWriter redirects them.
package output
