// Package git runs the git executable and parses its output.
//
// Commands are built from argument lists, escaped for display, and run as
// subprocesses whose environment and working directory come from a
// Location:
//   - CommandRunner executes one subcommand and applies the exit policy
//   - the Parse* functions turn porcelain and plumbing output into values
//   - Client exposes one method per supported git operation
//
// This package should be the only place where git commands are executed.
package git
