// Package runtime provides the execution context for gitexec commands.
//
// It resolves the repository location from flags or the working directory,
// loads configuration, and wires the git client to the command logger.
package runtime
