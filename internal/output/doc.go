// Package output renders command results for the terminal and routes log
// messages to the console and the rotating log file.
package output
