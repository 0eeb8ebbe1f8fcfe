// Package cli handles command-line argument parsing and validation. It is
// responsible for translating user input into an app.Config.
package cli
