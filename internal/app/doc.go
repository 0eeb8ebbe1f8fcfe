// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the execution of one driver action against
// a project, decoupled from any specific entrypoint like a CLI.
package app
