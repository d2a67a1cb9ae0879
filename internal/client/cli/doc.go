// Package cli is the interactive brokerdesk terminal client.
//
// Each screen of the brokerage front end is a REPL screen here: the router
// decides which screen may be shown, the workflow controllers behind it
// talk to the API, and this package prompts for input, prints tables and
// banners, and follows the redirects the controllers ask for.
//
// Global commands (help, go, home, screens, whoami, logout, exit) work
// everywhere; every screen adds its own. App.Run blocks until the user
// exits.
package cli
