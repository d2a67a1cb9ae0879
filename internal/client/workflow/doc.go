// Package workflow holds one controller per screen of the client.
//
// A controller orchestrates calls to the API facade, keeps the view state of
// its screen (lists, selections, the pending purchase), and reports back
// through a transient flash message and an optional delayed redirect. It never
// renders anything; the cli package does.
package workflow
