// Package auth provides the browser sign-in facade of the command-line client.
//
// The facade initializes the identity client once, signs the user in through a
// browser window or a redirect, and signs the user out with the configured
// logout strategy. The identity client owns the accounts; the facade only
// decides which one is active.
package auth
