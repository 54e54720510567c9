// Package app wires the identity client and the sign-in facade for each CLI command.
package app
