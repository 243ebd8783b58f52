// Package courier holds the courier-side state the application persists
// remotely: the last reported position and the session active flag.
package courier
