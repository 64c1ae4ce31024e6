// Package provision provisions credentials and access control entries onto
// owned devices.
//
// Every device-targeted operation requires the device to be in the
// registry's owned collection and fails locally with ErrNotOwned otherwise.
// ACEs are validated before anything is sent. Accepted requests are returned
// as sdk.Request values that resolve exactly once with the device's answer.
package provision
