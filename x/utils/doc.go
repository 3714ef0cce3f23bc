// Package utils provides decorators shared by all extensions: savepoints,
// logging and panic recovery.
package utils
