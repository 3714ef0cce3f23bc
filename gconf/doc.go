/*
Package gconf implements a configuration store intended to be used as a global,
in-database configuration.

Each extension keeps a single configuration object stored under the "_c:<pkg>"
key. Configuration can be loaded from the "conf" section of a genesis file or
created once at runtime, and is validated before every write.
*/
package gconf
