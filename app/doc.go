/*
Package app wires extensions into a runnable application.

Router maps message paths to handlers, Decorators wrap them with common
behaviour and Application serializes calls against a store, committing
each delivered message atomically and releasing its events afterwards.
*/
package app
