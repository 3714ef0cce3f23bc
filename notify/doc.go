/*
Package notify dispatches committed events to observers.

A Notifier fans every event out to a list of sinks. Sinks only observe,
a failing or panicking sink never affects the call that emitted the event
nor the other sinks.

LogSink writes events to the context logger, MetricsSink counts them with
prometheus and Recorder keeps them in memory for tests.
*/
package notify
