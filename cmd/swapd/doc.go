/*
swapd keeps a token ledger and a swap escrow in a local LevelDB database
and exposes every operation as a command.

Configuration is read from $SWAPD_HOME/config.yaml and SWAPD_* environment
variables, an optional .env file in the working directory is loaded first.
Run "swapd --help" for the list of commands.
*/
package main
