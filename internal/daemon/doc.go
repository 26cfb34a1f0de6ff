// Package daemon holds the igtd glue that sits between the config, theme and
// audio layers and the running overlay: hot-reload application and
// rate-limited desktop alerts about igtd itself.
package daemon
