// Package daemon runs the background tasks of the serve process: reloading the
// recipe fixture when it changes on disk and probing the recipe store on a schedule.
package daemon
