// Package handlers provides the HTTP handlers of the decision API.
package handlers
