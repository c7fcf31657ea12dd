// Package process stops the headless browser launched for page fetches
// together with its child processes. Errors are ignored: the caller has
// already asked the browser to exit and this is the last resort.
package process
