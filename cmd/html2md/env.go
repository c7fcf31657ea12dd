package main

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/alnah/go-html2md/internal/scrape"
)

// PageFetcher loads a chat page and selects its messages.
type PageFetcher interface {
	FetchPage(ctx context.Context, pageURL string, p scrape.Platform) (*scrape.Page, error)
	Close() error
}

// Compile-time interface implementation check.
var _ PageFetcher = (*scrape.Fetcher)(nil)

// Environment holds injectable dependencies for testability.
// Includes I/O, time, and the page fetcher factory.
type Environment struct {
	Now        func() time.Time
	Stdin      io.Reader
	Stdout     io.Writer
	Stderr     io.Writer
	NewFetcher func(timeout time.Duration) PageFetcher
}

// DefaultEnv returns the production environment backed by headless Chrome.
func DefaultEnv() *Environment {
	return &Environment{
		Now:    time.Now,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		NewFetcher: func(timeout time.Duration) PageFetcher {
			return scrape.NewFetcher(timeout)
		},
	}
}
