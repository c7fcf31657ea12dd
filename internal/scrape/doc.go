// Package scrape loads AI chat pages and selects their messages.
//
// A Platform describes where a chat service puts the conversation title
// and messages. DetectPlatform picks the platform from a page URL, Select
// extracts messages from page HTML with CSS selectors, and Fetcher renders
// a page in headless Chrome so client-side conversations are present in
// the HTML.
//
// Select returns message fragments as HTML; converting them to Markdown is
// left to the caller.
package scrape
