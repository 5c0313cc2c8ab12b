// Package htmlmeta extracts the title and meta tags of web pages.
// It fetches a page over HTTP (or accepts raw HTML), scans it for
// <title> and <meta name|property=...> tags, detects the character
// encoding the page was written in and normalizes every value to UTF-8.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., regexp/, goquery/, http/).
package htmlmeta
