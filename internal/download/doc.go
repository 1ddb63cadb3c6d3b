// Package download fetches named resources (support packages, templates)
// into a local cache directory, exactly once per URL.
//
// # Cache Layout
//
// A URL maps to cacheDir/<last path segment>; query and fragment are
// ignored. Existence of that file is the only cache-hit signal; there
// is no content hashing, TTL, or invalidation. The cache persists
// across runs; the filesystem is the cache.
//
// # Progress
//
// When the server advertises a content length, the body is streamed in
// 1 MiB chunks and a carriage-return-updated progress bar is drawn
// after each chunk. Without a content length the body is written in one
// shot with no bar.
//
// # Sharp Edge
//
// A failed download is not cleaned up: a truncated file can be left at
// the cache path, and a later run will treat it as a cache hit. Callers
// that need certainty must delete the path and fetch again.
//
// # Concurrency
//
// No locking is applied to the cache directory. Concurrent processes
// fetching the same URL race on the same path; the last writer wins.
package download
