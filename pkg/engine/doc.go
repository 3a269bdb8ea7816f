// Package engine serves mock responses from mock files.
//
// For every request the engine resolves its configured glob patterns,
// parses all matching files in sorted path order into a fresh store,
// and looks the request up:
//
//	request ──► list files ──► BuildStore ──► Find(method, url)
//	                                              │
//	                              no match ◄──────┼──────► match
//	                           (pass through)     │
//	                                              ▼
//	                                 render remainder, extract body
//	                                              │
//	                                   "@@url"? ──┴── literal body
//	                                      │
//	                               fetch upstream
//
// Nothing is cached between requests, so edits to mock files take effect
// on the next request. An engine with no patterns is disabled and passes
// every request through untouched.
package engine
