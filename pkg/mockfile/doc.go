// Package mockfile parses file-based mock definitions.
//
// A mock file consists of blank-line-delimited sections:
//
//	GET https://api.example.com/users
//
//	200
//	Content-Type: application/json
//
//	<% name = upper(method) %>
//	---
//	{"method": "{{name}}"}
//
// The first section is the request line (METHOD URL). A URL prefixed with
// "~" is a shell-style glob pattern rather than an exact URL. The second
// section holds the status code followed by "Name: value" header lines.
// Everything after the second blank line is kept verbatim as the remainder
// and rendered later, when request context is available.
package mockfile
