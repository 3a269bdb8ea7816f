// Package template renders the remainder section of a mock file.
//
// Rendering runs in two phases. The preprocessing phase executes every
// <% ... %> block; each line of a block assigns the value of an expr-lang
// expression to a name:
//
//	<%
//	  # comments start with '#'
//	  who = header("X-User") != "" ? header("X-User") : "anonymous"
//	  shout = upper(who)
//	%>
//
// Expressions see the request as request.method, request.url and
// request.headers (also as method, url and headers), every name assigned
// earlier, the helpers header(name), uuid() and timestamp(), and the
// expr-lang builtins (upper, lower, trim, now, toJSON, ...). Blocks emit
// no text.
//
// The substitution phase replaces {{expression}} patterns:
//
// Time-related:
//   - {{now}} - Current time in RFC3339 format
//   - {{timestamp}} - Current Unix timestamp
//   - {{timestamp.iso}} - Current UTC time in RFC3339 with nanoseconds
//   - {{timestamp.unix_ms}} - Current Unix timestamp in milliseconds
//
// Random values:
//   - {{uuid}} - Random UUID v4
//   - {{uuid.short}} - First 8 characters of a random UUID
//   - {{random}} - Random 8-character hex string
//   - {{random.string}} or {{random.string(N)}} - Random alphanumeric string
//   - {{random.int}} or {{random.int(min, max)}} - Random integer
//   - {{random.float}} or {{random.float(min, max, precision)}} - Random float
//
// Request:
//   - {{request.method}} - HTTP method
//   - {{request.url}} - Full request URL
//   - {{request.header.Name}} - First value of a request header
//
// Preprocessed values:
//   - {{name}} or {{vars.name}} - Value assigned in a <% %> block
//
// Functions:
//   - {{upper(value)}} or {{upper value}}
//   - {{lower(value)}} or {{lower value}}
//   - {{default(value, "fallback")}} or {{default value "fallback"}}
//
// Unknown expressions render as the empty string.
//
// After rendering, the body is everything following the first line that
// consists of "---". See ExtractBody.
package template
