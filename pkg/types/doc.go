// Package types defines shared value types returned by the public search
// surfaces (CLI and MCP tools).
package types
