// Package mcp exposes the index over the Model Context Protocol so AI
// assistants can search the user's files.
//
// Four tools are registered:
//   - semantic_search: find files by meaning ("that tax document from March")
//   - recent_files: list the newest arrivals in the watched directory
//   - sync_index: reconcile the index with the directory on demand
//   - get_status: index statistics and health
//
// # Protocol Overview
//
// MCP is a JSON-RPC 2.0 protocol over stdio transport:
//
//	Client → Server: {"method": "tools/call", "params": {...}}
//	Server → Client: {"result": {...}}
//
// The server is typically started via the mcp command:
//
//	dropindex mcp
//
// # Tool: semantic_search
//
//	Request:
//	{
//	  "name": "semantic_search",
//	  "arguments": {"query": "2025 tax return", "top_k": 5}
//	}
//
//	Response (text content, JSON formatted):
//	{
//	  "query": "2025 tax return",
//	  "count": 2,
//	  "results": [
//	    {"score": "0.8312", "filename": "w2-2025.pdf", "path": "...", "snippet": "..."}
//	  ]
//	}
//
// # Error Handling
//
// Standard JSON-RPC error responses:
//   - -32602: Invalid params (missing/invalid arguments)
//   - -32603: Internal error (database, embedding provider)
//   - -32004: Empty query
//
// # Logging
//
// All logging goes to stderr; stdout is reserved for protocol frames.
package mcp
