// Package storage declares persistence interfaces for web-owned cache data.
//
// The web service cache remains a derived read optimization and never becomes
// the source of truth for game domain state.
package storage
