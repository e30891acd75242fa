//go:build tools
// +build tools

// Package tools declares tool dependencies for this module.
//
// mockgen is invoked by the go:generate directive in contract/contract.go.
package mood_chat

import (
	_ "go.uber.org/mock/mockgen"
)
