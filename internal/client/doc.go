// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The go-diet-keeper Authors

// Package client implements the interactive client application runtime.
//
// It wires the terminal UI, the domain services and the background sync job
// into a single process lifecycle.
package client
