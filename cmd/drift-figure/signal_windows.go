//go:build windows

package main

import "os"

// shutdownSignals cancel a running sample generation.
var shutdownSignals = []os.Signal{os.Interrupt}
