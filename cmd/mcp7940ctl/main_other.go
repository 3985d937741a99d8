//go:build !linux

package main

import "log"

func main() {
	log.SetPrefix("mcp7940ctl: ")
	log.SetFlags(0)
	log.Fatalf("requires a Linux i2c-dev bus")
}
