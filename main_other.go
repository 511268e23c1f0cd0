//go:build !windows

package main

import (
	"errors"
	"log"
	"runtime"
)

var ErrUnsupportedPlatform = errors.New("langflash runs on Windows only")

func main() {
	log.Fatalf("error: %+v (this is %s)", ErrUnsupportedPlatform, runtime.GOOS)
}
