// webpick lists installed browsers and switches the operating system's
// default HTTP/HTTPS handler from the command line.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "webpick:", err)
		os.Exit(1)
	}
}
