// Command nekofetch fetches random anime images from public image APIs.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/dixieflatline76/Nekofetch/pkg/imagefetch"
	_ "github.com/dixieflatline76/Nekofetch/pkg/imagefetch/providers/all"
)

func main() {
	if err := newRootCmd(newApp()).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error: "+err.Error())
		os.Exit(exitCode(err))
	}
}

// exitCode is 2 for an upstream fetch failure and 1 for anything else.
func exitCode(err error) int {
	var fetchErr *imagefetch.FetchError
	if errors.As(err, &fetchErr) && !errors.Is(err, imagefetch.ErrUnknownProvider) {
		return 2
	}
	return 1
}
