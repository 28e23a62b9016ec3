// conduit-testenv starts disposable conduit environments (see internal/testenv).
package main

import "github.com/conduit-demo/app/internal/cli"

func main() {
	cli.Execute()
}
