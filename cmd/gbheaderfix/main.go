// Command gbheaderfix patches Game Boy / Game Boy Color cartridge headers.
package main

import (
	"os"

	"github.com/sargunv/gbheaderfix/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
