package main

import (
	"os"

	"negromart_seller/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
