package main

import "github.com/teewear/storefront/cmd"

func main() {
	cmd.Start()
}
