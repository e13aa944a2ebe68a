//go:build !(js && wasm)

package main

import "kotlinlex/internal/cmd"

func main() {
	cmd.Execute()
}
