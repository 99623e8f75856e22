/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/ssargent/savekit/cmd/savekit/cmd"

func main() {
	cmd.Execute()
}
