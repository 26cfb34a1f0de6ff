// Package main provides the igt command line client.
package main

func main() {
	Execute()
}
