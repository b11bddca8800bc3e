// ABOUTME: Main entry point for the rssreader command
// ABOUTME: Hands control to the cobra command tree

package main

func main() {
	Execute()
}
