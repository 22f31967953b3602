// Command movectl drives the moving dashboard from a terminal.
package main

func main() {
	Execute()
}
