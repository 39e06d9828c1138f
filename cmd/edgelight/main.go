// Command edgelight resolves notification colors, renders edge-lighting
// trails and runs the notification daemon.
package main

func main() {
	Execute()
}
