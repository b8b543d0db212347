// Command cursor-stats prints Cursor subscription usage as Alfred script
// filter items.
//
// Usage:
//
//	# Show usage items
//	cursor-stats
//
//	# Run an item action
//	cursor-stats refresh
//	cursor-stats open_cursor_settings
package main

func main() {
	Execute()
}
