// Command heapctl drives a fixed-capacity heap through scripted workloads
// and reports its layout and statistics.
package main

func main() {
	execute()
}
