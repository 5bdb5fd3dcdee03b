package main

import "github.com/example/wharf-watcher/cmd"

func main() {
	cmd.Execute()
}
