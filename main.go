package main

import "github.com/nikogura/resume-refresh/cmd"

func main() {
	cmd.Execute()
}
