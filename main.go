package main

import "github.com/syeo66/ochsenbein.red-2023/cmd"

func main() {
	cmd.Execute()
}
