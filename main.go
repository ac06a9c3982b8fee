package main

import "github.com/EdRice4/Macrander/cmd"

func main() {
	cmd.Execute()
}
