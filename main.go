package main

import "github.com/jsphweid/earthosechords/cmd"

func main() {
	cmd.Execute()
}
