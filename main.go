package main

import "github.com/LTplus-AG/NHMzh-plugin-cost-sub000/cmd"

func main() {
	cmd.Execute()
}
