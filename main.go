package main

import "github.com/hadiswara/pajak-restoran-dashboard/cmd"

func main() {
	cmd.Execute()
}
