package main

import "github.com/llehouerou/riffle/internal/cli"

func main() {
	cli.Execute()
}
