package main

import "github.com/rpupo63/portfolio-backend/cli"

func main() {
	cli.Execute()
}
