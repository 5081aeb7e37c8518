package main

import "portfolio-server/portfolio_server/cmd"

func main() {
	cmd.Execute()
}
