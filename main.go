package main

import "github.com/fiscalpoint/sped-report-converter/cmd"

func main() {
	cmd.Execute()
}
