// Command jira-check runs the issue key check locally against a pull
// request title and commit messages supplied on the command line.
package main

import (
	"os"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
