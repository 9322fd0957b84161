package main

import (
	"context"
	"os"

	"github.com/sethvargo/go-githubactions"
)

func main() {
	os.Exit(run(context.Background(), githubactions.New()))
}
