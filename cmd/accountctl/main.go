package main

import (
	"context"

	"github.com/David-Parker/StormCoreAccountsAPI/internal/client/cli"
)

func main() {
	cli.Execute(context.Background())
}
