// main is the entry point for the cabcheck CLI.
package main

import (
	"github.com/arcadecab/cabcheck/cmd"
	"github.com/arcadecab/cabcheck/internal/contract"
	"github.com/arcadecab/cabcheck/internal/iocache"
)

func main() {
	defer iocache.CloseStores()
	cmd.SetCacheManager(iocache.Manager)

	if err := cmd.Execute(); err != nil {
		iocache.CloseStores()
		contract.LogFatal("Error", err)
	}
}
