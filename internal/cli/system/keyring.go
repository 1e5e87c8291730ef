package system

import (
	"fmt"

	"github.com/sprouthq/sprout/internal/cli"
	"github.com/sprouthq/sprout/internal/keyring"
	"github.com/sprouthq/sprout/internal/storage"
)

type KeyringCmd struct {
	Set   KeyringSetCmd   `cmd:"" help:"Store the PostgreSQL connection string in the OS keyring."`
	Clear KeyringClearCmd `cmd:"" help:"Remove the stored connection string from the OS keyring."`
}

type KeyringSetCmd struct {
	ConnectionString string `arg:"" help:"PostgreSQL connection string, credentials included."`
}

func (c *KeyringSetCmd) Run(ctx *cli.Context) error {
	if !storage.IsPostgres(c.ConnectionString) {
		return fmt.Errorf("expected a postgres:// connection string")
	}
	if err := keyring.SetConnectionString(c.ConnectionString); err != nil {
		return err
	}
	fmt.Println("Connection string stored in OS keyring.")
	return nil
}

type KeyringClearCmd struct{}

func (c *KeyringClearCmd) Run(ctx *cli.Context) error {
	if err := keyring.DeleteConnectionString(); err != nil {
		return err
	}
	fmt.Println("Connection string removed from OS keyring.")
	return nil
}
