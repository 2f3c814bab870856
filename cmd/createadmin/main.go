// Command createadmin creates an administrator account from the terminal.
// It reads the same configuration sources as the server.
package main

import (
	"bufio"
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/acquisitions/internal/cli"
	"github.com/dmitrijs2005/acquisitions/internal/server"
	"github.com/dmitrijs2005/acquisitions/internal/server/config"
	"github.com/dmitrijs2005/acquisitions/internal/server/validation"
)

func main() {
	if err := run(context.Background()); err != nil {
		log.Fatal(err)
	}
}

// run returns every error so the deferred Close runs before main exits.
func run(ctx context.Context) error {
	app, err := server.NewApp(config.LoadConfig())
	if err != nil {
		return err
	}
	defer app.Close()

	if err := app.Migrate(ctx); err != nil {
		return err
	}

	user, err := cli.CreateAdmin(ctx, bufio.NewReader(os.Stdin), os.Stdout, validation.New(), app.AuthService())
	if err != nil {
		return err
	}

	log.Printf("administrator %s created with id %d", user.Email, user.ID)
	return nil
}
