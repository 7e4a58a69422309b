// validate-config checks every channel config in a repository checkout
// and exits non-zero when any of them would fail to sync. Meant to run
// in the config repository's CI so broken configs never reach the bot.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mwbots/ircservserv/internal/config"
)

func main() {
	dir := flag.String("dir", ".", "path to the channel-config repository checkout")
	account := flag.String("account", "", "services account the bot runs as; when set, every channel must list it as a founder")
	flag.Parse()

	channels, err := config.ListChannels(*dir)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	var failed int
	for _, channel := range channels {
		if err := validateChannel(*dir, channel, *account); err != nil {
			fmt.Fprintln(os.Stderr, err)
			failed++
			continue
		}
		fmt.Printf("%s: ok\n", channel)
	}

	if failed > 0 {
		fmt.Fprintf(os.Stderr, "%d of %d channel configs are invalid\n", failed, len(channels))
		os.Exit(1)
	}
}

func validateChannel(dir, channel, account string) error {
	cfg, err := config.LoadChannel(dir, channel)
	if err != nil {
		return err
	}
	if err := cfg.Validate(account); err != nil {
		return err
	}

	// expanding the roles catches malformed identities and bad flags
	_, err = cfg.DesiredSnapshot()
	return err
}
