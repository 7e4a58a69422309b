package config

import "flag"

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-a HTTP admin address in format [host]:[port]
//	-d sync-history database DSN
//	-c/-config TOML file path with configs
//	-channels channel-config repository checkout path
//	-server IRC server address in format [host]:[port]
//	-nick IRC nickname
func ParseFlags() *StructuredConfig {
	var httpAddress string
	var databaseDSN string
	var tomlConfigPath string
	var channelsDir string
	var ircServer string
	var ircNick string

	flag.StringVar(&httpAddress, "a", "", "HTTP admin address host:port")
	flag.StringVar(&databaseDSN, "d", "", "Database DSN")
	flag.StringVar(&tomlConfigPath, "c", "", "TOML config file path")
	flag.StringVar(&tomlConfigPath, "config", "", "TOML config file path (alias)")
	flag.StringVar(&channelsDir, "channels", "", "Channel-config repository path")
	flag.StringVar(&ircServer, "server", "", "IRC server host:port")
	flag.StringVar(&ircNick, "nick", "", "IRC nickname")

	flag.Parse()

	return &StructuredConfig{
		IRC: IRC{
			Server: ircServer,
			Nick:   ircNick,
		},
		Channels: Channels{
			Dir: channelsDir,
		},
		Server: Server{
			HTTPAddress: httpAddress,
		},
		Storage: Storage{
			DSN: databaseDSN,
		},
		TOMLFilePath: tomlConfigPath,
	}
}
