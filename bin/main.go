/*
   sqlpager - generic result set paging
   Copyright (C) 2019 Velocidex Innovations.

   This program is free software: you can redistribute it and/or modify
   it under the terms of the GNU Affero General Public License as published
   by the Free Software Foundation, either version 3 of the License, or
   (at your option) any later version.

   This program is distributed in the hope that it will be useful,
   but WITHOUT ANY WARRANTY; without even the implied warranty of
   MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
   GNU Affero General Public License for more details.

   You should have received a copy of the GNU Affero General Public License
   along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/
package main

import (
	"os"

	kingpin "gopkg.in/alecthomas/kingpin.v2"
	"www.velocidex.com/golang/sqlpager/config"
	config_proto "www.velocidex.com/golang/sqlpager/config/proto"
	"www.velocidex.com/golang/sqlpager/constants"
	"www.velocidex.com/golang/sqlpager/logging"
)

type CommandHandler func(command string) bool

var (
	app = kingpin.New("sqlpager",
		"Page through the results of SQL queries as uniform records.")

	config_path = app.Flag("config", "The configuration file.").Short('c').
			Envar(constants.SQLPAGER_CONFIG).String()

	verbose_flag = app.Flag(
		"verbose", "Enabled verbose logging.").Short('v').
		Default("false").Bool()

	command_handlers []CommandHandler
)

func load_config() (*config_proto.Config, error) {
	return new(config.Loader).
		WithVerbose(*verbose_flag).
		WithRequiredLogging().
		WithFileLoader(*config_path).
		WithEnvLoader(constants.SQLPAGER_CONFIG).
		LoadAndValidate()
}

func main() {
	app.HelpFlag.Short('h')
	app.UsageTemplate(kingpin.CompactUsageTemplate)
	args := os.Args[1:]

	command := kingpin.MustParse(app.Parse(args))

	if !*verbose_flag {
		logging.SuppressLogging = true
		logging.Manager.Reset()
	}

	for _, command_handler := range command_handlers {
		if command_handler(command) {
			break
		}
	}
}
