package main

import (
	"fmt"
	"io"
	"os"

	kingpin "gopkg.in/alecthomas/kingpin.v2"
	"www.velocidex.com/golang/sqlpager/config"
	config_proto "www.velocidex.com/golang/sqlpager/config/proto"
	"www.velocidex.com/golang/sqlpager/constants"
)

var (
	config_command = app.Command("config", "Manipulate the configuration.")
	config_show    = config_command.Command("show", "Show the current config.")

	config_generate = config_command.Command(
		"generate", "Generate a new config file with a sample schema.")
	config_generate_output = config_generate.Flag(
		"output", "Write the config to this file instead of stdout.").String()
)

func doShowConfig(out io.Writer) error {
	config_obj, err := load_config()
	if err != nil {
		return err
	}

	// Do not print credentials.
	for _, schema := range config_obj.Schemas {
		if schema.Password != "" {
			schema.Password = "********"
		}
	}

	res, err := config.Encode(config_obj)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%v", string(res))
	return nil
}

func generateConfig() *config_proto.Config {
	config_obj := config.GetDefaultConfig()
	config_obj.Schemas = append(config_obj.Schemas, &config_proto.SchemaConfig{
		Id:           "local",
		Title:        "Local sqlite database",
		Driver:       constants.DRIVER_SQLITE,
		Url:          "sqlpager.db",
		MaxOpenConns: constants.DEFAULT_MAX_OPEN,
	})
	return config_obj
}

func doGenerateConfig(out io.Writer) error {
	config_obj := generateConfig()
	if *config_generate_output != "" {
		return config.WriteConfigToFile(*config_generate_output, config_obj)
	}

	res, err := config.Encode(config_obj)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%v", string(res))
	return nil
}

func init() {
	command_handlers = append(command_handlers, func(command string) bool {
		switch command {
		case config_show.FullCommand():
			err := doShowConfig(os.Stdout)
			kingpin.FatalIfError(err, "Unable to show config.")

		case config_generate.FullCommand():
			err := doGenerateConfig(os.Stdout)
			kingpin.FatalIfError(err, "Unable to generate config.")

		default:
			return false
		}
		return true
	})
}
