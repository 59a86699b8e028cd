package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	kingpin "gopkg.in/alecthomas/kingpin.v2"
	config_proto "www.velocidex.com/golang/sqlpager/config/proto"
	"www.velocidex.com/golang/sqlpager/datasource"
	"www.velocidex.com/golang/sqlpager/persistence"
)

func FatalIfError(command *kingpin.CmdClause, cb func() error) {
	err := cb()
	kingpin.FatalIfError(err, command.FullCommand())
}

// Everything a command needs to talk to the configured schemas.
type commandContext struct {
	config_obj *config_proto.Config
	manager    *datasource.Manager
	support    *persistence.PersistenceSupport
	out        io.Writer
}

func newCommandContext(
	config_obj *config_proto.Config, out io.Writer) *commandContext {
	return &commandContext{
		config_obj: config_obj,
		manager:    datasource.NewManager(config_obj),
		support:    persistence.NewPersistenceSupport(config_obj),
		out:        out,
	}
}

func (self *commandContext) Close() {
	self.manager.Close()
}

// Bound each operation by the configured query timeout.
func (self *commandContext) withTimeout(
	ctx context.Context) (context.Context, func()) {
	timeout := self.config_obj.GetPager().GetQueryTimeout()
	if timeout == 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, time.Duration(timeout)*time.Second)
}

func (self *commandContext) resultMode(name string) (persistence.ResultMode, error) {
	if name == "" {
		name = self.config_obj.GetPager().GetResultMode()
	}
	return persistence.ParseResultMode(name)
}

// Run a command against the loaded config, cancelling on Ctrl-C.
func withCommandContext(
	cb func(ctx context.Context, cc *commandContext) error) error {
	config_obj, err := load_config()
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cc := newCommandContext(config_obj, os.Stdout)
	defer cc.Close()

	return cb(ctx, cc)
}
