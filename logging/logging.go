package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rifflock/lfshook"
	"github.com/sirupsen/logrus"
	config_proto "www.velocidex.com/golang/sqlpager/config/proto"
)

var (
	ToolComponent        = "SqlPager"
	PersistenceComponent = "Persistence"
	DatasourceComponent  = "Datasource"
	CacheComponent       = "MetadataCache"

	// Set by the CLI when not verbose. Messages still go to file
	// hooks if any are configured.
	SuppressLogging = false

	Manager = &LogManager{
		contexts: make(map[*string]*LogContext),
	}
)

type LogContext struct {
	*logrus.Logger
}

func (self *LogContext) Debug(format string, args ...interface{}) {
	self.Logger.Debug(fmt.Sprintf(format, args...))
}

func (self *LogContext) Info(format string, args ...interface{}) {
	self.Logger.Info(fmt.Sprintf(format, args...))
}

func (self *LogContext) Warn(format string, args ...interface{}) {
	self.Logger.Warn(fmt.Sprintf(format, args...))
}

func (self *LogContext) Error(format string, args ...interface{}) {
	self.Logger.Error(fmt.Sprintf(format, args...))
}

type LogManager struct {
	mu       sync.Mutex
	contexts map[*string]*LogContext
}

func (self *LogManager) Reset() {
	self.mu.Lock()
	defer self.mu.Unlock()

	self.contexts = make(map[*string]*LogContext)
}

func (self *LogManager) GetLogger(
	config_obj *config_proto.Config, component *string) *LogContext {
	self.mu.Lock()
	defer self.mu.Unlock()

	ctx, pres := self.contexts[component]
	if pres {
		return ctx
	}

	// Not initialized yet - make a logger from the config.
	ctx, err := makeLogger(config_obj, *component)
	if err != nil {
		ctx = &LogContext{Logger: logrus.New()}
	}
	self.contexts[component] = ctx
	return ctx
}

func GetLogger(config_obj *config_proto.Config, component *string) *LogContext {
	return Manager.GetLogger(config_obj, component)
}

func Reset() {
	Manager.Reset()
}

// Build all component loggers from the config. Called once the config
// is loaded; replaces any loggers created before that.
func InitLogging(config_obj *config_proto.Config) error {
	Manager.mu.Lock()
	defer Manager.mu.Unlock()

	for _, component := range []*string{
		&ToolComponent, &PersistenceComponent,
		&DatasourceComponent, &CacheComponent} {
		ctx, err := makeLogger(config_obj, *component)
		if err != nil {
			return err
		}
		Manager.contexts[component] = ctx
	}
	return nil
}

func makeLogger(
	config_obj *config_proto.Config, component string) (*LogContext, error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:    true,
		DisableColors:    true,
		QuoteEmptyFields: true,
	})

	var out io.Writer = os.Stderr
	if SuppressLogging {
		out = io.Discard
	}
	logger.SetOutput(out)

	level_name := config_obj.GetLogging().GetLevel()
	if level_name == "" {
		level_name = "info"
	}
	level, err := logrus.ParseLevel(level_name)
	if err != nil {
		return nil, fmt.Errorf("Invalid log level %v: %w", level_name, err)
	}
	logger.SetLevel(level)

	// Tag all messages with the component.
	logger.AddHook(&componentHook{component: component})

	directory := config_obj.GetLogging().GetOutputDirectory()
	if directory != "" {
		err := os.MkdirAll(directory, 0700)
		if err != nil {
			return nil, fmt.Errorf("Unable to create log directory: %w", err)
		}

		base := filepath.Join(directory, strings.ToLower(component))
		logger.AddHook(lfshook.NewHook(lfshook.PathMap{
			logrus.DebugLevel: base + "_debug.log",
			logrus.InfoLevel:  base + "_info.log",
			logrus.WarnLevel:  base + "_info.log",
			logrus.ErrorLevel: base + "_error.log",
		}, &logrus.JSONFormatter{}))
	}

	return &LogContext{Logger: logger}, nil
}

type componentHook struct {
	component string
}

func (self *componentHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (self *componentHook) Fire(entry *logrus.Entry) error {
	entry.Data["component"] = self.component
	return nil
}

// Log before the config is available.
func Prelog(format string, v ...interface{}) {
	if SuppressLogging {
		return
	}
	fmt.Fprintf(os.Stderr, "[INFO] "+format+"\n", v...)
}
