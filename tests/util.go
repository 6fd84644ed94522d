package testutil

import (
	"bytes"
	"log"
	"testing"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/gracemarks/core"
	"github.com/trezcool/gracemarks/storage/database/inmem"
	"github.com/trezcool/gracemarks/storage/seed"
)

// NewValidator returns a validator & translator set up the way the apps set them up.
func NewValidator() (*validator.Validate, ut.Translator) {
	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	return validate, translator
}

// OpenDB returns a fresh in-memory database holding the default seed, or the given one.
func OpenDB(t *testing.T, s ...seed.Seed) *inmemdb.DB {
	data := seed.Default()
	if len(s) > 0 {
		data = s[0]
	}
	db, err := inmemdb.Open(data)
	if err != nil {
		t.Fatalf("OpenDB() failed: %v", err)
	}
	return db
}

// NewConfig returns a test mode core.Config.
func NewConfig() *core.Config {
	return &core.Config{
		AppName:  "Grace Marks",
		Env:      "TEST",
		Build:    "test",
		TestMode: true,
		Server: core.ServerConfig{
			DisableReqLogs: true,
		},
	}
}

// Logger is a core.Logger recording every entry in memory.
type Logger struct {
	Buf bytes.Buffer
	std *log.Logger
}

var _ core.Logger = (*Logger)(nil)

func NewLogger() *Logger {
	l := &Logger{}
	l.std = log.New(&l.Buf, "", 0)
	return l
}

func (l *Logger) print(level, msg string, args []interface{}) {
	l.std.Printf("%s: %s %v", level, msg, args)
}

func (l *Logger) Debug(msg string, args ...interface{}) { l.print("DEBUG", msg, args) }
func (l *Logger) Info(msg string, args ...interface{})  { l.print("INFO", msg, args) }
func (l *Logger) Warn(msg string, args ...interface{})  { l.print("WARN", msg, args) }
func (l *Logger) Error(msg string, args ...interface{}) { l.print("ERROR", msg, args) }
func (l *Logger) Fatal(msg string, args ...interface{}) { l.print("FATAL", msg, args) }
