package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func TestConsumeRequiresBroker(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("POS_KAFKA_BROKER", "")

	app := newApp()
	var out bytes.Buffer
	app.Writer = &out
	app.ErrWriter = &out
	app.ExitErrHandler = func(*cli.Context, error) {}

	err := app.Run([]string{"sales-svc", "consume"})
	require.Error(t, err)
	var exit cli.ExitCoder
	require.ErrorAs(t, err, &exit)
	assert.Equal(t, 2, exit.ExitCode())
}

func TestCommands(t *testing.T) {
	app := newApp()
	names := []string{}
	for _, command := range app.Commands {
		names = append(names, command.Name)
	}
	assert.Equal(t, []string{"consume", "serve"}, names)
}
