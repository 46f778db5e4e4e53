package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

func TestRoot_Commands(t *testing.T) {
	root := Root()

	var names []string
	for _, c := range root.Commands {
		names = append(names, c.Name)
	}
	assert.ElementsMatch(t, []string{"configure", "validate", "status", "ifup"}, names)
	assert.Equal(t, "tsctl", root.Name)
}

func TestExpectations_DefaultsWithoutConfigFlag(t *testing.T) {
	cmd := &cli.Command{
		Flags: []cli.Flag{&cli.StringFlag{Name: "config"}},
		Action: func(_ context.Context, c *cli.Command) error {
			exp, err := expectations(c)
			require.NoError(t, err)
			assert.Equal(t, "America/New_York", exp.Timezone)
			return nil
		},
	}
	require.NoError(t, cmd.Run(context.TODO(), []string{"test"}))
}

func TestExpectations_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lab.yaml")
	require.NoError(t, os.WriteFile(path, []byte("timezone: Europe/Berlin\n"), 0o644))

	cmd := &cli.Command{
		Flags: []cli.Flag{&cli.StringFlag{Name: "config"}},
		Action: func(_ context.Context, c *cli.Command) error {
			exp, err := expectations(c)
			require.NoError(t, err)
			assert.Equal(t, "Europe/Berlin", exp.Timezone)
			return nil
		},
	}
	require.NoError(t, cmd.Run(context.TODO(), []string{"test", "--config", path}))
}

func TestExpectations_MissingFile(t *testing.T) {
	cmd := &cli.Command{
		Flags: []cli.Flag{&cli.StringFlag{Name: "config"}},
		Action: func(_ context.Context, c *cli.Command) error {
			_, err := expectations(c)
			assert.ErrorContains(t, err, "failed to load configuration")
			return nil
		},
	}
	require.NoError(t, cmd.Run(context.TODO(), []string{"test", "--config", "/nonexistent/lab.yaml"}))
}

func TestConfigure_RejectsUnknownPolicy(t *testing.T) {
	err := Root().Run(context.TODO(), []string{"tsctl", "configure", "--on-error", "maybe"})
	assert.ErrorContains(t, err, "unknown failure policy")
}

func TestValidate_MissingConfigFileFails(t *testing.T) {
	err := Root().Run(context.TODO(),
		[]string{"tsctl", "--config", "/nonexistent/lab.yaml", "validate"})
	assert.ErrorContains(t, err, "failed to load configuration")
}

func TestIfup_NoMatchingInterfaces(t *testing.T) {
	path := filepath.Join(t.TempDir(), "interfaces")
	require.NoError(t, os.WriteFile(path, []byte("auto lo\niface lo inet loopback\n"), 0o644))

	err := Root().Run(context.TODO(),
		[]string{"tsctl", "ifup", "--definitions", path, "--prefix", "zz"})
	assert.NoError(t, err)
}
