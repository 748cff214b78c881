package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rshade/contentlist/internal/cli"
	"github.com/rshade/contentlist/pkg/version"
)

func TestRun(t *testing.T) {
	t.Run("run function exists", func(t *testing.T) {
		_ = run
	})
}

func TestMainComponents(t *testing.T) {
	t.Run("version available", func(t *testing.T) {
		assert.NotEmpty(t, version.GetVersion())
	})

	t.Run("cli root command", func(t *testing.T) {
		root := cli.NewRootCmd(version.String())
		if assert.NotNil(t, root) {
			assert.Equal(t, "contentlist", root.Use)
			assert.Equal(t, version.String(), root.Version)
		}
	})
}
