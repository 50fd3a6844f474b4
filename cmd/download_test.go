package main

import (
	"bytes"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ptel-andalucia/dera-cli/internal/catalog"
	"github.com/ptel-andalucia/dera-cli/internal/dera"
)

func TestSelectKeys(t *testing.T) {
	c := catalog.Default()

	keys, err := selectKeys(c, "all")
	require.NoError(t, err)
	assert.Nil(t, keys)

	keys, err = selectKeys(c, "health")
	require.NoError(t, err)
	assert.Equal(t, []string{"health"}, keys)

	_, err = selectKeys(c, "heritage")
	require.Error(t, err)
}

func TestFailedCategories(t *testing.T) {
	results := []dera.CategoryResult{
		{Key: "health", Features: 120},
		{Key: "energy", Features: 0},
		{Key: "security", Features: 5, Err: eris.New("disk full")},
	}

	assert.Equal(t, []string{"energy", "security"}, failedCategories(results))
	assert.Nil(t, failedCategories([]dera.CategoryResult{{Key: "ok", Features: 1}}))
}

func TestCategoriesCommandOutput(t *testing.T) {
	var buf bytes.Buffer
	categoriesCmd.SetOut(&buf)
	categoriesCmd.Run(categoriesCmd, nil)

	out := buf.String()
	for _, key := range catalog.Default().Keys() {
		assert.Contains(t, out, key)
	}
	assert.Contains(t, out, "DERA_g12_servicios:g12_01_CentroSalud")
}
