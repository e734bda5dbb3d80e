/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Every asset the favicon markup points at must actually be embedded,
// so no link resolves to an empty response.
func TestFaviconMarkupMatchesEmbeddedAssets(t *testing.T) {
	re := regexp.MustCompile(`href="/(favicons/[^"]+)"`)
	matches := re.FindAllStringSubmatch(getFavicon(), -1)
	require.NotEmpty(t, matches)

	for _, m := range matches {
		_, err := favicons.ReadFile(m[1])
		assert.NoError(t, err, m[1])
	}
}
