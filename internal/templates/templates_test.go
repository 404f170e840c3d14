package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_ParsesAllPages(t *testing.T) {
	tmpl := Load()
	require.NotNil(t, tmpl)

	for _, name := range []string{"index.html", "register.html", "login.html", "create_post.html"} {
		assert.NotNil(t, tmpl.Lookup(name), "missing template %s", name)
	}
}

func TestLoad_SharedPartials(t *testing.T) {
	tmpl := Load()

	for _, name := range []string{"nav", "flash", "field_errors"} {
		assert.NotNil(t, tmpl.Lookup(name), "missing partial %s", name)
	}
}
