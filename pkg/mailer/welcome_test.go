package mailer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRenderWelcome(t *testing.T) {
	subject, text, html, err := RenderWelcome(map[string]any{
		"Name":    "Ana Silva",
		"AppName": "cadastro-api",
	})
	require.NoError(t, err)

	require.Equal(t, "Welcome to cadastro-api", subject)
	require.True(t, strings.Contains(text, "Ana Silva"))
	require.True(t, strings.Contains(html, "Ana Silva"))
	require.True(t, strings.Contains(html, "cadastro-api"))
}
