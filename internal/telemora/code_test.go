package telemora

import (
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseCodeString(t *testing.T) {
	code := testCode()
	boc := code.ToBOC()

	for name, s := range map[string]string{
		"hex":        hex.EncodeToString(boc),
		"base64":     base64.StdEncoding.EncodeToString(boc),
		"whitespace": "  " + hex.EncodeToString(boc) + "\n",
	} {
		t.Run(name, func(t *testing.T) {
			c, err := ParseCodeString(s)
			require.NoError(t, err)
			require.Equal(t, code.Hash(), c.Hash())
		})
	}

	_, err := ParseCodeString("not a boc !")
	require.Error(t, err)
}

func TestParseCompiledCode(t *testing.T) {
	code := testCode()
	dir := t.TempDir()

	bocPath := filepath.Join(dir, "Telemora.boc")
	require.NoError(t, os.WriteFile(bocPath, code.ToBOC(), 0o600))

	raw, err := json.Marshal(compiledContract{Hex: hex.EncodeToString(code.ToBOC())})
	require.NoError(t, err)
	jsonPath := filepath.Join(dir, "Telemora.compiled.json")
	require.NoError(t, os.WriteFile(jsonPath, raw, 0o600))

	textPath := filepath.Join(dir, "Telemora.code")
	require.NoError(t, os.WriteFile(textPath, []byte(base64.StdEncoding.EncodeToString(code.ToBOC())), 0o600))

	for _, path := range []string{bocPath, jsonPath, textPath} {
		c, err := ParseCompiledCode(path)
		require.NoError(t, err, path)
		require.Equal(t, code.Hash(), c.Hash(), path)
	}

	emptyPath := filepath.Join(dir, "Empty.compiled.json")
	require.NoError(t, os.WriteFile(emptyPath, []byte(`{"hash":"00"}`), 0o600))
	_, err = ParseCompiledCode(emptyPath)
	require.Error(t, err)

	_, err = ParseCompiledCode(filepath.Join(dir, "missing.boc"))
	require.Error(t, err)
}
