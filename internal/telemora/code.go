package telemora

import (
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/xssnick/tonutils-go/tvm/cell"
)

// compiledContract is the blueprint build artifact (*.compiled.json).
type compiledContract struct {
	Hash string `json:"hash"`
	Hex  string `json:"hex"`
}

// ParseCompiledCode loads the contract code cell from a raw .boc file, a
// blueprint .compiled.json artifact or a text file holding a hex or base64 BOC.
func ParseCompiledCode(path string) (*cell.Cell, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read contract code: %w", err)
	}

	switch {
	case strings.HasSuffix(path, ".boc"):
		return parseBOC(raw)
	case strings.HasSuffix(path, ".compiled.json"):
		var compiled compiledContract
		if err := json.Unmarshal(raw, &compiled); err != nil {
			return nil, fmt.Errorf("failed to parse compiled contract: %w", err)
		}
		if compiled.Hex == "" {
			return nil, fmt.Errorf("hex field is empty in %s", path)
		}
		return ParseCodeString(compiled.Hex)
	default:
		return ParseCodeString(string(raw))
	}
}

// ParseCodeString accepts a hex or base64 encoded BOC.
func ParseCodeString(s string) (*cell.Cell, error) {
	s = strings.TrimSpace(s)
	if data, err := hex.DecodeString(s); err == nil {
		return parseBOC(data)
	}

	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("code is neither hex nor base64: %w", err)
	}
	return parseBOC(data)
}

func parseBOC(data []byte) (*cell.Cell, error) {
	c, err := cell.FromBOC(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse BOC: %w", err)
	}
	return c, nil
}
