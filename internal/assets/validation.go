package assets

import (
	"fmt"
	"strings"
	"unicode"
)

// ValidateAssetName checks that an asset name is safe for use as a filename.
// Path separators, dots and whitespace are rejected.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if strings.ContainsAny(name, "/\\.") || strings.IndexFunc(name, unicode.IsSpace) >= 0 {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
