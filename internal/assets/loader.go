package assets

// DefaultStyleName is the name of the built-in stylesheet.
const DefaultStyleName = "default"

// AssetLoader defines the contract for loading named stylesheets.
type AssetLoader interface {
	// LoadStyle loads a CSS style by name (without .css extension).
	// Returns ErrStyleNotFound if the style doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadStyle(name string) (string, error)
}
