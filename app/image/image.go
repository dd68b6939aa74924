// Package image stores and serves entity images on local disk. Files
// live under the configured images directory, named by entity id, and
// reads fall back to a placeholder when nothing is stored.
package image

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/viper"
)

var allowedExtensions = []string{".jpg", ".jpeg", ".png", ".svg"}

func vehicleDir() string {
	return filepath.Join(viper.GetString("storage.images_dir"), "products")
}

func newsDir() string {
	return filepath.Join(viper.GetString("storage.images_dir"), "news")
}

func placeholder(name string) string {
	return filepath.Join(viper.GetString("storage.images_dir"), "placeholders", name+".svg")
}

// extension returns the lowercased file extension when it is on the
// allow list.
func extension(filename string) (string, bool) {
	ext := strings.ToLower(filepath.Ext(filename))
	return ext, slices.Contains(allowedExtensions, ext)
}
