package assets

import (
	"fmt"
	"os"
	"path/filepath"
)

// LoadShader reads dir/shaders/name into a null-terminated string for OpenGL.
func LoadShader(dir, name string) (string, error) {
	path := filepath.Join(dir, "shaders", name)
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("load shader %q: %w", name, err)
	}
	// Ensure null termination for gl.Str
	if len(b) == 0 || b[len(b)-1] != 0 {
		b = append(b, 0)
	}
	return string(b), nil
}

// LoadProgram reads the vertex and fragment stages stem.vert and stem.frag.
func LoadProgram(dir, stem string) (vertex, fragment string, err error) {
	if vertex, err = LoadShader(dir, stem+".vert"); err != nil {
		return "", "", err
	}
	if fragment, err = LoadShader(dir, stem+".frag"); err != nil {
		return "", "", err
	}
	return vertex, fragment, nil
}
