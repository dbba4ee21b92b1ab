package config

import "github.com/pkg/errors"

// rawYAML expone bytes en memoria como koanf.Provider (para los defaults embebidos).
type rawYAML []byte

func (r rawYAML) ReadBytes() ([]byte, error) {
	return []byte(r), nil
}

func (r rawYAML) Read() (map[string]any, error) {
	return nil, errors.New("rawYAML provider does not support Read()")
}
