package main

import (
	"os"
	"path/filepath"

	"github.com/binzume/pmdmesh/converter"
	"github.com/binzume/pmdmesh/mmd"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Parse      mmd.Options               `yaml:"parse"`
	GLTF       converter.PMDToGLTFOption `yaml:"gltf"`
	TextureDir string                    `yaml:"textureDir"`
}

func loadConfig(path string) (*Config, error) {
	conf := &Config{}
	if path == "" {
		return conf, nil
	}
	r, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	if err := yaml.NewDecoder(r).Decode(conf); err != nil {
		return nil, err
	}
	if conf.TextureDir != "" && !filepath.IsAbs(conf.TextureDir) {
		conf.TextureDir = filepath.Join(filepath.Dir(path), conf.TextureDir)
	}
	return conf, nil
}

// defaultConfigFile returns "model.pmdconv.yaml" next to the input if it exists.
func defaultConfigFile(input string) string {
	confFile := input[0:len(input)-len(filepath.Ext(input))] + ".pmdconv.yaml"
	if _, err := os.Stat(confFile); err != nil {
		return ""
	}
	return confFile
}
