package config

// File represents the structure of the tcbuild.yaml settings file.
type File struct {
	Target     string `yaml:"target"`
	Prefix     string `yaml:"prefix"`
	SourceRoot string `yaml:"sourceRoot"`
	Jobs       int    `yaml:"jobs"`
	Compiler   string `yaml:"compiler"`
}
