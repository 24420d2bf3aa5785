package domain

import "go.trai.ch/zerr"

// Catalog is the ordered, immutable list of projects that make up the toolchain.
// Catalog order is dependency order.
type Catalog struct {
	projects []Project
	index    map[string]int
}

// NewCatalog builds a catalog from projects in the given order.
func NewCatalog(projects ...Project) (*Catalog, error) {
	c := &Catalog{
		projects: make([]Project, 0, len(projects)),
		index:    make(map[string]int, len(projects)),
	}
	for _, p := range projects {
		if _, ok := c.index[p.Name]; ok {
			return nil, zerr.With(zerr.Wrap(ErrDuplicateProject, "invalid catalog"), "project", p.Name)
		}
		p.ConfigureArgs = append([]string(nil), p.ConfigureArgs...)
		c.index[p.Name] = len(c.projects)
		c.projects = append(c.projects, p)
	}
	return c, nil
}

// Projects returns a copy of the catalog entries in order.
func (c *Catalog) Projects() []Project {
	out := make([]Project, len(c.projects))
	copy(out, c.projects)
	return out
}

// Names returns the project names in catalog order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.projects))
	for i, p := range c.projects {
		names[i] = p.Name
	}
	return names
}

// Lookup returns the project with the given name.
func (c *Catalog) Lookup(name string) (Project, bool) {
	i, ok := c.index[name]
	if !ok {
		return Project{}, false
	}
	return c.projects[i], true
}

// Has reports whether the catalog contains a project with the given name.
func (c *Catalog) Has(name string) bool {
	_, ok := c.index[name]
	return ok
}

// Len returns the number of projects.
func (c *Catalog) Len() int {
	return len(c.projects)
}

// Project names of the default catalog.
const (
	ProjectBinutils     = "binutils"
	ProjectGCCBootstrap = "gcc-bootstrap"
	ProjectNewlib       = "newlib"
	ProjectGCC          = "gcc"
	ProjectNewlibNano   = "newlib-nano"
)

// cortexMArgs select soft-float Thumb code and the Cortex-M multilib set.
var cortexMArgs = []string{
	"--with-float=soft",
	"--with-mode=thumb",
	"--with-multilib-list=rmprofile",
	"--enable-multilib",
	"--enable-interwork",
	"--disable-nls",
}

func withCortexM(args ...string) []string {
	out := make([]string, 0, len(cortexMArgs)+len(args))
	out = append(out, cortexMArgs...)
	return append(out, args...)
}

// DefaultCatalog returns the arm-none-eabi toolchain projects for the given target triple.
func DefaultCatalog(target string) *Catalog {
	compiler := target + "-gcc"

	c, err := NewCatalog(
		Project{
			Name: ProjectBinutils,
			ConfigureArgs: withCortexM(
				"--with-gnu-as",
				"--with-gnu-ld",
				"--disable-werror",
			),
		},
		Project{
			Name:         ProjectGCCBootstrap,
			SourceSubdir: "gcc",
			ConfigureArgs: withCortexM(
				"--enable-languages=c",
				"--without-headers",
				"--with-newlib",
				"--with-gnu-as",
				"--with-gnu-ld",
				"--disable-shared",
				"--disable-threads",
				"--disable-libssp",
				"--disable-libgomp",
			),
			Predicate: ToolMissing(compiler),
		},
		Project{
			Name: ProjectNewlib,
			ConfigureArgs: withCortexM(
				"--disable-newlib-supplied-syscalls",
				"--enable-newlib-io-long-long",
				"--enable-newlib-register-fini",
			),
		},
		Project{
			Name:         ProjectGCC,
			SourceSubdir: "gcc",
			ConfigureArgs: withCortexM(
				"--enable-languages=c,c++",
				"--with-newlib",
				"--with-headers=yes",
				"--with-gnu-as",
				"--with-gnu-ld",
				"--disable-shared",
				"--disable-threads",
				"--disable-libssp",
				"--disable-libgomp",
			),
			Predicate: BuiltThisRun(ProjectGCCBootstrap),
		},
		Project{
			Name:         ProjectNewlibNano,
			SourceSubdir: "newlib",
			ConfigureArgs: withCortexM(
				"--disable-newlib-supplied-syscalls",
				"--enable-newlib-reent-small",
				"--disable-newlib-fvwrite-in-streamio",
				"--disable-newlib-fseek-optimization",
				"--disable-newlib-wide-orient",
				"--enable-newlib-nano-malloc",
				"--disable-newlib-unbuf-stream-opt",
				"--enable-lite-exit",
				"--enable-newlib-global-atexit",
				"--enable-newlib-nano-formatted-io",
				"CFLAGS_FOR_TARGET=-g -Os -ffunction-sections -fdata-sections",
			),
			Install: InstallNano,
		},
	)
	if err != nil {
		// The default catalog is static; a duplicate name is a programming error.
		panic(err)
	}
	return c
}
