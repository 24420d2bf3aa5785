package ports

// HostProbe answers questions about the host the toolchain is built on.
//
//go:generate go run go.uber.org/mock/mockgen -source=host.go -destination=mocks/mock_host.go -package=mocks
type HostProbe interface {
	// HasTool reports whether an executable with the given name is on the search path.
	HasTool(name string) bool
}
