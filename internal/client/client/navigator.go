package client

// LoginPath is the login entry point hard redirects land on.
const LoginPath = "/"

// Navigator performs a hard redirect: the current view state is discarded
// and the UI restarts at path.
type Navigator interface {
	HardRedirect(path string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(path string)

func (f NavigatorFunc) HardRedirect(path string) { f(path) }

type noopNavigator struct{}

func (noopNavigator) HardRedirect(string) {}
