package router

//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=mocks/notifier_mock.go github.com/dmitrijs2005/gradebook/internal/client/router Notifier

// Notifier shows transient messages to the user when the guard refuses a
// transition.
type Notifier interface {
	Warn(msg string)
	Error(msg string)
}

// Messages shown by the guard.
const (
	MsgLoginRequired       = "please log in first"
	MsgChangePasswordFirst = "for account security, change your initial password first"
	MsgAccessDenied        = "you are not allowed to open this page"
)

type silentNotifier struct{}

func (silentNotifier) Warn(string)  {}
func (silentNotifier) Error(string) {}
